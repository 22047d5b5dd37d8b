package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/ragview"
	bt "github.com/fwojciec/ragview/bubbletea"
	"github.com/fwojciec/ragview/config"
	"github.com/fwojciec/ragview/goldmark"
	ragjson "github.com/fwojciec/ragview/json"
	"github.com/spf13/cobra"
)

// requestFlags are shared by ask and extract.
type requestFlags struct {
	urls     []string
	provider string
	maxDepth int
	maxPages int
	plain    bool
	save     string
}

func (f *requestFlags) register(cmd *cobra.Command, withProvider bool) {
	cmd.Flags().StringArrayVarP(&f.urls, "url", "u", nil, "Confluence root page URL (repeatable, at most 5)")
	if withProvider {
		cmd.Flags().StringVarP(&f.provider, "provider", "p", "", "provider: bedrock, gemini or gitlab_duo")
	}
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", 0, "maximum crawl depth (default from config)")
	cmd.Flags().IntVar(&f.maxPages, "max-pages", 0, "maximum pages to retrieve (default from config)")
	cmd.Flags().BoolVar(&f.plain, "plain", false, "print the rendered response instead of starting the TUI")
	cmd.Flags().StringVar(&f.save, "save", "", "write the raw response to this JSON file")
}

// request builds a normalized Request from the flags, falling back to the
// configured defaults for flags that were not given.
func (f *requestFlags) request(cmd *cobra.Command, a *app, query string) (ragview.Request, error) {
	defaults := config.Defaults(a.v)
	req := ragview.Request{
		Query:        query,
		Provider:     defaults.Provider,
		RootPageURLs: f.urls,
		MaxDepth:     defaults.MaxDepth,
		MaxPages:     defaults.MaxPages,
	}
	if f.provider != "" {
		p, err := ragview.ParseProvider(f.provider)
		if err != nil {
			return req, err
		}
		req.Provider = p
	}
	if cmd.Flags().Changed("max-depth") {
		req.MaxDepth = ragview.Limit(f.maxDepth)
	}
	if cmd.Flags().Changed("max-pages") {
		req.MaxPages = ragview.Limit(f.maxPages)
	}
	return req.Normalize(), nil
}

func newAskCmd(a *app) *cobra.Command {
	var f requestFlags
	cmd := &cobra.Command{
		Use:   "ask QUESTION",
		Short: "Ask a question answered from the given page trees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.request(cmd, a, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if err := req.ValidateQuery(); err != nil {
				return err
			}
			b := a.backend()
			fetch := func(ctx context.Context) (ragview.Response, error) { return b.Query(ctx, req) }
			return f.execute(cmd, a, req.Query, fetch)
		},
	}
	f.register(cmd, true)
	return cmd
}

func newExtractCmd(a *app) *cobra.Command {
	var f requestFlags
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Retrieve the page trees without generating an answer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.request(cmd, a, "")
			if err != nil {
				return err
			}
			if err := req.ValidateExtract(); err != nil {
				return err
			}
			b := a.backend()
			fetch := func(ctx context.Context) (ragview.Response, error) { return b.Extract(ctx, req) }
			return f.execute(cmd, a, "Extract: "+strings.Join(req.RootPageURLs, ", "), fetch)
		},
	}
	f.register(cmd, false)
	return cmd
}

// execute runs fetch either in the TUI or directly, then saves the response
// when requested. A backend error response is reported as a command error.
func (f *requestFlags) execute(cmd *cobra.Command, a *app, title string, fetch bt.FetchFunc) error {
	theme := ragview.DefaultTheme()
	width := a.v.GetInt("tui.width")

	var resp ragview.Response
	if f.plain {
		var err error
		resp, err = fetch(cmd.Context())
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		if _, isErr := resp.(ragview.ErrorResponse); !isErr {
			fmt.Fprintln(cmd.OutOrStdout(), goldmark.RenderResponse(resp, width, theme))
		}
	} else {
		final, err := bt.Run(cmd.Context(), bt.New(fetch, title, theme, bt.WithMaxWidth(width)))
		if err != nil {
			return fmt.Errorf("TUI: %w", err)
		}
		if final.Err() != nil {
			return fmt.Errorf("request failed: %w", final.Err())
		}
		resp = final.Response()
	}
	if resp == nil {
		return nil
	}

	if f.save != "" {
		if err := ragjson.Save(f.save, resp); err != nil {
			return fmt.Errorf("save response: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Response saved to %s\n", f.save)
	}
	if e, ok := resp.(ragview.ErrorResponse); ok {
		msg := e.Message
		if strings.TrimSpace(msg) == "" {
			msg = "Unknown error"
		}
		return fmt.Errorf("%w: %s", ragview.ErrBackend, msg)
	}
	return nil
}
