package main

import (
	"fmt"

	"github.com/fwojciec/ragview/fs"
	"github.com/spf13/cobra"
)

func newRenderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [ROOT]",
		Short: "Render saved JSON responses under ROOT to HTML pages",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.v.BindPFlag("render.pattern", cmd.Flags().Lookup("pattern")); err != nil {
				return err
			}
			if err := a.v.BindPFlag("render.out", cmd.Flags().Lookup("out")); err != nil {
				return err
			}
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			written, err := fs.RenderGlob(cmd.Context(), root, a.v.GetString("render.pattern"), a.v.GetString("render.out"))
			for _, p := range written {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().String("pattern", "", "glob selecting responses (overrides render.pattern)")
	cmd.Flags().String("out", "", "output directory (overrides render.out)")
	return cmd
}
