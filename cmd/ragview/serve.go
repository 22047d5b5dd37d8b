package main

import (
	"fmt"

	"github.com/fwojciec/ragview/config"
	raghttp "github.com/fwojciec/ragview/http"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web front end",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.v.BindPFlag("http.addr", cmd.Flags().Lookup("listen")); err != nil {
				return err
			}
			addr := a.v.GetString("http.addr")
			srv := raghttp.New(a.backend(), raghttp.WithDefaults(config.Defaults(a.v)))
			fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s (backend %s)\n", addr, a.v.GetString("backend.url"))
			return srv.Serve(cmd.Context(), addr)
		},
	}
	cmd.Flags().String("listen", "", "listen address (overrides http.addr)")
	return cmd
}
