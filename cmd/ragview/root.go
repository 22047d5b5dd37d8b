package main

import (
	"fmt"
	"sync"

	"github.com/fwojciec/ragview"
	"github.com/fwojciec/ragview/backend"
	"github.com/fwojciec/ragview/config"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// traceKeys lists every tracer the packages select.
var traceKeys = []string{"ragview.backend", "ragview.http", "ragview.fs"}

var registerAdapter sync.Once

// app carries the resolved configuration to the subcommands.
type app struct {
	v *viper.Viper
}

func (a *app) backend() ragview.Backend {
	return backend.NewClient(a.v.GetString("backend.url"),
		backend.WithTimeout(a.v.GetDuration("backend.timeout")),
		backend.WithRetry(a.v.GetInt("backend.retries"), 0, 0),
	)
}

func newRootCmd() *cobra.Command {
	var cfgPath string
	a := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:           "ragview",
		Short:         "Ask questions about Confluence page trees",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgPath != "" {
				a.v.SetConfigFile(cfgPath)
			}
			if err := a.v.BindPFlag("backend.url", cmd.Root().PersistentFlags().Lookup("backend-url")); err != nil {
				return err
			}
			if err := a.v.BindPFlag("trace.level", cmd.Root().PersistentFlags().Lookup("trace")); err != nil {
				return err
			}
			if err := config.Load(a.v); err != nil {
				return err
			}
			if err := config.Check(a.v); err != nil {
				return fmt.Errorf("invalid configuration:\n%w", err)
			}
			return setupTracing(a.v.GetString("trace.level"))
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (yaml|toml|json)")
	cmd.PersistentFlags().String("backend-url", "", "backend base URL (overrides backend.url)")
	cmd.PersistentFlags().String("trace", "", "trace level: Debug, Info or Error")

	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newAskCmd(a))
	cmd.AddCommand(newExtractCmd(a))
	cmd.AddCommand(newRenderCmd(a))

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }
	return cmd
}

// setupTracing routes every package tracer to the Go logger at level.
func setupTracing(level string) error {
	registerAdapter.Do(func() {
		tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	})
	conf := testconfig.Conf{"tracing.adapter": "go"}
	for _, k := range traceKeys {
		conf["trace."+k] = level
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return fmt.Errorf("configure tracing: %w", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}
