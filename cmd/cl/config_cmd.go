package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/cylc-layer/internal/config"
	"github.com/conn-castle/cylc-layer/internal/engine"
	"github.com/conn-castle/cylc-layer/internal/envfile"
	"github.com/conn-castle/cylc-layer/internal/messages"
)

func newConfigCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.ConfigUse,
		Short: messages.ConfigShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.load(cmd)
			if err != nil {
				return err
			}
			data, err := config.Marshal(s.cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, messages.ConfigSourceCommentFmt, displaySource(s.cfgPath))
			_, err = out.Write(data)
			return err
		},
	}
}

func newEnvCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.EnvUse,
		Short: messages.EnvShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.load(cmd)
			if err != nil {
				return err
			}
			exports, err := engine.Exports(s.cfg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), envfile.FormatExports(exports))
			return err
		},
	}
}

func displaySource(path string) string {
	if path == "" {
		return messages.ConfigDefaultsSource
	}
	return path
}
