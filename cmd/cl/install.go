package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/cylc-layer/internal/install"
	"github.com/conn-castle/cylc-layer/internal/messages"
)

func newInstallCmd(g *globalOptions) *cobra.Command {
	ro := &runOptions{}
	cmd := &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
		Long:  messages.InstallLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, err := installWorkflow(cmd, g, ro, args[0])
			return err
		},
	}
	addInstallFlags(cmd, ro)
	return cmd
}

func newRunCmd(g *globalOptions) *cobra.Command {
	ro := &runOptions{}
	cmd := &cobra.Command{
		Use:   messages.RunUse,
		Short: messages.RunShort,
		Long:  messages.RunLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			flow, passArgs, err := splitFlowArgs(cmd, args)
			if err != nil {
				return err
			}
			m, _, err := installWorkflow(cmd, g, ro, flow)
			if err != nil {
				return err
			}
			return m.Play(passArgs...)
		},
	}
	addInstallFlags(cmd, ro)
	return cmd
}

// installWorkflow runs the install decision for flow and reports the outcome.
func installWorkflow(cmd *cobra.Command, g *globalOptions, ro *runOptions, flow string) (*install.Manager, install.Decision, error) {
	s, err := g.load(cmd)
	if err != nil {
		return nil, install.DecisionNone, err
	}
	applyRunFlags(cmd, s.cfg, ro)
	if err := s.cfg.Validate(messages.CLIFlagsSource); err != nil {
		return nil, install.DecisionNone, err
	}
	m, err := s.newManager(cmd, flow, ro)
	if err != nil {
		return nil, install.DecisionNone, err
	}
	decision, err := m.InstallWorkflow(cmd.Context())
	if err != nil {
		var conflict *install.ConflictError
		if errors.As(err, &conflict) {
			printConflict(cmd.ErrOrStderr(), conflict)
		}
		return nil, decision, err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.InstallResultFmt, color.GreenString(decision.String()), m.ID())
	return m, decision, nil
}

// printConflict explains a conflict and shows the workflow diff for link conflicts.
func printConflict(out io.Writer, conflict *install.ConflictError) {
	switch conflict.Kind {
	case install.ConflictRunExists:
		_, _ = fmt.Fprintln(out, color.YellowString(messages.InstallConflictRunExistsHint))
	case install.ConflictSourceLink:
		_, _ = fmt.Fprintf(out, messages.InstallConflictSourceHeaderFmt, conflict.Installed, conflict.Requested)
		if conflict.Diff != "" {
			printDiff(out, conflict.Diff)
		}
		_, _ = fmt.Fprintln(out, color.YellowString(messages.InstallConflictSourceLinkHint))
	}
}

func printDiff(out io.Writer, diff string) {
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			_, _ = fmt.Fprintln(out, color.New(color.Bold).Sprint(line))
		case strings.HasPrefix(line, "+"):
			_, _ = fmt.Fprintln(out, color.GreenString(line))
		case strings.HasPrefix(line, "-"):
			_, _ = fmt.Fprintln(out, color.RedString(line))
		case strings.HasPrefix(line, "@@"):
			_, _ = fmt.Fprintln(out, color.CyanString(line))
		default:
			_, _ = fmt.Fprintln(out, line)
		}
	}
}
