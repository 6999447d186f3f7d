package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/cylc-layer/internal/install"
	"github.com/conn-castle/cylc-layer/internal/messages"
)

// workflowManager loads the session and builds a manager for a lifecycle command.
func workflowManager(cmd *cobra.Command, g *globalOptions, ro *runOptions, flow string) (*install.Manager, error) {
	s, err := g.load(cmd)
	if err != nil {
		return nil, err
	}
	return s.newManager(cmd, flow, ro)
}

func newPlayCmd(g *globalOptions) *cobra.Command {
	ro := &runOptions{}
	cmd := &cobra.Command{
		Use:   messages.PlayUse,
		Short: messages.PlayShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			flow, passArgs, err := splitFlowArgs(cmd, args)
			if err != nil {
				return err
			}
			m, err := workflowManager(cmd, g, ro, flow)
			if err != nil {
				return err
			}
			return m.Play(passArgs...)
		},
	}
	addRunNameFlag(cmd, ro)
	return cmd
}

func newStopCmd(g *globalOptions) *cobra.Command {
	ro := &runOptions{}
	cmd := &cobra.Command{
		Use:   messages.StopUse,
		Short: messages.StopShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := workflowManager(cmd, g, ro, args[0])
			if err != nil {
				return err
			}
			m.Stop(cmd.Context())
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.StopResultFmt, m.ID())
			return nil
		},
	}
	addRunNameFlag(cmd, ro)
	return cmd
}

func newCleanCmd(g *globalOptions) *cobra.Command {
	ro := &runOptions{}
	var stopFirst bool
	cmd := &cobra.Command{
		Use:   messages.CleanUse,
		Short: messages.CleanShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := workflowManager(cmd, g, ro, args[0])
			if err != nil {
				return err
			}
			if stopFirst {
				err = m.StopAndClean(cmd.Context())
			} else {
				err = m.Clean()
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.CleanResultFmt, m.ID())
			return nil
		},
	}
	addRunNameFlag(cmd, ro)
	cmd.Flags().BoolVar(&stopFirst, "stop", false, messages.FlagCleanStop)
	return cmd
}

func newValidateCmd(g *globalOptions) *cobra.Command {
	ro := &runOptions{}
	cmd := &cobra.Command{
		Use:   messages.ValidateUse,
		Short: messages.ValidateShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			flow, passArgs, err := splitFlowArgs(cmd, args)
			if err != nil {
				return err
			}
			m, err := workflowManager(cmd, g, ro, flow)
			if err != nil {
				return err
			}
			return m.Validate(passArgs...)
		},
	}
	return cmd
}

func newNamesCmd(g *globalOptions) *cobra.Command {
	ro := &runOptions{}
	cmd := &cobra.Command{
		Use:   messages.NamesUse,
		Short: messages.NamesShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := workflowManager(cmd, g, ro, args[0])
			if err != nil {
				return err
			}
			existing, err := m.ExistingRunNames()
			if err != nil {
				return err
			}
			next, err := m.ExtendRunName()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range existing {
				_, _ = fmt.Fprintf(out, messages.NamesExistingFmt, m.WorkflowName(), name)
			}
			_, _ = fmt.Fprintf(out, messages.NamesNextFmt, m.WorkflowName(), next)
			return nil
		},
	}
	addRunNameFlag(cmd, ro)
	return cmd
}
