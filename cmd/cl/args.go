package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/cylc-layer/internal/messages"
)

// splitFlowArgs separates the workflow argument from engine options given
// after "--". Exactly one workflow argument must precede the separator.
func splitFlowArgs(cmd *cobra.Command, args []string) (string, []string, error) {
	positional, passArgs := args, []string{}
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		positional, passArgs = args[:dash], args[dash:]
	}
	if len(positional) != 1 {
		return "", nil, fmt.Errorf(messages.CLIFlowArgCountFmt, cmd.Name(), len(positional))
	}
	return positional[0], passArgs, nil
}
