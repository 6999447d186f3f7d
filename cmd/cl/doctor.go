package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/cylc-layer/internal/config"
	"github.com/conn-castle/cylc-layer/internal/doctor"
	"github.com/conn-castle/cylc-layer/internal/messages"
)

var (
	checkConfig      = doctor.CheckConfig
	checkDirectories = doctor.CheckDirectories
	checkEngine      = doctor.CheckEngine
	checkEnvFile     = doctor.CheckEnvFile
	checkWorkflow    = doctor.CheckWorkflow
)

func newDoctorCmd(g *globalOptions) *cobra.Command {
	ro := &runOptions{}
	cmd := &cobra.Command{
		Use:   messages.DoctorUse,
		Short: messages.DoctorShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			path, required, err := g.configSource()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, messages.DoctorHealthCheckFmt, displaySource(path))

			results, cfg := checkConfig(path, required)
			if cfg != nil {
				if err := g.applyOverrides(cfg, messages.CLIFlagsSource); err != nil {
					results = append(results, doctor.Result{
						Status:    doctor.StatusFail,
						CheckName: messages.DoctorCheckNameConfig,
						Message:   err.Error(),
					})
					cfg = nil
				}
			}
			if cfg != nil {
				results = append(results, checkDirectories(cfg)...)
				results = append(results, checkEngine(cfg))
				results = append(results, checkEnvFile(cfg)...)
				if len(args) == 1 {
					results = append(results, workflowResults(cmd, path, cfg, args[0], ro)...)
				}
			}

			for _, r := range results {
				printResult(out, r)
			}
			if doctor.HasFailure(results) {
				_, _ = fmt.Fprintln(out, color.RedString(messages.DoctorFailureSummary))
				return &SilentExitError{Code: 1}
			}
			_, _ = fmt.Fprintln(out, color.GreenString(messages.DoctorSuccessSummary))
			return nil
		},
	}
	addRunNameFlag(cmd, ro)
	return cmd
}

// workflowResults checks the install state of flow. Setup failures are
// reported as a failed workflow check.
func workflowResults(cmd *cobra.Command, path string, cfg *config.Config, flow string, ro *runOptions) []doctor.Result {
	s, err := sessionFromConfig(cmd, path, cfg)
	if err != nil {
		return []doctor.Result{workflowSetupFailure(err)}
	}
	m, err := s.newManager(cmd, flow, ro)
	if err != nil {
		return []doctor.Result{workflowSetupFailure(err)}
	}
	return checkWorkflow(m)
}

func workflowSetupFailure(err error) doctor.Result {
	return doctor.Result{
		Status:    doctor.StatusFail,
		CheckName: messages.DoctorCheckNameWorkflow,
		Message:   err.Error(),
	}
}

func printResult(out io.Writer, r doctor.Result) {
	var status string
	switch r.Status {
	case doctor.StatusOK:
		status = color.GreenString(messages.DoctorStatusOKLabel)
	case doctor.StatusWarn:
		status = color.YellowString(messages.DoctorStatusWarnLabel)
	case doctor.StatusFail:
		status = color.RedString(messages.DoctorStatusFailLabel)
	}

	_, _ = fmt.Fprintf(out, messages.DoctorResultLineFmt, status, r.CheckName, r.Message)
	if r.Recommendation != "" {
		printRecommendation(out, r.Recommendation)
	}
}

// printRecommendation renders a multi-line recommendation with consistent indentation.
func printRecommendation(out io.Writer, recommendation string) {
	lines := strings.Split(recommendation, "\n")
	for i, line := range lines {
		if i == 0 {
			_, _ = fmt.Fprintf(out, "%s%s\n", messages.DoctorRecommendationPrefix, line)
			continue
		}
		if line == "" {
			_, _ = fmt.Fprintf(out, "%s\n", messages.DoctorRecommendationIndent)
			continue
		}
		_, _ = fmt.Fprintf(out, "%s%s\n", messages.DoctorRecommendationIndent, line)
	}
}
