package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/danielpatrickdp/unwind/go-controller/internal/scenario"
	"github.com/danielpatrickdp/unwind/go-controller/internal/session"
)

// #region scenario

func newScenarioCmd(o *options) *cobra.Command {
	var (
		dir  string
		show bool
	)
	cmd := &cobra.Command{
		Use:   "scenario [file.json...]",
		Short: "Replay scripted sessions and check their outcome",
		Long: "Replays the built-in scenarios, or the given files, or every *.json in --dir. " +
			"Silences are resolved from each scenario's wait_inputs, never by real time.",
		RunE: func(cmd *cobra.Command, args []string) error {
			scs, err := loadScenarios(dir, args)
			if err != nil {
				return err
			}
			return runScenarios(cmd, o, scs, show)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "directory of scenario fixtures")
	cmd.Flags().BoolVar(&show, "show", false, "print each transcript")
	return cmd
}

func loadScenarios(dir string, files []string) ([]*scenario.Scenario, error) {
	switch {
	case len(files) > 0:
		out := make([]*scenario.Scenario, 0, len(files))
		for _, f := range files {
			sc, err := scenario.LoadFile(f)
			if err != nil {
				return nil, err
			}
			out = append(out, sc)
		}
		return out, nil
	case dir != "":
		return scenario.LoadDir(dir)
	default:
		return scenario.Builtin()
	}
}

func runScenarios(cmd *cobra.Command, o *options, scs []*scenario.Scenario, show bool) error {
	out := cmd.OutOrStdout()
	failed := 0
	for _, sc := range scs {
		res, err := scenario.Run(cmd.Context(), sc, session.WithLogger(o.logger))
		if err != nil {
			return err
		}
		bad := res.Check(sc.Expect)
		status := "PASS"
		if len(bad) > 0 {
			status = "FAIL"
			failed++
		}
		fmt.Fprintf(out, "%s  %-28s final=%s\n", status, sc.Name, res.FinalState)
		for _, b := range bad {
			fmt.Fprintf(out, "      %s\n", b)
		}
		if show {
			printTranscript(out, res)
		}
	}
	fmt.Fprintf(out, "\n%d/%d scenarios passed\n", len(scs)-failed, len(scs))
	if failed > 0 {
		o.logger.Debug("scenario failures", zap.Int("failed", failed))
		return fmt.Errorf("%d scenario(s) failed", failed)
	}
	return nil
}

func printTranscript(out io.Writer, res *scenario.Result) {
	for _, e := range res.Transcript {
		note := ""
		if e.Note != "" {
			note = " [" + e.Note + "]"
		}
		fmt.Fprintf(out, "      %s%s: %s\n", e.Speaker, note, e.Text)
	}
	fmt.Fprintln(out)
}

// #endregion scenario
