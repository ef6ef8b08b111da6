// Command unwind runs a guided body-awareness session on the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/danielpatrickdp/unwind/go-controller/internal/config"
	"github.com/danielpatrickdp/unwind/go-controller/internal/transcript"
)

// #region main
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// #endregion main

// #region root

// options holds the persistent flags plus the resolved logger and config.
type options struct {
	configPath     string
	verbose        bool
	patternBackend string
	patternPath    string
	transcriptDir  string
	transcriptOff  bool
	silence        string

	logger *zap.Logger
	cfg    *config.Config
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:          "unwind",
		Short:        "Guided session for noticing sensation without escaping it",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return o.init()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if o.logger != nil {
				_ = o.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd, o)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&o.configPath, "config", envOr("UNWIND_CONFIG", "unwind.yaml"), "YAML config file")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "debug logging")
	f.StringVar(&o.patternBackend, "pattern-backend", "", "explained-pattern store: memory, file or sqlite")
	f.StringVar(&o.patternPath, "pattern-path", "", "explained-pattern store location")
	f.StringVar(&o.transcriptDir, "transcript-dir", "", "directory for JSON transcripts")
	f.BoolVar(&o.transcriptOff, "no-transcript", false, "do not export the transcript")
	f.StringVar(&o.silence, "silence", "", "override every silence length (for example 5s)")

	root.AddCommand(newScenarioCmd(o), newPatternsCmd(o))
	return root
}

// init resolves config then flags, in that order of precedence.
func (o *options) init() error {
	if o.logger == nil {
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if o.verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := zc.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		o.logger = l
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.patternBackend != "" {
		cfg.Patterns.Backend = o.patternBackend
	}
	if o.patternPath != "" {
		cfg.Patterns.Path = o.patternPath
	}
	if o.transcriptDir != "" {
		cfg.Transcripts.Dir = o.transcriptDir
	}
	if o.transcriptOff {
		cfg.Transcripts.Backend = transcript.BackendNone
	}
	if o.silence != "" {
		cfg.Silence = config.SilenceConfig{Main: o.silence, Dense: o.silence, Spacious: o.silence, Check: o.silence}
	}
	if _, err := cfg.Durations(); err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}

// #endregion root

// #region helpers
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// closeIfCloser closes backends that hold a database handle.
func closeIfCloser(v any, logger *zap.Logger) {
	if c, ok := v.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			logger.Warn("close failed", zap.Error(err))
		}
	}
}

// #endregion helpers
