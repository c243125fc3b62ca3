package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Brahmastra-Labs/logicaffeine-sub001/check"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/config"
)

var (
	// Global flags
	configPath string
	verbose    bool
	noPrelude  bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "kernel",
	Short: "A proof kernel for the Calculus of Constructions with inductive types",
	Long: `kernel checks Vernacular scripts: definitions, inductive types, fixpoints
and queries over a dependently typed core with a Prop/Type universe hierarchy.

Run without arguments to start the interactive loop.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			cfg, err = config.Load(configPath)
		} else {
			cfg, err = config.LoadDefault()
		}
		if err != nil {
			return err
		}
		if noPrelude {
			cfg.Prelude = false
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}

		logger, err = buildLogger(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRepl(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $KERNEL_CONFIG or kernel.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noPrelude, "no-prelude", false, "Start without the Int/Float/Text prelude")

	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildLogger(c config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableStacktrace = true
	if !c.JSON {
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return zc.Build()
}

func newChecker() *check.Checker {
	return check.NewChecker(cfg.Checker(), logger)
}
