package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Brahmastra-Labs/logicaffeine-sub001/config"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/files"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [PATH]",
	Short: "Write the default configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := files.LookupEnv(config.PathEnv, config.DefaultPath)
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil && !configForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.Default().Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "prelude: %v\nnormalize.fuel: %d\ncheck.parallelism: %d\nlogging.level: %s\nstore.path: %q\n",
			cfg.Prelude, cfg.Normalize.Fuel, cfg.Check.Parallelism, cfg.Logging.Level, cfg.Store.Path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
