package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Brahmastra-Labs/logicaffeine-sub001/compile"
)

var checkParallelism int

var checkCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Check script files as one unit",
	Long: `Checks the declarations of all files together, independent ones in
parallel, then runs their Check and Eval commands in file order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := checkFiles(cmd, args)
		if err != nil {
			return err
		}
		for _, res := range report.Results {
			if s := res.String(); s != "" {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
		}
		if failed := report.Failed(); len(failed) > 0 {
			return fmt.Errorf("%d of %d commands failed", len(failed), len(report.Results))
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().IntVarP(&checkParallelism, "jobs", "j", 0, "Declarations checked at once (default: check.parallelism)")
}

func checkFiles(cmd *cobra.Command, paths []string) (*compile.Report, error) {
	parallelism := checkParallelism
	if parallelism <= 0 {
		parallelism = cfg.Check.Parallelism
	}

	unit := compile.NewUnit("main", newChecker(), logger, compile.UnitOptions{
		Prelude:     cfg.Prelude,
		Parallelism: parallelism,
	})
	for _, path := range paths {
		if err := unit.AddFile(path); err != nil {
			return nil, err
		}
	}
	return unit.Check(cmd.Context())
}
