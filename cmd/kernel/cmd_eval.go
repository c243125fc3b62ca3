package main

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/Brahmastra-Labs/logicaffeine-sub001/check"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/parse"
)

var (
	evalAST   bool
	evalFiles []string
)

var evalCmd = &cobra.Command{
	Use:   "eval TERM",
	Short: "Type and normalize a term",
	Long: `Prints the normal form of TERM and its type. Declarations from --load
files are in scope.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		checker := newChecker()

		var kctx *check.Context
		if len(evalFiles) > 0 {
			report, err := checkFiles(cmd, evalFiles)
			if err != nil {
				return err
			}
			if err := report.Err(); err != nil {
				return err
			}
			kctx = report.Context
		} else {
			var err error
			if kctx, err = checker.NewPreludeContext(cfg.Prelude); err != nil {
				return err
			}
		}

		term, err := parse.NewParser().ParseTerm(strings.Join(args, " "))
		if err != nil {
			return err
		}
		if evalAST {
			spew.Fdump(cmd.OutOrStdout(), term)
		}

		ty, err := checker.InferType(kctx, term)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%v : %v\n", checker.Normalize(kctx, term), ty)
		return nil
	},
}

func init() {
	evalCmd.Flags().BoolVar(&evalAST, "ast", false, "Dump the parsed term")
	evalCmd.Flags().StringSliceVarP(&evalFiles, "load", "l", nil, "Script files to load first")
}
