package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Brahmastra-Labs/logicaffeine-sub001/check"
	. "github.com/Brahmastra-Labs/logicaffeine-sub001/common"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/compile"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/files"
)

// Runs every tests/pass_*.v, which must check cleanly, and every
// tests/fail_*.v, which must be rejected with the error kind named by its
// "(* expect: Kind *)" comment.
func main() {
	testsPath := "tests"
	if len(os.Args) > 1 {
		testsPath = os.Args[1]
	}

	paths, err := files.FindScripts(testsPath, "")
	if err != nil {
		panic(err)
	}

	failures := 0
	for _, path := range paths {
		name := filepath.Base(path)
		stack, err := runFile(path)

		switch {
		case strings.HasPrefix(name, "fail_"):
			kind, readErr := compile.ReadExpectation(path)
			if readErr != nil {
				panic(readErr)
			}
			switch {
			case kind == "":
				fmt.Printf("FAIL %s: no expect comment\n", name)
				failures++
				continue
			case err == nil:
				fmt.Printf("FAIL %s: expected %s\n", name, kind)
				failures++
				continue
			case !compile.HasKind(err, kind):
				fmt.Printf("FAIL %s: expected %s, got %v\n", name, kind, firstLine(err))
				failures++
				continue
			}
			fmt.Printf("ok   %s (%v)\n", name, firstLine(err))
		case strings.HasPrefix(name, "pass_"):
			if err != nil {
				fmt.Printf("FAIL %s: unexpected error:\n%v\n", name, err)
				if stack != "" {
					fmt.Println(stack)
				}
				failures++
				continue
			}
			fmt.Printf("ok   %s\n", name)
		default:
			fmt.Printf("skip %s\n", name)
		}
	}

	if failures > 0 {
		fmt.Printf("%d of %d fixtures failed\n", failures, len(paths))
		os.Exit(1)
	}
}

func runFile(path string) (stack string, err error) {
	checker := check.NewChecker(check.DefaultConfig(), nil)
	report, err, stack := Try(func() *compile.Report {
		unit := compile.NewUnit("tests", checker, nil, compile.UnitOptions{Prelude: true})
		if err := unit.AddFile(path); err != nil {
			panic(err)
		}
		report, err := unit.Check(context.Background())
		if err != nil {
			panic(err)
		}
		return report
	})
	if err != nil {
		return stack, err
	}
	return "", report.Err()
}

func firstLine(err error) string {
	s := err.Error()
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
