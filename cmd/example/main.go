package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Brahmastra-Labs/logicaffeine-sub001/check"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/compile"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/files"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/parse"
)

// Replays each examples/*.v through a fresh session, printing the
// transcript.
func main() {
	dir := "examples"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	paths, err := files.FindScripts(dir, "")
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	failed := false
	for _, path := range paths {
		fmt.Printf("=== %s ===\n", path)
		file, err := parse.NewParser().ParseFile(path)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			failed = true
			continue
		}

		session, err := compile.NewSession(ctx, check.NewChecker(check.DefaultConfig(), nil), nil, compile.SessionOptions{Prelude: true})
		if err != nil {
			panic(err)
		}
		for _, cmd := range file.Commands {
			fmt.Printf("> %s\n", cmd.Source())
			out, err := session.Run(ctx, cmd)
			switch {
			case err != nil:
				fmt.Printf("Error: %v\n", err)
				failed = true
			case out != "":
				fmt.Println(out)
			}
		}
	}

	if failed {
		os.Exit(1)
	}
}
