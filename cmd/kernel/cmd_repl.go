package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Brahmastra-Labs/logicaffeine-sub001/compile"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/store"
)

var (
	replDB     string
	replResume string
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive loop",
	Long: `Reads Vernacular commands from standard input, one per period-terminated
entry, and prints each result. With a journal (--db or store.path) the session
is persisted and can be resumed later with --resume.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	replCmd.Flags().StringVar(&replDB, "db", "", "Session journal database (default: store.path)")
	replCmd.Flags().StringVar(&replResume, "resume", "", "Resume the journaled session with this id")
}

func runRepl(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	path := replDB
	if path == "" {
		path = cfg.Store.Path
	}

	var journal *store.Journal
	if path != "" {
		var err error
		if journal, err = store.Open(path); err != nil {
			return err
		}
		defer journal.Close()
	}

	var session *compile.Session
	var err error
	switch {
	case replResume != "":
		if journal == nil {
			return fmt.Errorf("--resume needs a journal (--db or store.path)")
		}
		session, err = compile.ResumeSession(ctx, newChecker(), logger, journal, replResume)
	default:
		session, err = compile.NewSession(ctx, newChecker(), logger, compile.SessionOptions{
			Prelude: cfg.Prelude,
			Journal: journal,
		})
	}
	if err != nil {
		return err
	}

	if journal != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "session %s\n", session.ID)
	}
	return repl(ctx, session, cmd.InOrStdin(), cmd.OutOrStdout(), isTerminal(cmd.InOrStdin()))
}

// repl runs commands until input ends. A command may span several lines and
// is complete once a line ends with a period.
func repl(ctx context.Context, session *compile.Session, in io.Reader, out io.Writer, interactive bool) error {
	scanner := bufio.NewScanner(in)
	var pending strings.Builder

	prompt := func() {
		if !interactive {
			return
		}
		if pending.Len() == 0 {
			fmt.Fprint(out, "> ")
		} else {
			fmt.Fprint(out, ". ")
		}
	}

	prompt()
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case pending.Len() == 0 && line == "":
			prompt()
			continue
		case pending.Len() == 0 && (line == ":quit" || line == ":q"):
			return nil
		}

		pending.WriteString(line)
		pending.WriteString("\n")
		if !strings.HasSuffix(line, ".") {
			prompt()
			continue
		}

		result, err := session.Execute(ctx, pending.String())
		pending.Reset()
		switch {
		case err != nil:
			fmt.Fprintf(out, "Error: %v\n", err)
		case result != "":
			fmt.Fprintln(out, result)
		}
		prompt()
	}
	return scanner.Err()
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
