package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Brahmastra-Labs/logicaffeine-sub001/store"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List journaled sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := replDB
		if path == "" {
			path = cfg.Store.Path
		}
		if path == "" {
			return fmt.Errorf("no journal configured (--db or store.path)")
		}

		journal, err := store.Open(path)
		if err != nil {
			return err
		}
		defer journal.Close()

		sessions, err := journal.Sessions(cmd.Context())
		if err != nil {
			return err
		}
		for _, s := range sessions {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %d commands  prelude=%v\n",
				s.ID, s.Created.Format(time.DateTime), s.Commands, s.Prelude)
		}
		return nil
	},
}

func init() {
	sessionsCmd.Flags().StringVar(&replDB, "db", "", "Session journal database (default: store.path)")
}
