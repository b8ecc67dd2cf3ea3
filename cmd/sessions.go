package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DaniruKun/multitracker/record"
	"github.com/DaniruKun/multitracker/store"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List sessions stored with --db, or export one with --export",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("db")
		if path == "" {
			return errors.New("--db is required")
		}
		db, err := store.Open(path)
		if err != nil {
			return err
		}
		defer db.Close()

		if id, _ := cmd.Flags().GetString("export"); id != "" {
			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				out = id + ".txt"
			}
			tl, err := db.LoadTimeline(context.Background(), id)
			if err != nil {
				return err
			}
			if err := record.Save(out, tl); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %s to %s\n", id, out)
			return nil
		}

		sessions, err := db.ListSessions(context.Background())
		if err != nil {
			return err
		}
		for _, s := range sessions {
			fmt.Fprintln(cmd.OutOrStdout(), s.String())
		}
		return nil
	},
}

func init() {
	sessionsCmd.Flags().String("db", "", "SQLite session database")
	sessionsCmd.Flags().String("export", "", "Session id to export as a record")
	sessionsCmd.Flags().String("out", "", "Record file for --export (default <id>.txt)")
	rootCmd.AddCommand(sessionsCmd)
}
