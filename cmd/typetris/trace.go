package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/typetris/internal/storage"
)

var flagTraceLimit int

var traceCmd = &cobra.Command{
	Use:   "trace [session-id]",
	Short: "List recorded keystroke trace sessions",
	Long: `Without arguments, list recorded sessions from the trace database.
With a session ID, print that session's full keystroke trace.

Examples:
  typetris trace --trace-db ~/.typetris/trace.db
  typetris trace 2f2e... --trace-db ~/.typetris/trace.db`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTrace,
}

func init() {
	traceCmd.Flags().IntVar(&flagTraceLimit, "limit", 20, "Maximum number of sessions to list")
}

func runTrace(cmd *cobra.Command, args []string) error {
	if flagTraceDB == "" {
		return fmt.Errorf("--trace-db is required")
	}

	store, err := storage.Open(flagTraceDB)
	if err != nil {
		return fmt.Errorf("open trace database: %w", err)
	}
	defer store.Close()

	if len(args) == 1 {
		return printSession(store, args[0])
	}

	sessions, err := store.ListSessions(flagTraceLimit)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Println("No recorded sessions.")
		return nil
	}

	fmt.Printf("%-36s  %-8s  %-12s  %8s  %s\n", "SESSION", "PRESET", "SEED", "EVENTS", "STARTED")
	for _, s := range sessions {
		fmt.Printf("%-36s  %-8s  %-12d  %8d  %s\n",
			s.ID, s.Preset, s.Seed, s.Events, s.StartedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func printSession(store *storage.Store, id string) error {
	events, err := store.SessionEvents(id)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if len(events) == 0 {
		fmt.Println("No events recorded for this session.")
		return nil
	}

	for _, ev := range events {
		dir := "up"
		if ev.Press {
			dir = "down"
		}
		fmt.Printf("%6d  %8dms  %-9s %s\n", ev.Seq, ev.Offset.Milliseconds(), ev.Key, dir)
	}
	return nil
}
