// FILE: cmd/leaderboard-server/cli/cli.go
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/AbhishekSingh2002/Gaming-Leaderboard/internal/server/storage"
)

// Run is the entry point for the CLI mini-app
func Run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("subcommand required: init, delete, seed, log, or snapshots")
	}

	switch args[0] {
	case "init":
		return runInit(args[1:])
	case "delete":
		return runDelete(args[1:])
	case "seed":
		return runSeed(args[1:])
	case "log":
		return runLog(args[1:])
	case "snapshots":
		return runSnapshots(args[1:])
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
}

func openStore(path string) (*storage.Store, error) {
	if path == "" {
		return nil, fmt.Errorf("database path required")
	}
	store, err := storage.NewStore(path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return store, nil
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := openStore(*path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	fmt.Printf("Database initialized at: %s\n", *path)
	return nil
}

func runDelete(args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := openStore(*path)
	if err != nil {
		return err
	}

	if err := store.DeleteDB(); err != nil {
		return fmt.Errorf("failed to delete database: %w", err)
	}

	fmt.Printf("Database deleted: %s\n", *path)
	return nil
}

// runSeed bulk-registers competitors for load testing
func runSeed(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")
	count := fs.Int("count", 100, "Number of competitors to create")
	prefix := fs.String("prefix", "player", "Display name prefix")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *count < 1 {
		return fmt.Errorf("count must be positive")
	}

	store, err := openStore(*path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	ctx := context.Background()
	for i := 1; i <= *count; i++ {
		record := storage.CompetitorRecord{
			CompetitorID: uuid.NewString(),
			DisplayName:  fmt.Sprintf("%s-%d", *prefix, i),
			JoinedAt:     time.Now().UTC(),
		}
		if err := store.CreateCompetitor(ctx, record); err != nil {
			return fmt.Errorf("failed to seed competitor %d: %w", i, err)
		}
	}

	total, err := store.CountCompetitors(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Seeded %d competitors (%d total)\n", *count, total)
	return nil
}

// runLog prints session log entries for audit
func runLog(args []string) error {
	fs := flag.NewFlagSet("log", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")
	competitorID := fs.String("competitorId", "", "Competitor ID to filter (optional)")
	sinceHours := fs.Int("sinceHours", 0, "Only entries from the last N hours (optional)")
	limit := fs.Int64("limit", 50, "Maximum entries to print")

	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := openStore(*path)
	if err != nil {
		return err
	}
	defer store.Close()

	since := time.Unix(0, 0)
	if *sinceHours > 0 {
		since = time.Now().UTC().Add(-time.Duration(*sinceHours) * time.Hour)
	}

	entries, err := store.QuerySessionEntries(context.Background(), *competitorID, since, *limit)
	if err != nil {
		return fmt.Errorf("failed to query session log: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ENTRY\tCOMPETITOR\tDELTA\tMODE\tSUBMITTED")
	for _, entry := range entries {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n",
			entry.EntryID, entry.CompetitorID, entry.Delta, entry.Mode,
			entry.SubmittedAt.Format(time.RFC3339))
	}
	return w.Flush()
}

// runSnapshots prints recorded leaderboard snapshots
func runSnapshots(args []string) error {
	fs := flag.NewFlagSet("snapshots", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")
	limit := fs.Int64("limit", 50, "Maximum rows to print")

	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := openStore(*path)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.QuerySnapshots(context.Background(), *limit)
	if err != nil {
		return fmt.Errorf("failed to query snapshots: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TAKEN\tRANK\tCOMPETITOR\tSCORE")
	for _, record := range records {
		fmt.Fprintf(w, "%s\t%d\t%s\t%d\n",
			record.TakenAt.Format(time.RFC3339), record.Rank,
			record.CompetitorID, record.CumulativeScore)
	}
	return w.Flush()
}
