package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/webcrawl/internal/config"
	"github.com/nao1215/webcrawl/internal/database"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded crawl runs",
		Long: `History lists crawl runs recorded in the local database, newest first.

With --run, the discovery records of a single run are printed instead, in
the order they were produced.

Examples:
  # Show the ten most recent runs
  webcrawl history

  # Show every record of run 3
  webcrawl history --run 3`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "l", 10, "Maximum number of runs to list (0 = all)")
	cmd.Flags().Int64P("run", "r", 0, "Print the discovery records of this run ID")
	cmd.Flags().String("db-dir", config.XDGDataDir(), "Directory of the history database")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}

	// Listing history must not create an empty database.
	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("no crawl history available: %w", err)
	}
	defer db.Close()

	runID, err := cmd.Flags().GetInt64("run")
	if err != nil {
		return err
	}
	if runID > 0 {
		return printRunRecords(cmd, db, runID)
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	return printRuns(cmd, db, limit)
}

// printRuns lists recorded runs, newest first.
func printRuns(cmd *cobra.Command, db *database.CrawlDB, limit int) error {
	runs, err := db.ListRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No crawl runs recorded yet.")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(cmd.OutOrStdout(), "#%d  %s  depth=%d  records=%d  %s\n",
			run.ID, run.Seed, run.MaxDepth, run.RecordCount,
			run.StartedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

// printRunRecords prints one run's discovery records in production order.
func printRunRecords(cmd *cobra.Command, db *database.CrawlDB, runID int64) error {
	records, err := db.RecordsForRun(cmd.Context(), runID)
	if err != nil {
		return fmt.Errorf("failed to read run %d: %w", runID, err)
	}

	if len(records) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Run %d has no records.\n", runID)
		return nil
	}

	for _, record := range records {
		fmt.Fprintf(cmd.OutOrStdout(), "%d  %s  (found on %s)\n",
			record.Depth, record.URL, record.Page)
	}
	return nil
}
