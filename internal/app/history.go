package app

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/archsetup/internal/output"
	"github.com/blackwell-systems/archsetup/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show past provisioning runs",
	Long: `List recorded provisioning runs, most recent first. With a run ID,
show that run's per-group results in the order they were processed.`,
	Example: `  # List all runs
  archsetup history

  # Show the group results of run 3
  archsetup history 3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	path, err := getDBPath()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}

	db, err := store.New(path)
	if err != nil {
		return fmt.Errorf("failed to open run-history database: %w", err)
	}
	defer db.Close()

	if err := db.CreateSchema(); err != nil {
		return fmt.Errorf("failed to create database schema: %w", err)
	}

	if len(args) == 1 {
		runID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run id %q", args[0])
		}

		groups, err := db.GetRunGroups(runID)
		if err != nil {
			return fmt.Errorf("failed to load run %d: %w", runID, err)
		}
		fmt.Print(output.RenderRunGroups(groups))
		return nil
	}

	runs, err := db.ListRuns()
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	fmt.Print(output.RenderHistory(runs))
	return nil
}
