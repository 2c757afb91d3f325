package store

import (
	"fmt"
	"time"

	"github.com/blackwell-systems/archsetup/internal/batch"
)

// BeginRun records the start of a provisioning run and returns its ID.
func (s *Store) BeginRun(startedAt time.Time, onlyConfig bool) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs (started_at, only_config) VALUES (?, ?)`,
		startedAt.Format(time.RFC3339), onlyConfig,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}
	return id, nil
}

// FinishRun finalizes a run with its summary counts.
func (s *Store) FinishRun(runID int64, finishedAt time.Time, summary batch.Summary) error {
	_, err := s.db.Exec(
		`UPDATE runs SET finished_at = ?, groups_total = ?, groups_failed = ? WHERE id = ?`,
		finishedAt.Format(time.RFC3339), summary.Total, summary.Failed, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run %d: %w", runID, err)
	}
	return nil
}

// InsertGroupResult persists one group result at its position in the run.
func (s *Store) InsertGroupResult(runID int64, position int, result *batch.Result) error {
	_, err := s.db.Exec(
		`INSERT INTO run_groups
		 (run_id, position, name, already_installed, attempted, succeeded,
		  exit_code, duration_secs, status, installer)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		position,
		result.Group.Name,
		result.AlreadyInstalled,
		len(result.Attempted),
		result.Succeeded,
		result.ExitCode,
		int64(result.Duration.Seconds()),
		result.Status.String(),
		result.Installer,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group result %s: %w", result.Group.Name, err)
	}
	return nil
}

// ListRuns returns all runs, most recent first.
func (s *Store) ListRuns() ([]*Run, error) {
	rows, err := s.db.Query(
		`SELECT id, started_at, finished_at, only_config, groups_total, groups_failed
		 FROM runs ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var run Run
		var startedAt string
		var finishedAt *string

		if err := rows.Scan(&run.ID, &startedAt, &finishedAt, &run.OnlyConfig,
			&run.GroupsTotal, &run.GroupsFailed); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
			run.StartedAt = t
		}
		if finishedAt != nil {
			if t, err := time.Parse(time.RFC3339, *finishedAt); err == nil {
				run.FinishedAt = t
			}
		}

		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

// GetRunGroups returns the group results of a run in processing order.
func (s *Store) GetRunGroups(runID int64) ([]*RunGroup, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, position, name, already_installed, attempted,
		        succeeded, exit_code, duration_secs, status, installer
		 FROM run_groups WHERE run_id = ? ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list run groups: %w", err)
	}
	defer rows.Close()

	var groups []*RunGroup
	for rows.Next() {
		var g RunGroup
		var installer *string

		if err := rows.Scan(&g.ID, &g.RunID, &g.Position, &g.Name,
			&g.AlreadyInstalled, &g.Attempted, &g.Succeeded,
			&g.ExitCode, &g.DurationSecs, &g.Status, &installer); err != nil {
			return nil, fmt.Errorf("failed to scan run group: %w", err)
		}
		if installer != nil {
			g.Installer = *installer
		}

		groups = append(groups, &g)
	}
	return groups, rows.Err()
}
