package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-pacs-sync/models"
)

const (
	tableSyncRuns    = "sync_runs"
	tableRunFailures = "run_failures"
)

var (
	syncRunColumns    = []string{"run_id", "workflow", "started_at", "finished_at", "candidates", "missing", "copied", "failed", "error"}
	runFailureColumns = []string{"run_id", "item_id", "reason"}
)

func buildInsertRunQuery(b sq.StatementBuilderType, run models.SyncRun) (string, []any, error) {
	return b.Insert(tableSyncRuns).
		Columns(syncRunColumns...).
		Values(
			run.RunID,
			run.Workflow,
			run.StartedAt.UTC(),
			run.FinishedAt.UTC(),
			run.Candidates,
			run.Missing,
			run.Copied,
			run.Failed(),
			run.Error,
		).
		ToSql()
}

// buildInsertFailuresQuery inserts every failure of a run in one statement.
// A repeated item keeps its first reason.
func buildInsertFailuresQuery(b sq.StatementBuilderType, runID string, failures []models.RunFailure) (string, []any, error) {
	q := b.Insert(tableRunFailures).Columns(runFailureColumns...)

	seen := make(map[models.ItemID]struct{}, len(failures))
	for _, f := range failures {
		if _, dup := seen[f.ItemID]; dup {
			continue
		}
		seen[f.ItemID] = struct{}{}
		q = q.Values(runID, string(f.ItemID), f.Reason)
	}

	return q.ToSql()
}

func buildRecentRunsQuery(b sq.StatementBuilderType, limit int) (string, []any, error) {
	return b.Select(syncRunColumns...).
		From(tableSyncRuns).
		OrderBy("started_at DESC").
		Limit(uint64(limit)).
		ToSql()
}

func buildRunFailuresQuery(b sq.StatementBuilderType, runIDs []string) (string, []any, error) {
	return b.Select(runFailureColumns...).
		From(tableRunFailures).
		Where(sq.Eq{"run_id": runIDs}).
		OrderBy("run_id", "item_id").
		ToSql()
}
