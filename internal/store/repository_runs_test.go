package store

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pacs-sync/internal/config"
	"github.com/MKhiriev/go-pacs-sync/internal/logger"
	"github.com/MKhiriev/go-pacs-sync/models"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func newMockRunRepository(t *testing.T) (RunRepository, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	db := &DB{
		DB:                 conn,
		dialect:            DialectPostgres,
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             logger.Nop(),
	}
	return NewRunRepository(db, logger.Nop()), mock
}

func sampleRun(id string) models.SyncRun {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return models.SyncRun{
		RunID:      id,
		Workflow:   "series-sync",
		StartedAt:  start,
		FinishedAt: start.Add(time.Minute),
		Candidates: 3,
		Missing:    2,
		Copied:     1,
		Failures:   []models.RunFailure{{ItemID: "s2", Reason: "boom"}},
	}
}

var (
	insertRunSQL      = regexp.QuoteMeta("INSERT INTO sync_runs (run_id,workflow,started_at,finished_at,candidates,missing,copied,failed,error) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)")
	insertFailuresSQL = regexp.QuoteMeta("INSERT INTO run_failures (run_id,item_id,reason) VALUES ($1,$2,$3)")
)

// ── SaveRun ───────────────────────────────────────────────────────────────────

func TestRunRepository_SaveRun_Success(t *testing.T) {
	repo, mock := newMockRunRepository(t)
	run := sampleRun("r1")

	mock.ExpectBegin()
	mock.ExpectExec(insertRunSQL).
		WithArgs("r1", "series-sync", sqlmock.AnyArg(), sqlmock.AnyArg(), 3, 2, 1, 1, "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertFailuresSQL).
		WithArgs("r1", "s2", "boom").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.SaveRun(context.Background(), run)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunRepository_SaveRun_NoFailures(t *testing.T) {
	repo, mock := newMockRunRepository(t)
	run := sampleRun("r1")
	run.Failures = nil

	mock.ExpectBegin()
	mock.ExpectExec(insertRunSQL).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.SaveRun(context.Background(), run))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunRepository_SaveRun_Duplicate(t *testing.T) {
	repo, mock := newMockRunRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(insertRunSQL).WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
	mock.ExpectRollback()

	err := repo.SaveRun(context.Background(), sampleRun("r1"))

	assert.ErrorIs(t, err, ErrRunAlreadyRecorded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunRepository_SaveRun_RetriesTransientError(t *testing.T) {
	repo, mock := newMockRunRepository(t)
	run := sampleRun("r1")
	run.Failures = nil

	mock.ExpectBegin()
	mock.ExpectExec(insertRunSQL).WillReturnError(&pgconn.PgError{Code: pgerrcode.SerializationFailure})
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectExec(insertRunSQL).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.SaveRun(context.Background(), run))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunRepository_SaveRun_BeginError(t *testing.T) {
	repo, mock := newMockRunRepository(t)
	mock.ExpectBegin().WillReturnError(errors.New("conn refused"))

	err := repo.SaveRun(context.Background(), sampleRun("r1"))

	assert.ErrorIs(t, err, ErrBeginningTransaction)
}

// ── RecentRuns ────────────────────────────────────────────────────────────────

func TestRunRepository_RecentRuns(t *testing.T) {
	repo, mock := newMockRunRepository(t)
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT run_id, workflow, started_at, finished_at, candidates, missing, copied, failed, error FROM sync_runs ORDER BY started_at DESC LIMIT 2")).
		WillReturnRows(sqlmock.NewRows(syncRunColumns).
			AddRow("r2", "dose-reports", start.Add(time.Hour), start.Add(time.Hour), 0, 0, 0, 0, "").
			AddRow("r1", "series-sync", start, start.Add(time.Minute), 3, 2, 1, 1, ""))
	mock.ExpectQuery("FROM run_failures WHERE run_id IN").
		WithArgs("r2", "r1").
		WillReturnRows(sqlmock.NewRows(runFailureColumns).AddRow("r1", "s2", "boom"))

	runs, err := repo.RecentRuns(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "r2", runs[0].RunID)
	assert.Empty(t, runs[0].Failures)
	assert.Equal(t, []models.RunFailure{{ItemID: "s2", Reason: "boom"}}, runs[1].Failures)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunRepository_RecentRuns_DefaultLimitAndEmpty(t *testing.T) {
	repo, mock := newMockRunRepository(t)

	mock.ExpectQuery("LIMIT 20").WillReturnRows(sqlmock.NewRows(syncRunColumns))

	runs, err := repo.RecentRuns(context.Background(), 0)

	require.NoError(t, err)
	assert.Empty(t, runs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunRepository_RecentRuns_QueryError(t *testing.T) {
	repo, mock := newMockRunRepository(t)
	mock.ExpectQuery("FROM sync_runs").WillReturnError(errors.New("boom"))

	_, err := repo.RecentRuns(context.Background(), 5)

	assert.ErrorIs(t, err, ErrExecutingQuery)
}

// ── SQLite round trip ─────────────────────────────────────────────────────────

func TestRunRepository_SQLite(t *testing.T) {
	ctx := context.Background()
	db, err := NewConnectSQLite(ctx, config.DB{DSN: filepath.Join(t.TempDir(), "ledger", "runs.db")}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate())

	repo := NewRunRepository(db, logger.Nop())
	first := sampleRun("r1")
	second := sampleRun("r2")
	second.StartedAt = second.StartedAt.Add(time.Hour)
	second.Failures = append(second.Failures, models.RunFailure{ItemID: "s2", Reason: "again"})

	require.NoError(t, repo.SaveRun(ctx, first))
	require.NoError(t, repo.SaveRun(ctx, second))
	assert.ErrorIs(t, repo.SaveRun(ctx, first), ErrRunAlreadyRecorded)

	runs, err := repo.RecentRuns(ctx, 10)

	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "r2", runs[0].RunID)
	assert.Len(t, runs[0].Failures, 1)
	assert.True(t, first.StartedAt.Equal(runs[1].StartedAt))
	assert.Equal(t, 2, runs[1].Missing)
}
