// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pacs-sync/internal/logger"
	"github.com/MKhiriev/go-pacs-sync/models"
	"github.com/sethvargo/go-retry"
)

const (
	defaultRecentRuns = 20
	maxRecentRuns     = 500
)

// runRepository is the SQL implementation of [RunRepository]. It works
// against PostgreSQL and SQLite alike; the dialect only changes the
// placeholder format and the error classifier.
type runRepository struct {
	*DB
	logger *logger.Logger
}

// NewRunRepository constructs a [RunRepository] backed by db.
func NewRunRepository(db *DB, logger *logger.Logger) RunRepository {
	return &runRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveRun inserts run and its failures in one transaction. Transient
// failures (as judged by the dialect's classifier) are retried up to three
// times with exponential backoff.
func (r *runRepository) SaveRun(ctx context.Context, run models.SyncRun) error {
	log := logger.FromContext(ctx)

	b := retry.WithMaxRetries(3, retry.NewExponential(50*time.Millisecond))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		err := r.saveRun(ctx, run)
		if err != nil && r.classify(err) == Retryable {
			log.Warn().Err(err).
				Str("func", "runRepository.SaveRun").
				Str("run_id", run.RunID).
				Msg("retrying ledger write")
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "runRepository.SaveRun").
			Str("run_id", run.RunID).
			Str("workflow", run.Workflow).
			Msg("failed to record sync run")
		return err
	}

	return nil
}

func (r *runRepository) saveRun(ctx context.Context, run models.SyncRun) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() { _ = tx.Rollback() }()

	query, args, err := buildInsertRunQuery(r.builder(), run)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrRunAlreadyRecorded, run.RunID)
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if len(run.Failures) > 0 {
		query, args, err = buildInsertFailuresQuery(r.builder(), run.RunID, run.Failures)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

// RecentRuns returns at most limit runs, newest first, each with its
// failures. A non-positive limit selects the default of 20.
func (r *runRepository) RecentRuns(ctx context.Context, limit int) ([]models.SyncRun, error) {
	log := logger.FromContext(ctx)

	if limit <= 0 {
		limit = defaultRecentRuns
	}
	limit = min(limit, maxRecentRuns)

	query, args, err := buildRecentRunsQuery(r.builder(), limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "runRepository.RecentRuns").Msg("failed to query sync runs")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	runs := make([]models.SyncRun, 0, limit)
	byID := make(map[string]int, limit)
	for rows.Next() {
		var (
			run    models.SyncRun
			failed int
		)
		if err = rows.Scan(
			&run.RunID,
			&run.Workflow,
			&run.StartedAt,
			&run.FinishedAt,
			&run.Candidates,
			&run.Missing,
			&run.Copied,
			&failed,
			&run.Error,
		); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		byID[run.RunID] = len(runs)
		runs = append(runs, run)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	if len(runs) == 0 {
		return runs, nil
	}

	if err = r.attachFailures(ctx, runs, byID); err != nil {
		log.Err(err).Str("func", "runRepository.RecentRuns").Msg("failed to load run failures")
		return nil, err
	}

	return runs, nil
}

func (r *runRepository) attachFailures(ctx context.Context, runs []models.SyncRun, byID map[string]int) error {
	ids := make([]string, len(runs))
	for i, run := range runs {
		ids[i] = run.RunID
	}

	query, args, err := buildRunFailuresQuery(r.builder(), ids)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			runID  string
			itemID string
			reason string
		)
		if err = rows.Scan(&runID, &itemID, &reason); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if i, ok := byID[runID]; ok {
			runs[i].Failures = append(runs[i].Failures, models.RunFailure{ItemID: models.ItemID(itemID), Reason: reason})
		}
	}
	if err = rows.Err(); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return isPostgresUniqueViolation(err) || isSQLiteUniqueViolation(err)
}
