// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package search

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-pacs-sync/internal/adapter"
	"github.com/MKhiriev/go-pacs-sync/internal/config"
	"github.com/MKhiriev/go-pacs-sync/internal/logger"
	"github.com/MKhiriev/go-pacs-sync/internal/metrics"
	"github.com/MKhiriev/go-pacs-sync/models"
	"github.com/sethvargo/go-retry"
)

const (
	jobsPath = "services/search/jobs"

	dispatchFailed = "FAILED"
)

// errStillRunning marks a poll that saw an unfinished job. It never leaves
// the package.
var errStillRunning = errors.New("search job still running")

// Options tunes the poller.
type Options struct {
	PollInterval  time.Duration
	MaxWait       time.Duration
	PageSize      int
	ProgressEvery int
}

// DefaultOptions returns a one second poll interval, a ten minute maximum
// wait, pages of 50000 rows and a progress line every fifth poll.
func DefaultOptions() Options {
	return Options{
		PollInterval:  time.Second,
		MaxWait:       10 * time.Minute,
		PageSize:      50000,
		ProgressEvery: 5,
	}
}

// OptionsFromConfig converts the jobs section of the configuration.
func OptionsFromConfig(cfg config.Jobs) Options {
	return Options{
		PollInterval:  cfg.PollInterval.D(),
		MaxWait:       cfg.MaxWait.D(),
		PageSize:      cfg.PageSize,
		ProgressEvery: cfg.ProgressEvery,
	}
}

// Client runs search jobs over a [adapter.Transport] pointed at the index
// management endpoint.
type Client struct {
	transport adapter.Transport
	opts      Options

	logger *logger.Logger
}

// NewClient builds a Client. Zero fields of opts are replaced with the
// values of [DefaultOptions].
func NewClient(transport adapter.Transport, opts Options, log *logger.Logger) *Client {
	def := DefaultOptions()
	if opts.PollInterval <= 0 {
		opts.PollInterval = def.PollInterval
	}
	if opts.MaxWait <= 0 {
		opts.MaxWait = def.MaxWait
	}
	if opts.PageSize <= 0 {
		opts.PageSize = def.PageSize
	}
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = def.ProgressEvery
	}

	return &Client{transport: transport, opts: opts, logger: log}
}

type submitResponse struct {
	XMLName xml.Name `xml:"response"`
	SID     string   `xml:"sid"`
}

// Submit creates a search job for query and returns its id.
func (c *Client) Submit(ctx context.Context, query string) (string, error) {
	resp, err := c.transport.Post(ctx, jobsPath, url.Values{"search": {query}}, nil)
	if err != nil {
		return "", fmt.Errorf("submit search job: %w", err)
	}
	if err = resp.Err(); err != nil {
		return "", fmt.Errorf("submit search job: %w", err)
	}

	var sr submitResponse
	if err = xml.Unmarshal(resp.Raw, &sr); err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoJobID, err)
	}
	sid := strings.TrimSpace(sr.SID)
	if sid == "" {
		return "", ErrNoJobID
	}

	return sid, nil
}

// PollUntilDone polls job sid until it is done and returns its result count.
func (c *Client) PollUntilDone(ctx context.Context, sid string) (int, error) {
	job := &models.SearchJob{SID: sid, State: models.JobSubmitted}
	if err := c.poll(ctx, job); err != nil {
		return 0, err
	}
	return job.ResultCount, nil
}

func (c *Client) poll(ctx context.Context, job *models.SearchJob) error {
	log := c.logger.WithFields("sid", job.SID)
	job.State = models.JobPolling

	b := retry.WithMaxDuration(c.opts.MaxWait, retry.NewConstant(c.opts.PollInterval))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		if err := c.status(ctx, job); err != nil {
			return err
		}

		if (job.Polls-1)%c.opts.ProgressEvery == 0 {
			log.Info().
				Str("func", "Client.poll").
				Int("poll", job.Polls).
				Str("dispatch_state", job.DispatchState).
				Int("result_count", job.ResultCount).
				Msg("waiting for search job")
		}

		switch {
		case strings.EqualFold(job.DispatchState, dispatchFailed):
			return fmt.Errorf("%w: sid %s", ErrJobFailed, job.SID)
		case job.Done:
			return nil
		default:
			return retry.RetryableError(errStillRunning)
		}
	})

	switch {
	case err == nil:
		job.State = models.JobDone
	case errors.Is(err, errStillRunning):
		job.State = models.JobTimedOut
		err = fmt.Errorf("%w: sid %s after %d polls", ErrJobTimeout, job.SID, job.Polls)
	default:
		job.State = models.JobFailed
	}
	metrics.SearchJobs.WithLabelValues(string(job.State)).Inc()

	return err
}

// status fetches the job status document once and updates job.
func (c *Client) status(ctx context.Context, job *models.SearchJob) error {
	resp, err := c.transport.Get(ctx, jobsPath+"/"+job.SID, map[string]string{"output_mode": "json"})
	if err != nil {
		return fmt.Errorf("poll search job: %w", err)
	}
	if err = resp.Err(); err != nil {
		return fmt.Errorf("poll search job: %w", err)
	}

	var st models.JobStatus
	if err = resp.Decode(&st); err != nil {
		return fmt.Errorf("poll search job: %w", err)
	}
	if len(st.Entry) == 0 {
		return fmt.Errorf("poll search job: %w: no entry", adapter.ErrMalformedResponse)
	}

	content := st.Entry[0].Content
	job.Polls++
	job.Done = content.IsDone
	job.DispatchState = content.DispatchState
	job.ResultCount = content.ResultCount
	if content.IsFailed {
		job.DispatchState = dispatchFailed
	}
	metrics.SearchPolls.Inc()

	return nil
}

// FetchResults pages through the results of job sid. count is the total
// reported by the job; it determines the number of pages requested.
func (c *Client) FetchResults(ctx context.Context, sid string, count int) ([]string, error) {
	if count <= 0 {
		return nil, nil
	}

	pages := (count + c.opts.PageSize - 1) / c.opts.PageSize
	rows := make([]string, 0, count)

	for i := 0; i < pages; i++ {
		resp, err := c.transport.Get(ctx, jobsPath+"/"+sid+"/results", map[string]string{
			"output_mode": "csv",
			"count":       strconv.Itoa(c.opts.PageSize),
			"offset":      strconv.Itoa(i * c.opts.PageSize),
		})
		if err != nil {
			return nil, fmt.Errorf("fetch search results page %d: %w", i, err)
		}
		if err = resp.Err(); err != nil {
			return nil, fmt.Errorf("fetch search results page %d: %w", i, err)
		}

		page, err := parseCSV(resp.Raw)
		if err != nil {
			return nil, fmt.Errorf("fetch search results page %d: %w", i, err)
		}
		rows = append(rows, page...)
	}
	metrics.SearchResultRows.Add(float64(len(rows)))

	return rows, nil
}

// parseCSV drops the header row and joins the fields of every other row
// with ",". Quoting is removed by the CSV reader.
func parseCSV(raw []byte) ([]string, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1

	var rows []string
	header := true
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", adapter.ErrMalformedResponse, err)
		}
		if header {
			header = false
			continue
		}
		rows = append(rows, strings.Join(rec, ","))
	}
	return rows, nil
}

// Run implements [Searcher].
func (c *Client) Run(ctx context.Context, query string) ([]string, error) {
	sid, err := c.Submit(ctx, query)
	if err != nil {
		return nil, err
	}

	job := &models.SearchJob{Query: query, SID: sid, State: models.JobSubmitted}
	log := c.logger.WithFields("sid", sid)
	log.Debug().Str("func", "Client.Run").Str("query", query).Msg("search job submitted")

	if err = c.poll(ctx, job); err != nil {
		log.Err(err).Str("func", "Client.Run").Str("state", string(job.State)).Msg("search job did not complete")
		return nil, err
	}

	rows, err := c.FetchResults(ctx, sid, job.ResultCount)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("func", "Client.Run").
		Int("polls", job.Polls).
		Int("rows", len(rows)).
		Msg("search job done")

	return rows, nil
}
