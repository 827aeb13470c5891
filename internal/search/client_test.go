package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-pacs-sync/internal/adapter"
	"github.com/MKhiriev/go-pacs-sync/internal/config"
	"github.com/MKhiriev/go-pacs-sync/internal/logger"
	"github.com/MKhiriev/go-pacs-sync/internal/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func fastOptions() Options {
	return Options{
		PollInterval:  time.Millisecond,
		MaxWait:       time.Second,
		PageSize:      50000,
		ProgressEvery: 5,
	}
}

func newTestClient(t *testing.T, srv *httptest.Server, opts Options) *Client {
	t.Helper()
	tr, err := adapter.NewHTTPTransport(config.Endpoint{Address: srv.URL}, logger.Nop())
	require.NoError(t, err)
	return NewClient(tr, opts, logger.Nop())
}

func writeStatus(w http.ResponseWriter, done bool, dispatch string, count int) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = fmt.Fprintf(w, `{"entry":[{"content":{"isDone":%t,"dispatchState":%q,"resultCount":%d}}]}`, done, dispatch, count)
}

// ── NewClient ─────────────────────────────────────────────────────────────────

func TestNewClient_FillsDefaults(t *testing.T) {
	c := NewClient(nil, Options{}, logger.Nop())

	assert.Equal(t, DefaultOptions(), c.opts)
}

// ── Submit ────────────────────────────────────────────────────────────────────

func TestSubmit_ParsesSID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/services/search/jobs", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "search index=dicom_series | table ID", r.PostForm.Get("search"))

		w.Header().Set("Content-Type", "text/xml; charset=UTF-8")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<response>\n  <sid>1700000000.42</sid>\n</response>\n"))
	}))
	defer srv.Close()

	sid, err := newTestClient(t, srv, fastOptions()).Submit(context.Background(), "search index=dicom_series | table ID")

	require.NoError(t, err)
	assert.Equal(t, "1700000000.42", sid)
}

func TestSubmit_NoSID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write([]byte(`<response><messages/></response>`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, fastOptions()).Submit(context.Background(), "search *")

	assert.ErrorIs(t, err, ErrNoJobID)
}

func TestSubmit_NotXML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`plain text`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, fastOptions()).Submit(context.Background(), "search *")

	assert.ErrorIs(t, err, ErrNoJobID)
}

func TestSubmit_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, fastOptions()).Submit(context.Background(), "search *")

	assert.ErrorIs(t, err, adapter.ErrUnauthorized)
}

// ── PollUntilDone ─────────────────────────────────────────────────────────────

func TestPollUntilDone_DoneAfterSeveralPolls(t *testing.T) {
	var polls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services/search/jobs/sid-1", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("output_mode"))
		if polls.Add(1) < 3 {
			writeStatus(w, false, "RUNNING", 0)
			return
		}
		writeStatus(w, true, "DONE", 1234)
	}))
	defer srv.Close()

	count, err := newTestClient(t, srv, fastOptions()).PollUntilDone(context.Background(), "sid-1")

	require.NoError(t, err)
	assert.Equal(t, 1234, count)
	assert.Equal(t, int32(3), polls.Load())
}

func TestPollUntilDone_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, false, "RUNNING", 0)
	}))
	defer srv.Close()

	opts := fastOptions()
	opts.PollInterval = 5 * time.Millisecond
	opts.MaxWait = 30 * time.Millisecond

	start := time.Now()
	_, err := newTestClient(t, srv, opts).PollUntilDone(context.Background(), "sid-1")

	assert.ErrorIs(t, err, ErrJobTimeout)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestPollUntilDone_Failed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, false, "FAILED", 0)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, fastOptions()).PollUntilDone(context.Background(), "sid-1")

	assert.ErrorIs(t, err, ErrJobFailed)
}

func TestPollUntilDone_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, false, "RUNNING", 0)
	}))
	defer srv.Close()

	opts := fastOptions()
	opts.PollInterval = 10 * time.Millisecond
	opts.MaxWait = time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestClient(t, srv, opts).PollUntilDone(ctx, "sid-1")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrJobTimeout)
}

func TestPollUntilDone_EmptyEntry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"entry":[]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, fastOptions()).PollUntilDone(context.Background(), "sid-1")

	assert.ErrorIs(t, err, adapter.ErrMalformedResponse)
}

// ── FetchResults ──────────────────────────────────────────────────────────────

// TestFetchResults_Pagination checks that 100000 results with a page size of
// 50000 are fetched with exactly two requests at offsets 0 and 50000, and
// that the header of every page is dropped.
func TestFetchResults_Pagination(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tr := mock.NewMockTransport(ctrl)
	c := NewClient(tr, fastOptions(), logger.Nop())
	ctx := context.Background()

	page := func(offset int) *gomock.Call {
		var b strings.Builder
		b.WriteString("\"ID\",\"SeriesNumber\"\n")
		for i := offset; i < offset+50000; i++ {
			fmt.Fprintf(&b, "\"id-%d\",%d\n", i, i%1000)
		}
		return tr.EXPECT().
			Get(ctx, "services/search/jobs/sid-9/results", map[string]string{
				"output_mode": "csv",
				"count":       "50000",
				"offset":      strconv.Itoa(offset),
			}).
			Return(&adapter.Response{Status: http.StatusOK, Raw: []byte(b.String())}, nil)
	}
	gomock.InOrder(
		page(0),
		page(50000),
	)

	rows, err := c.FetchResults(ctx, "sid-9", 100000)

	require.NoError(t, err)
	require.Len(t, rows, 100000)
	assert.Equal(t, "id-0,0", rows[0])
	assert.Equal(t, "id-50000,0", rows[50000])
	assert.Equal(t, "id-99999,999", rows[99999])
	assert.NotContains(t, rows, "ID,SeriesNumber")
}

func TestFetchResults_PartialLastPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tr := mock.NewMockTransport(ctrl)
	opts := fastOptions()
	opts.PageSize = 2
	c := NewClient(tr, opts, logger.Nop())

	var offsets []string
	tr.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, params map[string]string) (*adapter.Response, error) {
			offsets = append(offsets, params["offset"])
			return &adapter.Response{Status: http.StatusOK, Raw: []byte("ID\nx\n")}, nil
		}).Times(3)

	_, err := c.FetchResults(context.Background(), "sid", 5)

	require.NoError(t, err)
	assert.Equal(t, []string{"0", "2", "4"}, offsets)
}

func TestFetchResults_ZeroCountMakesNoRequests(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tr := mock.NewMockTransport(ctrl)
	c := NewClient(tr, fastOptions(), logger.Nop())

	rows, err := c.FetchResults(context.Background(), "sid", 0)

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestFetchResults_PageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tr := mock.NewMockTransport(ctrl)
	c := NewClient(tr, fastOptions(), logger.Nop())
	tr.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&adapter.Response{Status: http.StatusBadGateway}, nil)

	_, err := c.FetchResults(context.Background(), "sid", 10)

	assert.ErrorIs(t, err, adapter.ErrBadGateway)
}

// ── parseCSV ──────────────────────────────────────────────────────────────────

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"single column", "\"ID\"\n\"1.2.3\"\n\"4.5.6\"\n", []string{"1.2.3", "4.5.6"}},
		{"multiple columns", "ID,SeriesNumber\n\"abc\",\"997\"\n", []string{"abc,997"}},
		{"header only", "\"ParentSeriesID\"\n", nil},
		{"empty", "", nil},
		{"no trailing newline", "ID\nx", []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCSV([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCSV_Malformed(t *testing.T) {
	_, err := parseCSV([]byte("ID\n\"unterminated\n"))

	assert.ErrorIs(t, err, adapter.ErrMalformedResponse)
}

// ── Run ───────────────────────────────────────────────────────────────────────

func TestRun_EndToEnd(t *testing.T) {
	var polls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/services/search/jobs":
			_, _ = w.Write([]byte(`<response><sid>s1</sid></response>`))
		case r.URL.Path == "/services/search/jobs/s1":
			writeStatus(w, polls.Add(1) > 1, "DONE", 3)
		case r.URL.Path == "/services/search/jobs/s1/results":
			assert.Equal(t, "0", r.URL.Query().Get("offset"))
			_, _ = w.Write([]byte(strings.Join([]string{`"ID"`, `"A"`, `"B"`, `"C"`}, "\n")))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	rows, err := newTestClient(t, srv, fastOptions()).Run(context.Background(), "search index=x | table ID")

	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, rows)
}

func TestRun_SubmitFailureIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	rows, err := newTestClient(t, srv, fastOptions()).Run(context.Background(), "search *")

	assert.ErrorIs(t, err, adapter.ErrInternalServerError)
	assert.Nil(t, rows)
}
