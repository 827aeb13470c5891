// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-pacs-sync/internal/config"
	"github.com/MKhiriev/go-pacs-sync/internal/logger"
	"github.com/MKhiriev/go-pacs-sync/internal/utils"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// RunIDHeader carries the sync run identifier on requests made during a
// workflow run.
const RunIDHeader = "X-Sync-Run-ID"

type httpTransport struct {
	client  *utils.HTTPClient
	host    string
	limiter *rate.Limiter

	logger *logger.Logger
}

// NewHTTPTransport constructs a resty-backed [Transport] for cfg.
//
// Credentials embedded in cfg.Address as userinfo are sent as HTTP basic
// auth and stripped from the base URL. A non-empty cfg.Token is sent as
// "Authorization: <cfg.TokenScheme> <cfg.Token>" instead. A positive
// cfg.RateLimit throttles requests to that many per second.
//
// Returns an error if cfg.Address is empty or cannot be parsed as a URL.
func NewHTTPTransport(cfg config.Endpoint, log *logger.Logger) (Transport, error) {
	u, err := normalizeBaseURL(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint address: %w", err)
	}

	client := utils.NewHTTPClient()

	if u.User != nil {
		password, _ := u.User.Password()
		client.SetBasicAuth(u.User.Username(), password)
		u.User = nil
	}
	if token := strings.TrimSpace(cfg.Token); token != "" {
		scheme := cfg.TokenScheme
		if scheme == "" {
			scheme = "Splunk"
		}
		client.SetAuthScheme(scheme).SetAuthToken(token)
	}
	if cfg.RequestTimeout > 0 {
		client.SetTimeout(cfg.RequestTimeout.D())
	}
	if cfg.Insecure {
		client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) //nolint:gosec // self-signed management ports
	}

	client.SetBaseURL(strings.TrimRight(u.String(), "/"))

	t := &httpTransport{
		client: client,
		host:   u.Host,
		logger: log,
	}
	if cfg.RateLimit > 0 {
		t.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	return t, nil
}

func normalizeBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("address must include host and scheme")
	}

	return u, nil
}

// Host implements [Transport].
func (h *httpTransport) Host() string {
	return h.host
}

// Get implements [Transport].
func (h *httpTransport) Get(ctx context.Context, path string, params map[string]string) (*Response, error) {
	req := h.client.R().SetContext(ctx)
	if len(params) > 0 {
		req.SetQueryParamsFromValues(queryValues(params))
	}

	return h.execute(ctx, http.MethodGet, path, req)
}

// Post implements [Transport].
func (h *httpTransport) Post(ctx context.Context, path string, body any, headers map[string]string) (*Response, error) {
	req := h.client.R().SetContext(ctx)

	switch b := body.(type) {
	case nil:
	case []byte:
		req.SetBody(b)
	case string:
		req.SetBody(b)
	case url.Values:
		req.SetFormDataFromValues(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		req.SetHeader("Content-Type", "application/json").SetBody(data)
	}

	req.SetHeaders(headers)

	return h.execute(ctx, http.MethodPost, path, req)
}

func (h *httpTransport) execute(ctx context.Context, method, path string, req *resty.Request) (*Response, error) {
	if h.limiter != nil {
		if err := h.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%s %s: rate limiter: %w", method, path, err)
		}
	}

	runID, _ := utils.GetRunIDFromContext(ctx)
	if runID != "" {
		req.SetHeader(RunIDHeader, runID)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	out := &Response{
		Status:      resp.StatusCode(),
		ContentType: resp.Header().Get("Content-Type"),
		Raw:         resp.Body(),
	}

	if !out.OK() {
		h.logger.Warn().
			Str("func", "httpTransport.execute").
			Str("method", method).
			Str("path", path).
			Str("run_id", runID).
			Int("status", out.Status).
			Str("body", truncate(out.Raw, 512)).
			Msg("request returned non-success status")
		return out, nil
	}

	if out.IsJSON() && len(out.Raw) > 0 {
		var v any
		if err := json.Unmarshal(out.Raw, &v); err != nil {
			h.logger.Warn().
				Err(fmt.Errorf("%w: %w", ErrMalformedResponse, err)).
				Str("func", "httpTransport.execute").
				Str("path", path).
				Msg("response declared JSON but could not be decoded")
		} else {
			out.JSON = v
		}
	}

	return out, nil
}

// queryValues builds url.Values from params. An empty value is encoded as
// "key=", which the archive accepts for flags such as "simplify".
func queryValues(params map[string]string) url.Values {
	v := make(url.Values, len(params))
	for k, val := range params {
		v.Set(k, val)
	}
	return v
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
