package utils

import (
	"github.com/go-resty/resty/v2"
)

// UserAgent is sent with every outgoing request.
const UserAgent = "go-pacs-sync"

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
//
// Example usage:
//
//	client := utils.NewHTTPClient()
//	resp, err := client.R().Get("http://localhost:8042/studies")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a new HTTPClient with its own connection pool. The
// client never retries on its own: retry decisions belong to the caller.
func NewHTTPClient() *HTTPClient {
	c := resty.New().
		SetHeader("User-Agent", UserAgent).
		SetRetryCount(0)
	return &HTTPClient{Client: c}
}
