package adapter

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
)

// Response is the outcome of a request that reached the server.
type Response struct {
	Status      int
	ContentType string

	// Raw is the body as received.
	Raw []byte

	// JSON holds the decoded body when the response was a well-formed JSON
	// document, nil otherwise.
	JSON any
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r.Status >= http.StatusOK && r.Status < http.StatusMultipleChoices
}

// Err maps a non-2xx status to a sentinel error. It returns nil for 2xx.
func (r *Response) Err() error {
	return mapHTTPError(r.Status, r.Raw)
}

// IsJSON reports whether the response declared a JSON media type.
func (r *Response) IsJSON() bool {
	return isJSONContentType(r.ContentType)
}

// Decode unmarshals the raw body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Raw, v); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return nil
}

// Object returns the decoded body as a JSON object.
func (r *Response) Object() (map[string]any, bool) {
	m, ok := r.JSON.(map[string]any)
	return m, ok
}

// Strings returns the decoded body as an array of strings, skipping any
// non-string element.
func (r *Response) Strings() ([]string, bool) {
	arr, ok := r.JSON.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}

func isJSONContentType(ct string) bool {
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}
