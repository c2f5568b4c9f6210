package httpclient

import (
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"strings"

	apperrors "github.com/neetharmaliackal/fittrack-pro-02/pkg/errors"
)

// detailResponse is the flat error shape returned by most endpoints.
type detailResponse struct {
	Detail string `json:"detail"`
}

// ParseResponseError reads the body of a non-2xx HTTP response and translates
// it into an APIError. The server is inconsistent about error bodies: some
// endpoints return {"detail": "..."}, others a map of field name to a list of
// error strings. Both shapes are accepted; the field-map form is flattened
// across all fields into one joined, human-readable message. Anything else
// falls back to a generic message carrying the status code.
//
// The caller should only invoke this when resp.StatusCode indicates an error
// (i.e., not 2xx). The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, fallback string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		return apperrors.FromStatus(resp.StatusCode, fallback)
	}

	if msg := errorMessage(bodyBytes); msg != "" {
		return apperrors.FromStatus(resp.StatusCode, msg)
	}
	return apperrors.FromStatus(resp.StatusCode, fallback)
}

// errorMessage extracts a human-readable message from an error body, or
// returns "" when neither known shape matches.
func errorMessage(body []byte) string {
	var flat detailResponse
	if json.Unmarshal(body, &flat) == nil && flat.Detail != "" {
		return flat.Detail
	}

	var fields map[string][]string
	if json.Unmarshal(body, &fields) == nil && len(fields) > 0 {
		return flattenFieldErrors(fields)
	}

	return ""
}

// flattenFieldErrors joins every error string across every field into a
// single message. Field order is sorted so the message is deterministic.
func flattenFieldErrors(fields map[string][]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var msgs []string
	for _, name := range names {
		msgs = append(msgs, fields[name]...)
	}
	return strings.Join(msgs, ", ")
}

// DrainAndClose discards any unread portion of the body and closes it so the
// underlying connection can be reused.
func DrainAndClose(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
	_ = resp.Body.Close()
}
