package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/neetharmaliackal/fittrack-pro-02/internal/domain"
)

// listEnvelope is the paginated shape some deployments return from the
// activities endpoint instead of a bare array.
type listEnvelope struct {
	Activities []domain.Activity `json:"activities"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"totalPages"`
}

// decodeActivityList accepts either success shape. A bare array wins; a JSON
// object is treated as the envelope and unwrapped.
func decodeActivityList(resp *http.Response) ([]domain.Activity, error) {
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	var activities []domain.Activity
	if err := json.Unmarshal(raw, &activities); err == nil {
		return activities, nil
	}

	var envelope listEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Activities != nil {
		return envelope.Activities, nil
	}

	return nil, fmt.Errorf("decode activity list: unrecognized response shape")
}
