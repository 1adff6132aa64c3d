package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

type optimizeResponse struct {
	RequestID string        `json:"requestId"`
	Results   []EventResult `json:"results"`
	// Detail is the text report of each event, keyed by event id.
	Detail map[string]string `json:"detail,omitempty"`
}

// handleOptimize runs every event in body and returns the HTTP status and
// JSON response. It is shared by the HTTP server and the Lambda handler.
func handleOptimize(ctx context.Context, body string, withDetail bool, cfg Config, log logr.Logger) (int, []byte) {
	reqID := uuid.NewString()
	log = log.WithValues("requestId", reqID)

	if body == "" {
		return errBody(http.StatusBadRequest, "empty request body")
	}
	events, err := parseEvents(body)
	if err != nil {
		return errBody(http.StatusBadRequest, err.Error())
	}
	if len(events) == 0 {
		return errBody(http.StatusBadRequest, "no events in request")
	}

	results, err := runEvents(ctx, events, cfg, log)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return errBody(http.StatusServiceUnavailable, err.Error())
		}
		log.Error(err, "optimize failed")
		return errBody(http.StatusInternalServerError, err.Error())
	}

	resp := optimizeResponse{RequestID: reqID, Results: results}
	if withDetail {
		resp.Detail = make(map[string]string, len(results))
		for i, r := range results {
			resp.Detail[r.ID] = FormatResult(&events[i], r.Result)
		}
	}
	out, err := json.Marshal(resp)
	if err != nil {
		return errBody(http.StatusInternalServerError, err.Error())
	}
	log.Info("[api] optimized", "events", len(results))
	return http.StatusOK, out
}

func errBody(code int, msg string) (int, []byte) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return code, body
}
