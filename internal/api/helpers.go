// ShuttleHub - Badminton Retail Catalog and Recommendation Backend
// Copyright 2026 Nguyen Hoang Kha (nguyenhoangkha03)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nguyenhoangkha03/shuttlehub

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/nguyenhoangkha03/shuttlehub/internal/logging"
	"github.com/nguyenhoangkha03/shuttlehub/internal/models"
)

// writeJSON writes a success envelope with the given payload.
func writeJSON(w http.ResponseWriter, status int, data any, started time.Time, cached bool) {
	queryTime := time.Since(started).Milliseconds()
	if cached {
		queryTime = 0
	}
	resp := models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: queryTime,
			Cached:      cached,
		},
	}
	writeEnvelope(w, status, resp)
}

// writeError writes an error envelope.
func writeError(w http.ResponseWriter, status int, code, message string) {
	resp := models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
	}
	writeEnvelope(w, status, resp)
}

func writeEnvelope(w http.ResponseWriter, status int, resp models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Err(err).Msg("Failed to encode response")
	}
}
