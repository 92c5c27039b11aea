// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/reelharbor/internal/models"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	version string
	ready   func(context.Context) error
}

// NewHealthHandler creates a HealthHandler. ready is probed on the
// readiness endpoint; pass the store check from main.
func NewHealthHandler(version string, ready func(context.Context) error) *HealthHandler {
	return &HealthHandler{version: version, ready: ready}
}

type healthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// Live handles GET /health/live. Process is up.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     healthStatus{Status: "alive", Version: h.version},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// Ready handles GET /health/ready. The store must answer.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		if err := h.ready(r.Context()); err != nil {
			respondError(w, http.StatusServiceUnavailable, "NOT_READY", "dependency check failed", err)
			return
		}
	}
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     healthStatus{Status: "ready", Version: h.version},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}
