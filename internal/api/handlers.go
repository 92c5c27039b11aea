// Reelharbor - Content Discovery and Recommendation Orchestration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelharbor

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/tomtom215/reelharbor/internal/logging"
	"github.com/tomtom215/reelharbor/internal/recommend"
)

// Error codes returned in the API error envelope.
const (
	codeInvalidRequest     = "INVALID_REQUEST"
	codeProvidersExhausted = "PROVIDERS_EXHAUSTED"
	codeInternalError      = "INTERNAL_ERROR"
)

// RecommendService is the slice of the recommendation service the HTTP
// layer consumes. Satisfied by *recommend.Service.
type RecommendService interface {
	GetRecommendations(ctx context.Context, p recommend.DiscoverParams) (*recommend.Recommendations, error)
	GetBlendEnriched(ctx context.Context, p recommend.BlendParams) (*recommend.Recommendations, error)
	GetSimilar(ctx context.Context, id int, mediaType recommend.MediaType, limit int) (*recommend.Recommendations, error)
	ProviderAvailable(ctx context.Context, name string) (bool, error)
}

// Handler holds the HTTP handlers for the recommendation API.
type Handler struct {
	svc      RecommendService
	validate *validator.Validate
}

// NewHandler creates a Handler.
func NewHandler(svc RecommendService) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(),
	}
}

// discoverRequest is the POST /recommendations/discover body.
type discoverRequest struct {
	Prompt     string `json:"prompt" validate:"required,min=1,max=500"`
	MediaType  string `json:"media_type" validate:"omitempty,oneof=movie tv"`
	Limit      int    `json:"limit" validate:"omitempty,min=1,max=50"`
	Year       int    `json:"year" validate:"omitempty,min=1880,max=2100"`
	ExcludeIDs []int  `json:"exclude_ids" validate:"omitempty,max=100"`
}

// blendRequest is the POST /recommendations/blend body.
type blendRequest struct {
	Titles     []string `json:"titles" validate:"required,min=2,max=5,dive,min=1,max=200"`
	MediaType  string   `json:"media_type" validate:"omitempty,oneof=movie tv"`
	Limit      int      `json:"limit" validate:"omitempty,min=1,max=50"`
	ExcludeIDs []int    `json:"exclude_ids" validate:"omitempty,max=100"`
}

// Discover handles POST /api/v1/recommendations/discover.
func (h *Handler) Discover(w http.ResponseWriter, r *http.Request) {
	var req discoverRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	start := time.Now()
	recs, err := h.svc.GetRecommendations(r.Context(), recommend.DiscoverParams{
		Prompt:     req.Prompt,
		MediaType:  recommend.MediaType(req.MediaType),
		Limit:      req.Limit,
		Year:       req.Year,
		ExcludeIDs: req.ExcludeIDs,
	})
	h.respondRecommendations(w, r, recs, err, start)
}

// Blend handles POST /api/v1/recommendations/blend.
func (h *Handler) Blend(w http.ResponseWriter, r *http.Request) {
	var req blendRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	start := time.Now()
	recs, err := h.svc.GetBlendEnriched(r.Context(), recommend.BlendParams{
		Titles:     req.Titles,
		MediaType:  recommend.MediaType(req.MediaType),
		Limit:      req.Limit,
		ExcludeIDs: req.ExcludeIDs,
	})
	h.respondRecommendations(w, r, recs, err, start)
}

// Similar handles GET /api/v1/recommendations/similar/{mediaType}/{id}.
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	mediaType, err := recommend.ParseMediaType(chi.URLParam(r, "mediaType"))
	if err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidRequest, "media type must be movie or tv", nil)
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, codeInvalidRequest, "id must be a positive integer", nil)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			respondError(w, http.StatusBadRequest, codeInvalidRequest, "limit must be a positive integer", nil)
			return
		}
	}

	start := time.Now()
	recs, err := h.svc.GetSimilar(r.Context(), id, mediaType, limit)
	h.respondRecommendations(w, r, recs, err, start)
}

// providerAvailability is the GET /providers/{name}/availability payload.
type providerAvailability struct {
	Provider  string `json:"provider"`
	Available bool   `json:"available"`
}

// ProviderAvailability handles GET /api/v1/providers/{name}/availability.
// Exposed so callers can preemptively hide affordances for providers in
// cool-down instead of surfacing their fallbacks as surprises.
func (h *Handler) ProviderAvailability(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	available, err := h.svc.ProviderAvailable(r.Context(), name)
	if err != nil {
		if errors.Is(err, recommend.ErrInvalidInput) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "unknown provider", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, codeInternalError, "availability check failed", err)
		return
	}
	respondSuccess(w, http.StatusOK, providerAvailability{Provider: name, Available: available}, 0, false)
}

func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidRequest, "request body must be valid JSON", nil)
		return false
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidRequest, validationMessage(err), nil)
		return false
	}
	return true
}

// respondRecommendations maps service results and sentinel errors onto
// the wire contract. PROVIDERS_EXHAUSTED gets its own code and 503 so
// clients can present a retry affordance instead of an empty grid.
func (h *Handler) respondRecommendations(w http.ResponseWriter, r *http.Request, recs *recommend.Recommendations, err error, start time.Time) {
	if err != nil {
		switch {
		case errors.Is(err, recommend.ErrInvalidInput):
			respondError(w, http.StatusBadRequest, codeInvalidRequest, err.Error(), nil)
		case errors.Is(err, recommend.ErrChainExhausted):
			respondError(w, http.StatusServiceUnavailable, codeProvidersExhausted,
				"no recommendation provider could answer, try again shortly", nil)
		default:
			logging.Ctx(r.Context()).Error().Err(err).Msg("recommendation request failed")
			respondError(w, http.StatusInternalServerError, codeInternalError, "internal error", err)
		}
		return
	}

	respondSuccess(w, http.StatusOK, recs, time.Since(start), recs.Cached)
}

// validationMessage flattens the first validator error into a readable
// message without leaking struct internals.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		return "invalid field " + f.Field() + ": failed " + f.Tag() + " constraint"
	}
	return "request validation failed"
}
