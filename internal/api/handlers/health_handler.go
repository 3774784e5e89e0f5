package handlers

import (
	"context"
	"net/http"
	"time"

	"landmark-catalog/internal/repository"
	"landmark-catalog/internal/services"
)

type HealthCheckResponse struct {
	Status    string `json:"status"`
	Store     string `json:"store"`
	Landmarks int64  `json:"landmarks"`
	Cache     string `json:"cache"`
	Uptime    string `json:"uptime"`
}

type HealthHandler struct {
	repo      repository.LandmarkRepository
	cache     services.CacheService
	startedAt time.Time
}

// NewHealthHandler reports on repo and, when non-nil, cache.
func NewHealthHandler(repo repository.LandmarkRepository, cache services.CacheService) *HealthHandler {
	return &HealthHandler{repo: repo, cache: cache, startedAt: time.Now()}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	response := HealthCheckResponse{
		Status: "ok",
		Store:  h.repo.Kind(),
		Cache:  "disabled",
		Uptime: time.Since(h.startedAt).Round(time.Second).String(),
	}

	if h.cache != nil {
		response.Cache = "healthy"
		if err := h.cache.Ping(ctx); err != nil {
			response.Cache = "unreachable"
		}
	}

	count, err := h.repo.Count(ctx)
	if err != nil {
		response.Status = "degraded"
		RespondWithJSON(w, http.StatusServiceUnavailable, response)
		return
	}
	response.Landmarks = count

	RespondWithJSON(w, http.StatusOK, response)
}
