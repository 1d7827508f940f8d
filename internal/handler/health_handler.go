package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"session-security/internal/model/requestresponse"
	"session-security/internal/util"
)

const readinessTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler : /health/live и /health/ready. Кэш на готовность не влияет
type HealthHandler struct {
	database         Pinger
	cache            Pinger
	databaseRequired bool
}

func NewHealthHandler(database, cache Pinger, databaseRequired bool) *HealthHandler {
	return &HealthHandler{
		database:         database,
		cache:            cache,
		databaseRequired: databaseRequired,
	}
}

// Live godoc
// @Summary Liveness
// @Tags Health
// @Produce json
// @Success 200 {object} requestresponse.LiveResponse
// @Router /health/live [get]
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	util.WriteJSON(w, http.StatusOK, requestresponse.LiveResponse{Status: "ok"})
}

// Ready godoc
// @Summary Readiness
// @Description 503, если обязательная БД недоступна
// @Tags Health
// @Produce json
// @Success 200 {object} requestresponse.ReadyResponse
// @Failure 503 {object} requestresponse.ReadyResponse
// @Router /health/ready [get]
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	resp := requestresponse.ReadyResponse{
		Status:   "ready",
		Database: probe(ctx, "database", h.database),
		Cache:    probe(ctx, "cache", h.cache),
	}

	status := http.StatusOK
	if resp.Database != "ok" && h.databaseRequired {
		resp.Status = "not_ready"
		status = http.StatusServiceUnavailable
	}

	util.WriteJSON(w, status, resp)
}

func probe(ctx context.Context, name string, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		slog.Warn("проверка готовности не пройдена", "component", name, "error", err)
		return "unavailable"
	}
	return "ok"
}
