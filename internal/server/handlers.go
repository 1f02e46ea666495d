package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/engine"
	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/export"
	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/service"
)

// Community responses are safe to cache briefly at the edge.
const cacheControl = "s-maxage=60, stale-while-revalidate=300"

// APIHandlers exposes the community analytics endpoints.
type APIHandlers struct {
	logger  *slog.Logger
	service *service.CommunityService
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, svc *service.CommunityService) *APIHandlers {
	return &APIHandlers{
		logger:  logger,
		service: svc,
	}
}

func (h *APIHandlers) handleWeekly(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	query := r.URL.Query()
	payload, err := h.service.Weekly(r.Context(), engine.WeeklyParams{
		UserID:     query.Get("user_id"),
		TimeWindow: query.Get("time_window"),
		Debug:      query.Get("debug") == "1",
	})
	if err != nil {
		h.writeServiceError(w, err, "weekly")
		return
	}
	w.Header().Set("Cache-Control", cacheControl)
	respondJSON(w, http.StatusOK, payload)
}

func (h *APIHandlers) handleRadar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	query := r.URL.Query()
	payload, err := h.service.Radar(r.Context(), engine.RadarParams{
		UserID: query.Get("user_id"),
		Hours:  parseInt(query.Get("hours"), 0),
		Debug:  query.Get("debug") == "1",
	})
	if err != nil {
		h.writeServiceError(w, err, "radar")
		return
	}
	w.Header().Set("Cache-Control", cacheControl)
	respondJSON(w, http.StatusOK, payload)
}

func (h *APIHandlers) handleNetwork(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	query := r.URL.Query()
	payload, err := h.service.Network(r.Context(), engine.NetworkParams{
		UserID: query.Get("user_id"),
		Hours:  parseInt(query.Get("hours"), 0),
		Mode:   engine.BucketMode(query.Get("mode")),
		Debug:  query.Get("debug") == "1",
	})
	if err != nil {
		h.writeServiceError(w, err, "network")
		return
	}
	w.Header().Set("Cache-Control", cacheControl)
	respondJSON(w, http.StatusOK, payload)
}

func (h *APIHandlers) handleQuests(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	query := r.URL.Query()
	payload, err := h.service.Quests(r.Context(), engine.QuestsParams{
		UserID: query.Get("user_id"),
		Debug:  query.Get("debug") == "1",
	})
	if err != nil {
		h.writeServiceError(w, err, "quests")
		return
	}
	w.Header().Set("Cache-Control", cacheControl)
	respondJSON(w, http.StatusOK, payload)
}

func (h *APIHandlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	query := r.URL.Query()
	payload, err := h.service.Health(r.Context(), engine.HealthParams{
		UserID: query.Get("user_id"),
		Debug:  query.Get("debug") == "1",
	})
	if err != nil {
		h.writeServiceError(w, err, "health")
		return
	}
	w.Header().Set("Cache-Control", cacheControl)
	respondJSON(w, http.StatusOK, payload)
}

func (h *APIHandlers) writeServiceError(w http.ResponseWriter, err error, view string) {
	switch {
	case errors.Is(err, service.ErrMemberRequired), errors.Is(err, service.ErrInvalidMode):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, export.ErrUnavailable):
		h.logger.Error("upstream fetch failed", "view", view, "error", err)
		writeError(w, http.StatusBadGateway, "reader_unavailable")
	default:
		h.logger.Error("view computation failed", "view", view, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func parseInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return fallback
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{
		"error": msg,
	})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
