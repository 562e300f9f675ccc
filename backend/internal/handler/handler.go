package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/boards/backend/internal/service"
	"github.com/itchan-dev/boards/shared/api"
	"github.com/itchan-dev/boards/shared/domain"
	"github.com/itchan-dev/boards/shared/errors"
	"github.com/itchan-dev/boards/shared/logger"
)

// HealthChecker reports whether the store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	board   service.BoardService
	thread  service.ThreadService
	listing service.ListingService
	md      api.Renderer
	health  HealthChecker
}

func New(board service.BoardService, thread service.ThreadService, listing service.ListingService, md api.Renderer, health HealthChecker) *Handler {
	return &Handler{
		board:   board,
		thread:  thread,
		listing: listing,
		md:      md,
		health:  health,
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	writeJSONWithStatus(w, http.StatusOK, v)
}

func writeJSONWithStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

// parseIdParam reads a positive integer URL parameter.
func parseIdParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NotFound("Not found")
	}
	return id, nil
}

// parsePage reads ?page=N. Anything unparsable means the first page; the
// pagination clamps out-of-range numbers.
func parsePage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		return 1
	}
	return page
}

func boardAndTopic(r *http.Request) (domain.BoardId, domain.TopicId, error) {
	board, err := parseIdParam(r, "board")
	if err != nil {
		return 0, 0, err
	}
	topic, err := parseIdParam(r, "topic")
	if err != nil {
		return 0, 0, err
	}
	return board, topic, nil
}
