package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/trogers1052/stock-journal/internal/auth"
	"github.com/trogers1052/stock-journal/internal/board"
	"github.com/trogers1052/stock-journal/internal/journal"
	"github.com/trogers1052/stock-journal/internal/models"
	"go.uber.org/zap"
)

// Pinger reports whether the database is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	registry    *journal.Registry
	revocations *auth.Revocations
	db          Pinger
	logger      *zap.Logger
}

// NewHandler creates a new Handler. revocations may be nil, in which case
// sign-out only drops the cached session.
func NewHandler(registry *journal.Registry, revocations *auth.Revocations, db Pinger, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		registry:    registry,
		revocations: revocations,
		db:          db,
		logger:      logger,
	}
}

// session returns the signed-in user's session, writing the failure response
// when there is none
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*journal.Session, bool) {
	s, err := h.registry.Session(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		respondFailure(w, err)
		return nil, false
	}
	return s, true
}

// GetPositions handles GET /positions
func (h *Handler) GetPositions(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, s.Positions.Snapshot())
}

// AddPosition handles POST /positions
func (h *Handler) AddPosition(w http.ResponseWriter, r *http.Request) {
	var req models.NewStockPosition
	if !decodeBody(w, r, &req) {
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	p, err := s.Positions.Add(r.Context(), req)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

// UpdatePosition handles PATCH /positions/{id}
func (h *Handler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.PositionUpdate
	if !decodeBody(w, r, &req) {
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	p, err := s.Positions.Update(r.Context(), id, req)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// DeletePosition handles DELETE /positions/{id}. The position's notes go first.
func (h *Handler) DeletePosition(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := s.DeletePosition(r.Context(), id); err != nil {
		respondFailure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetPositionSummary handles GET /positions/summary?search=&sort=&desc=&group=
func (h *Handler) GetPositionSummary(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	rows := board.Summarize(s.Positions.Snapshot().Rows, s.Notes.Snapshot().Rows)
	rows = board.Filter(rows, q.Get("search"))

	if field := q.Get("sort"); field != "" {
		desc, _ := strconv.ParseBool(q.Get("desc"))
		sorted, err := board.Sort(rows, field, desc)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		rows = sorted
	}

	if field := q.Get("group"); field != "" {
		groups, err := board.GroupBy(rows, field)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, groups)
		return
	}

	respondJSON(w, http.StatusOK, rows)
}

// SignOut handles POST /auth/signout
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondFailure(w, journal.ErrNotReady)
		return
	}

	if h.revocations != nil {
		if err := h.revocations.Revoke(r.Context(), claims); err != nil {
			h.logger.Error("failed to revoke token", zap.String("user_id", claims.UserID()), zap.Error(err))
			respondError(w, http.StatusServiceUnavailable, "sign-out unavailable")
			return
		}
	}
	h.registry.Remove(claims.UserID())
	w.WriteHeader(http.StatusNoContent)
}

type healthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

// HealthCheck handles GET /health. Sessions counts the users cached on this instance.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "healthy", Sessions: h.registry.Len()}
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.logger.Warn("health check failed", zap.Error(err))
			resp.Status = "unhealthy"
			respondJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
	}
	respondJSON(w, http.StatusOK, resp)
}
