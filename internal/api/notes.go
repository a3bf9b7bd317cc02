package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/trogers1052/stock-journal/internal/board"
	"github.com/trogers1052/stock-journal/internal/models"
	"github.com/trogers1052/stock-journal/internal/validation"
)

type moveRequest struct {
	OverID string `json:"over_id"`
}

type moveResponse struct {
	Moved bool                `json:"moved"`
	Note  models.AnalysisNote `json:"note"`
}

// GetNotes handles GET /notes. ?stock_id= narrows to one position.
func (h *Handler) GetNotes(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	snap := s.Notes.Snapshot()
	if stockID := r.URL.Query().Get("stock_id"); stockID != "" {
		snap.Rows = s.Notes.ForPosition(stockID)
	}
	respondJSON(w, http.StatusOK, snap)
}

// AddNote handles POST /positions/{id}/notes
func (h *Handler) AddNote(w http.ResponseWriter, r *http.Request) {
	stockID, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.NewAnalysisNote
	if !decodeBody(w, r, &req) {
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	position, found := s.Positions.Get(stockID)
	if !found {
		respondError(w, http.StatusNotFound, "position not found")
		return
	}

	n, err := s.Notes.Add(r.Context(), position.ID, position.Symbol, req)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, n)
}

// UpdateNote handles PATCH /notes/{id}
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.NoteUpdate
	if !decodeBody(w, r, &req) {
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	n, err := s.Notes.Update(r.Context(), id, req)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, n)
}

// DeleteNote handles DELETE /notes/{id}
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := s.Notes.Delete(r.Context(), id); err != nil {
		respondFailure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveNote handles POST /notes/{id}/move, the drop of a note onto a board group
func (h *Handler) MoveNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req moveRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	if _, found := s.Notes.Get(id); !found {
		respondError(w, http.StatusNotFound, "note not found")
		return
	}
	moved, err := board.NewMover(s.Notes).Drop(r.Context(), id, req.OverID)
	if err != nil {
		respondFailure(w, err)
		return
	}

	n, _ := s.Notes.Get(id)
	respondJSON(w, http.StatusOK, moveResponse{Moved: moved, Note: n})
}

// GetBoard handles GET /board/{symbol}
func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	symbol := validation.NormalizeSymbol(mux.Vars(r)["symbol"])
	respondJSON(w, http.StatusOK, board.BuildBoard(symbol, s.Notes.Snapshot().Rows))
}
