package api

import (
	"net/http"

	"github.com/trogers1052/stock-journal/internal/models"
)

// GetDailyNotes handles GET /daily-notes
func (h *Handler) GetDailyNotes(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, s.DailyNotes.Snapshot())
}

// AddDailyNote handles POST /daily-notes
func (h *Handler) AddDailyNote(w http.ResponseWriter, r *http.Request) {
	var req models.NewDailyNote
	if !decodeBody(w, r, &req) {
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	n, err := s.DailyNotes.Add(r.Context(), req)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, n)
}

// UpdateDailyNote handles PATCH /daily-notes/{id}
func (h *Handler) UpdateDailyNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.DailyNoteUpdate
	if !decodeBody(w, r, &req) {
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	n, err := s.DailyNotes.Update(r.Context(), id, req)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, n)
}

// DeleteDailyNote handles DELETE /daily-notes/{id}
func (h *Handler) DeleteDailyNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := s.DailyNotes.Delete(r.Context(), id); err != nil {
		respondFailure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
