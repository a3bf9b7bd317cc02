package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/trogers1052/stock-journal/internal/database"
	"github.com/trogers1052/stock-journal/internal/journal"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string       `json:"error"`
	Kind  journal.Kind `json:"kind,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// respondFailure maps a store error onto a status code
func respondFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, journal.ErrNotReady):
		respondError(w, http.StatusUnauthorized, err.Error())
		return
	case errors.Is(err, database.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	jerr := journal.Classify(err)
	status := http.StatusInternalServerError
	switch jerr.Kind {
	case journal.KindValidation:
		status = http.StatusBadRequest
	case journal.KindNetwork:
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, errorResponse{Error: jerr.Message, Kind: jerr.Kind})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// pathID returns the {id} route variable. Anything that is not a uuid cannot
// name a stored row, so it is answered with 404.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := mux.Vars(r)["id"]
	if _, err := uuid.Parse(id); err != nil {
		respondError(w, http.StatusNotFound, "not found")
		return "", false
	}
	return id, true
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// requestLogger logs one line per request
func requestLogger(logger *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(start)),
			}
			if rec.status >= http.StatusInternalServerError {
				logger.Error("request failed", fields...)
				return
			}
			logger.Info("request", fields...)
		})
	}
}
