package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes. requireAuth wraps every /api/v1 route.
func SetupRoutes(handler *Handler, requireAuth func(http.Handler) http.Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(requestLogger(handler.logger))

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	if requireAuth != nil {
		api.Use(mux.MiddlewareFunc(requireAuth))
	}

	// Position routes
	api.HandleFunc("/positions", handler.GetPositions).Methods("GET")
	api.HandleFunc("/positions", handler.AddPosition).Methods("POST")
	api.HandleFunc("/positions/summary", handler.GetPositionSummary).Methods("GET")
	api.HandleFunc("/positions/{id}", handler.UpdatePosition).Methods("PATCH")
	api.HandleFunc("/positions/{id}", handler.DeletePosition).Methods("DELETE")
	api.HandleFunc("/positions/{id}/notes", handler.AddNote).Methods("POST")

	// Analysis note routes
	api.HandleFunc("/notes", handler.GetNotes).Methods("GET")
	api.HandleFunc("/notes/{id}", handler.UpdateNote).Methods("PATCH")
	api.HandleFunc("/notes/{id}", handler.DeleteNote).Methods("DELETE")
	api.HandleFunc("/notes/{id}/move", handler.MoveNote).Methods("POST")
	api.HandleFunc("/board/{symbol}", handler.GetBoard).Methods("GET")

	// Daily note routes
	api.HandleFunc("/daily-notes", handler.GetDailyNotes).Methods("GET")
	api.HandleFunc("/daily-notes", handler.AddDailyNote).Methods("POST")
	api.HandleFunc("/daily-notes/{id}", handler.UpdateDailyNote).Methods("PATCH")
	api.HandleFunc("/daily-notes/{id}", handler.DeleteDailyNote).Methods("DELETE")

	api.HandleFunc("/auth/signout", handler.SignOut).Methods("POST")

	return r
}
