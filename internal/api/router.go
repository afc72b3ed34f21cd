package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/newslens/internal/api/handlers"
	"github.com/wonny/newslens/pkg/logger"
)

// RouterDeps collects the handlers the router mounts. WebSocket is
// optional; when nil the /ws route is not registered.
type RouterDeps struct {
	Analyze   *handlers.AnalyzeHandler
	Companies *handlers.CompaniesHandler
	History   *handlers.HistoryHandler
	WebSocket http.HandlerFunc
}

// NewRouter creates and configures the HTTP router
func NewRouter(deps RouterDeps, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/analyze", deps.Analyze.Analyze).Methods("POST")

	api.HandleFunc("/companies", deps.Companies.List).Methods("GET")
	api.HandleFunc("/companies/{ticker}", deps.Companies.Get).Methods("GET")
	api.HandleFunc("/sectors", deps.Companies.Sectors).Methods("GET")

	api.HandleFunc("/history", deps.History.Recent).Methods("GET")
	api.HandleFunc("/history/{id}", deps.History.Get).Methods("GET")

	if deps.WebSocket != nil {
		r.HandleFunc("/ws", deps.WebSocket).Methods("GET")
	}

	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "newslens-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
