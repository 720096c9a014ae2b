package http

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"sip-planner/metrics"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

// Routes bundles the handlers served by NewRouter.
type Routes struct {
	Simulation *SimulationHandler
	Comparison *ComparisonHandler
	Goal       *GoalHandler
	Limiter    *RateLimiter
	Metrics    *metrics.Registry
}

// NewRouter wires the API. Simulation endpoints are rate limited; health and
// metrics are not.
func NewRouter(routes Routes) *mux.Router {
	router := mux.NewRouter()
	router.Use(requestIDMiddleware)
	router.Use(accessLogMiddleware(routes.Metrics))

	router.HandleFunc("/health", health).Methods(http.MethodGet)
	router.Handle("/metrics", routes.Metrics.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/simulations").Subrouter()
	if routes.Limiter != nil {
		api.Use(func(next http.Handler) http.Handler {
			return RateLimitMiddleware(routes.Limiter, next)
		})
	}
	api.HandleFunc("", routes.Simulation.Simulate).Methods(http.MethodPost)
	api.HandleFunc("/explain", routes.Simulation.Explain).Methods(http.MethodPost)
	api.HandleFunc("/report", routes.Simulation.Report).Methods(http.MethodPost)
	api.HandleFunc("/recent", routes.Simulation.Recent).Methods(http.MethodGet)
	api.HandleFunc("/compare", routes.Comparison.Compare).Methods(http.MethodPost)
	api.HandleFunc("/goal", routes.Goal.YearsToTarget).Methods(http.MethodPost)

	return router
}

func health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requestIDMiddleware tags each request with a short id, echoed in X-Request-ID.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()[:8]
		}
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func accessLogMiddleware(m *metrics.Registry) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapper, r)
			duration := time.Since(start)

			route := r.URL.Path
			if current := mux.CurrentRoute(r); current != nil {
				if tmpl, err := current.GetPathTemplate(); err == nil {
					route = tmpl
				}
			}
			m.ObserveHTTP(route, r.Method, wrapper.statusCode, duration)

			requestID, _ := r.Context().Value(requestIDKey).(string)
			log.Info().
				Str("request_id", requestID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", wrapper.statusCode).
				Dur("duration", duration).
				Str("remote", r.RemoteAddr).
				Msg("request")
		})
	}
}

type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}
