package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/wordcount-backend/internal/config"
	"github.com/heartmarshall/wordcount-backend/internal/transport/middleware"
)

const welcomeText = "Word count API. POST a file to /api/wordcount.\n"

// NewRouter registers all routes and wraps them in the middleware chain
// Recovery, RequestID, Logger, CORS.
func NewRouter(wc *WordCountHandler, health *HealthHandler, cors config.CORSConfig, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/wordcount", wc.Count)
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(welcomeText))
	})

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cors),
	)(mux)
}
