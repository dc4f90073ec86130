package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/jusunglee/mta-mcp/internal/logger"
)

// LoggingMiddleware logs each request at debug level
func LoggingMiddleware(log logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Debug("Request served", "method", r.Method, "uri", r.RequestURI, "elapsed", time.Since(start).String())
		})
	}
}

// CORSMiddleware answers preflights and allows cross-origin reads
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Mcp-Session-Id")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
