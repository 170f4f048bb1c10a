package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"sellerbooks/internal/book"
	"sellerbooks/internal/config"
	"sellerbooks/internal/httpx"
	"sellerbooks/internal/seller"
)

type routerDeps struct {
	cfg     config.Config
	logger  *slog.Logger
	books   *book.HTTPHandler
	sellers *seller.HTTPHandler
	ready   func(ctx context.Context) error
	limiter *httpx.RateLimitMiddleware
}

// newRouter registers every endpoint and wraps the mux in the middleware
// chain, outermost first:
//
//	recovery → request id → access log → security headers → CORS → rate limit → body limit → mux
func newRouter(d routerDeps) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := d.ready(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	d.books.Register(router)
	d.sellers.Register(router)

	return httpx.Chain(router,
		httpx.RecoveryMiddleware(d.logger),
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(d.logger),
		httpx.SecurityHeadersMiddleware(d.cfg.IsProduction()),
		httpx.CORSMiddleware(d.cfg.AllowedOrigins),
		d.limiter.Middleware,
		httpx.RequestSizeLimitMiddleware(d.cfg.MaxBodyBytes),
	)
}
