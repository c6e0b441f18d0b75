package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/loftylabs/marketplace"
	apimiddleware "github.com/loftylabs/marketplace/infrastructure/api/middleware"
	v1 "github.com/loftylabs/marketplace/infrastructure/api/v1"
	"github.com/loftylabs/marketplace/internal/log"
)

// APIServer provides the marketplace HTTP API backed by a Client.
type APIServer struct {
	client *marketplace.Client
	server *Server
	logger *log.Logger
}

// NewAPIServer creates a new APIServer wired to the given Client.
func NewAPIServer(client *marketplace.Client) *APIServer {
	return &APIServer{
		client: client,
		logger: client.Logger(),
	}
}

// MountRoutes wires all routes and middleware on the given router.
func (a *APIServer) MountRoutes(router chi.Router) {
	cfg := a.client.Config()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", v1.TenantHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(apimiddleware.Authenticate(apimiddleware.NewAuthConfig(cfg.JWTSecret())))
	router.Use(apimiddleware.Logging(a.logger))
	router.Use(apimiddleware.Metrics)

	lotsHandler := v1.NewLots(a.client.Lots(), a.logger)
	tenantsHandler := v1.NewTenants(a.client.Tenants(), a.logger)

	router.Group(func(r chi.Router) {
		r.Use(chimiddleware.Timeout(30 * time.Second))
		lotsHandler.RegisterRoutes(r)
		tenantsHandler.RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(apimiddleware.RequireAdmin)
			lotsHandler.RegisterAdminRoutes(r)
			tenantsHandler.RegisterAdminRoutes(r)
		})
	})

	router.Get("/healthz", a.health)
	router.Handle("/metrics", promhttp.Handler())
}

func (a *APIServer) health(w http.ResponseWriter, r *http.Request) {
	if err := a.client.Ping(r.Context()); err != nil {
		a.logger.ErrorContext(r.Context(), "health check failed", "error", err)
		http.Error(w, "unhealthy", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// ListenAndServe starts the HTTP server on the given address.
func (a *APIServer) ListenAndServe(addr string) error {
	server := NewServer(addr, a.logger)
	a.server = &server
	a.MountRoutes(server.Router())
	return server.Start()
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}
