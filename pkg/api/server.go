/*
caretext document REST API

This is the REST API for caretext, a rope-backed document editing
service.

Version: 1.0.0
Host: localhost:8080
BasePath: /api/v1

SecurityDefinitions:
  - ApiKeyAuth:
    type: apiKey
    in: header
    name: X-API-Key

swagger:meta
*/
package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/caretext/rope/pkg/registry"
	"github.com/caretext/rope/pkg/search"
)

// StartServer starts the HTTP server with every document route
// configured, blocking until the server exits.
func StartServer(reg *registry.Registry, searchEngine *search.Engine, config ServerConfig) error {
	metrics := NewMetrics()
	server := NewServer(reg, searchEngine, config, metrics)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(metrics.InstrumentAuthMiddleware(apiKeyMiddleware(config.APIKey)))

		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		r.Post("/documents", metrics.InstrumentHandler("POST", "/api/v1/documents", server.handleCreateDocument))
		r.Get("/documents", metrics.InstrumentHandler("GET", "/api/v1/documents", server.handleListDocuments))
		r.Get("/documents/{id}", metrics.InstrumentHandler("GET", "/api/v1/documents/{id}", server.handleGetDocument))
		r.Put("/documents/{id}", metrics.InstrumentHandler("PUT", "/api/v1/documents/{id}", server.handleReplaceRange))
		r.Delete("/documents/{id}", metrics.InstrumentHandler("DELETE", "/api/v1/documents/{id}", server.handleDeleteDocument))
		r.Post("/documents/{id}/append", metrics.InstrumentHandler("POST", "/api/v1/documents/{id}/append", server.handleAppend))
		r.Get("/documents/{id}/stats", metrics.InstrumentHandler("GET", "/api/v1/documents/{id}/stats", server.handleStats))
		r.Get("/documents/{id}/search", metrics.InstrumentHandler("GET", "/api/v1/documents/{id}/search", server.handleSearch))
		r.Get("/documents/{id}/lines", metrics.InstrumentHandler("GET", "/api/v1/documents/{id}/lines", server.handleLineRange))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", config.Port)),
	))

	addr := fmt.Sprintf(":%d", config.Port)
	fmt.Printf("Starting caretext document API on %s\n", addr)
	fmt.Printf("Metrics available at: http://localhost:%d/metrics\n", config.Port)
	log.Fatal(http.ListenAndServe(addr, r))

	return nil
}
