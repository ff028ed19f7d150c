package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// setupRoutes - setups http routes
func setupRoutes(mux *http.ServeMux, routes *handlers) {
	// System Health
	mux.HandleFunc("GET /health", routes.health.HealthCheck)

	// Prometheus metrics endpoint
	mux.Handle("GET /metrics", promhttp.Handler())

	// Swagger UI endpoint
	mux.HandleFunc("/swagger/", httpSwagger.Handler())

	// Steadiness API
	mux.HandleFunc("GET /steadiness/score", routes.steadiness.GetScore)           // Headline score + percentile
	mux.HandleFunc("GET /steadiness/breakdown", routes.steadiness.GetBreakdown)   // Component scores + insights
	mux.HandleFunc("GET /steadiness/volatility", routes.steadiness.GetVolatility) // Rolling volatility trend
	mux.HandleFunc("POST /sessions", routes.steadiness.LoadSessions)              // Replace a driver's history
}
