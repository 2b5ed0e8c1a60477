package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/imcharliesparks/listmaker/internal/delivery/http/handler"
	"github.com/imcharliesparks/listmaker/internal/delivery/http/middleware"
)

func New(h *handler.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", h.HandleHealthCheck)

	mux.HandleFunc("POST /api/items", h.HandleAddItem)
	mux.HandleFunc("GET /api/items/{id}", h.HandleGetItem)
	mux.HandleFunc("DELETE /api/items/{id}", h.HandleDeleteItem)
	mux.HandleFunc("GET /api/lists/{listId}/items", h.HandleListItems)

	mux.HandleFunc("POST /api/ingestions", h.HandleCreateIngestion)
	mux.HandleFunc("GET /api/ingestions/{id}", h.HandleGetIngestion)

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())

	// Apply middlewares
	var chainedHandler http.Handler = mux
	chainedHandler = middleware.Metrics(chainedHandler)
	chainedHandler = middleware.Logging(chainedHandler)

	return chainedHandler
}
