package http

import (
	"onbid-goods-api/internal/transport/http/handler"
	"onbid-goods-api/internal/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(
	h *handler.Handler,
	goodsHandler *handler.GoodsHandler,
	purchaseHandler *handler.PurchaseHandler,
	syncHandler *handler.SyncHandler,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"}, // Configure for production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Health check endpoints
		r.Get("/health", h.Health)
		r.Get("/ready", h.Ready)

		// Goods endpoints: live view from the Onbid API, snapshot view
		// from the local store.
		r.Route("/goods", func(r chi.Router) {
			r.Get("/", goodsHandler.ListLive)
			r.Get("/items", goodsHandler.ListLiveItems)
			r.Get("/xml", goodsHandler.RawXML)
			r.Get("/sync-status", syncHandler.Status)

			r.Route("/db", func(r chi.Router) {
				r.Get("/", goodsHandler.ListDB)
				r.Get("/count", goodsHandler.Count)
				r.Post("/batch", goodsHandler.SaveBatch)
				r.Delete("/", goodsHandler.DeleteAll)
				r.Get("/{historyNo}", goodsHandler.GetDB)
			})
		})

		// Purchase ledger endpoints
		r.Route("/purchases", func(r chi.Router) {
			r.Post("/", purchaseHandler.Create)
			r.Get("/", purchaseHandler.ListAll)
			r.Delete("/", purchaseHandler.Reset)
			r.Get("/{historyNo}", purchaseHandler.ListByHistoryNo)
		})
	})

	return r
}
