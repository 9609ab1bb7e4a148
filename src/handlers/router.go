package handlers

import (
	"net/http"

	"github.com/8earnity-corporation/laravel-affiliate-zanox-network/src/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the affiliate handler into the facade routes.
func NewRouter(affiliate *AffiliateHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		utils.SendJSON(w, map[string]string{"message": "Affiliate network adapter is running"}, http.StatusOK)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", affiliate.HandleSearchProducts)
		r.Get("/products/count", affiliate.HandleCountProducts)
		r.Get("/products/{id}", affiliate.HandleGetProduct)
		r.Get("/transactions", affiliate.HandleGetTransactions)
		r.Get("/transactions/count", affiliate.HandleCountTransactions)
		r.Get("/programs/{programID}/commission-rates", affiliate.HandleGetCommissionRates)
		r.Get("/programs/{programID}/commission-rates/count", affiliate.HandleCountCommissionRates)
	})

	return r
}
