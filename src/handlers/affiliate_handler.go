package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/8earnity-corporation/laravel-affiliate-zanox-network/src/models"
	"github.com/8earnity-corporation/laravel-affiliate-zanox-network/src/utils"
	"github.com/8earnity-corporation/laravel-affiliate-zanox-network/src/zanox"
	"github.com/go-chi/chi/v5"
)

// AffiliateHandler exposes the network adapter over HTTP.
type AffiliateHandler struct {
	client *zanox.Client
}

func NewAffiliateHandler(client *zanox.Client) *AffiliateHandler {
	return &AffiliateHandler{client: client}
}

func (h *AffiliateHandler) HandleSearchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := parseIntParam(q.Get("page"), 1)
	perPage := parseIntParam(q.Get("perPage"), 10)
	if perPage > zanox.MaxPerPage {
		perPage = zanox.MaxPerPage
	}

	products, err := h.client.SearchProducts(r.Context(), zanox.ProductSearchParams{
		Keyword:      q.Get("q"),
		Programs:     splitList(q.Get("programs")),
		TrackingCode: q.Get("trackingCode"),
		Page:         page,
		PerPage:      perPage,
	})
	if err != nil {
		sendProviderError(w, err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	utils.SendJSON(w, products, http.StatusOK)
}

func (h *AffiliateHandler) HandleCountProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	total, err := h.client.CountProducts(r.Context(), q.Get("q"), splitList(q.Get("programs")))
	if err != nil {
		sendProviderError(w, err)
		return
	}
	utils.SendJSON(w, map[string]int{"total": total}, http.StatusOK)
}

func (h *AffiliateHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	product, err := h.client.GetProduct(r.Context(), id, r.URL.Query().Get("trackingCode"))
	if err != nil {
		sendProviderError(w, err)
		return
	}
	utils.SendJSON(w, product, http.StatusOK)
}

func (h *AffiliateHandler) HandleGetTransactions(w http.ResponseWriter, r *http.Request) {
	params, ok := transactionsParamsFromQuery(w, r)
	if !ok {
		return
	}
	transactions, err := h.client.Transactions(r.Context(), params)
	if err != nil {
		sendProviderError(w, err)
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	utils.SendJSON(w, transactions, http.StatusOK)
}

func (h *AffiliateHandler) HandleCountTransactions(w http.ResponseWriter, r *http.Request) {
	params, ok := transactionsParamsFromQuery(w, r)
	if !ok {
		return
	}
	total, err := h.client.CountTransactions(r.Context(), params)
	if err != nil {
		sendProviderError(w, err)
		return
	}
	utils.SendJSON(w, map[string]int{"total": total}, http.StatusOK)
}

func (h *AffiliateHandler) HandleGetCommissionRates(w http.ResponseWriter, r *http.Request) {
	programID := chi.URLParam(r, "programID")
	rates, err := h.client.CommissionRates(r.Context(), programID)
	if err != nil {
		sendProviderError(w, err)
		return
	}
	if rates == nil {
		rates = []models.CommissionRate{}
	}
	utils.SendJSON(w, rates, http.StatusOK)
}

func (h *AffiliateHandler) HandleCountCommissionRates(w http.ResponseWriter, r *http.Request) {
	programID := chi.URLParam(r, "programID")
	total, err := h.client.CountCommissionRates(r.Context(), programID)
	if err != nil {
		sendProviderError(w, err)
		return
	}
	utils.SendJSON(w, map[string]int{"total": total}, http.StatusOK)
}

func transactionsParamsFromQuery(w http.ResponseWriter, r *http.Request) (zanox.TransactionsParams, bool) {
	q := r.URL.Query()

	fromDate, err := utils.ParseQueryDate(q.Get("fromDate"))
	if err != nil {
		utils.SendJSONError(w, fmt.Sprintf("invalid fromDate: %v", err), http.StatusBadRequest)
		return zanox.TransactionsParams{}, false
	}
	toDate, err := utils.ParseQueryDate(q.Get("toDate"))
	if err != nil {
		utils.SendJSONError(w, fmt.Sprintf("invalid toDate: %v", err), http.StatusBadRequest)
		return zanox.TransactionsParams{}, false
	}

	return zanox.TransactionsParams{
		Programs: splitList(q.Get("programs")),
		FromDate: fromDate,
		ToDate:   toDate,
	}, true
}

// sendProviderError maps adapter error kinds onto facade status codes:
// provider refusals and transport failures become 502, payloads the mapper
// could not make sense of become 500.
func sendProviderError(w http.ResponseWriter, err error) {
	var statusErr *zanox.UnexpectedStatusError
	if errors.As(err, &statusErr) {
		utils.SendJSONError(w, fmt.Sprintf("provider returned status %d", statusErr.StatusCode), http.StatusBadGateway)
		return
	}

	var missingErr *zanox.MissingDataError
	var enumErr *zanox.UnknownEnumValueError
	if errors.As(err, &missingErr) || errors.As(err, &enumErr) {
		utils.SendJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.SendJSONError(w, fmt.Sprintf("provider request failed: %v", err), http.StatusBadGateway)
}

func parseIntParam(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := parts[:0]
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
