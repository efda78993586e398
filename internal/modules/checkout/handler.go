package checkout

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// Handler exposes checkout HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/pos", func(r chi.Router) {
		r.Post("/transactions", h.createTransaction)                               // POST /api/v1/pos/transactions
		r.Get("/transactions", h.searchTransactions)                               // GET  /api/v1/pos/transactions?store_id=&page=
		r.Get("/stores/{store_id}/transactions/{number}", h.getTransaction)        // GET  /api/v1/pos/stores/{id}/transactions/{number}
	})
}

func (h *Handler) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	resp, err := h.service.Checkout(r.Context(), req)
	if err != nil {
		writeCheckoutError(w, err)
		return
	}
	respond(w, http.StatusCreated, resp)
}

// writeCheckoutError maps the checkout error taxonomy onto HTTP statuses.
// Declines carry their reason code so registers can branch on it.
func writeCheckoutError(w http.ResponseWriter, err error) {
	if d, ok := AsDecline(err); ok {
		status := http.StatusUnprocessableEntity
		if d.Code == CodeValidation {
			status = http.StatusBadRequest
		}
		respond(w, status, map[string]string{"error": d.Message, "code": string(d.Code)})
		return
	}
	if errors.Is(err, ErrTransientStore) {
		respond(w, http.StatusServiceUnavailable, map[string]string{
			"error": "store temporarily unavailable, retry the checkout",
		})
		return
	}
	respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func (h *Handler) getTransaction(w http.ResponseWriter, r *http.Request) {
	storeID, err := strconv.ParseInt(chi.URLParam(r, "store_id"), 10, 64)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid store id"})
		return
	}
	number, err := strconv.ParseInt(chi.URLParam(r, "number"), 10, 64)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid transaction number"})
		return
	}
	detail, err := h.service.GetTransaction(r.Context(), storeID, number)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, sql.ErrNoRows) {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": "transaction not found"})
		return
	}
	respond(w, http.StatusOK, detail)
}

func (h *Handler) searchTransactions(w http.ResponseWriter, r *http.Request) {
	params, err := parseSearchParams(r)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	result, err := h.service.SearchTransactions(r.Context(), params)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, result)
}

func parseSearchParams(r *http.Request) (SearchParams, error) {
	q := r.URL.Query()
	var params SearchParams

	intParam := func(name string) (*int64, error) {
		raw := q.Get(name)
		if raw == "" {
			return nil, nil
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errors.New("invalid " + name)
		}
		return &v, nil
	}
	var err error
	if params.StoreID, err = intParam("store_id"); err != nil {
		return params, err
	}
	if params.CustomerID, err = intParam("customer_id"); err != nil {
		return params, err
	}
	if params.CashierID, err = intParam("cashier_id"); err != nil {
		return params, err
	}

	if raw := q.Get("min_total"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return params, errors.New("invalid min_total")
		}
		params.MinTotal = &v
	}
	if raw := q.Get("max_total"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return params, errors.New("invalid max_total")
		}
		params.MaxTotal = &v
	}
	if raw := q.Get("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return params, errors.New("invalid from timestamp")
		}
		params.From = &t
	}
	if raw := q.Get("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return params, errors.New("invalid to timestamp")
		}
		params.To = &t
	}

	params.Page, _ = strconv.Atoi(q.Get("page"))
	params.PageSize, _ = strconv.Atoi(q.Get("page_size"))
	return params, nil
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
