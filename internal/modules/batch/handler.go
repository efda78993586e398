package batch

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// Handler exposes batch HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/batches", func(r chi.Router) {
		r.Post("/open", h.openBatch)                       // POST /api/v1/batches/open
		r.Post("/close", h.closeBatch)                     // POST /api/v1/batches/close
		r.Get("/stores/{store_id}/current", h.current)     // GET  /api/v1/batches/stores/{id}/current
		r.Get("/stores/{store_id}/history", h.history)     // GET  /api/v1/batches/stores/{id}/history?limit=
	})
}

func (h *Handler) openBatch(w http.ResponseWriter, r *http.Request) {
	var req OpenBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	b, err := h.service.OpenBatch(r.Context(), req)
	if err != nil {
		code := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrInvalidRequest):
			code = http.StatusBadRequest
		case errors.Is(err, ErrBatchAlreadyOpen):
			code = http.StatusConflict
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, b)
}

func (h *Handler) closeBatch(w http.ResponseWriter, r *http.Request) {
	var req CloseBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	b, err := h.service.CloseBatch(r.Context(), req)
	if err != nil {
		code := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrBatchNotFound):
			code = http.StatusNotFound
		case errors.Is(err, ErrBatchNotOpen):
			code = http.StatusUnprocessableEntity
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, b)
}

func (h *Handler) current(w http.ResponseWriter, r *http.Request) {
	storeID, err := strconv.ParseInt(chi.URLParam(r, "store_id"), 10, 64)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid store id"})
		return
	}
	b, err := h.service.GetCurrentBatch(r.Context(), storeID)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrNoOpenBatch) {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, b)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	storeID, err := strconv.ParseInt(chi.URLParam(r, "store_id"), 10, 64)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid store id"})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	batches, err := h.service.GetBatchHistory(r.Context(), storeID, limit)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, batches)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
