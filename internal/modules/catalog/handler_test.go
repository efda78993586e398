package catalog

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func newTestRouter(repo *fakeRepo) *chi.Mux {
	router := chi.NewRouter()
	NewHandler(NewService(repo)).RegisterRoutes(router)
	return router
}

func TestAdjustStockHandlerStatusMapping(t *testing.T) {
	cases := map[string]struct {
		repo *fakeRepo
		body string
		want int
	}{
		"conflict when stock would go negative": {
			repo: &fakeRepo{items: map[int64]*Item{1: {ID: 1, Quantity: 2}}},
			body: `{"delta": -5}`,
			want: http.StatusConflict,
		},
		"not found for unknown item": {
			repo: &fakeRepo{items: map[int64]*Item{}},
			body: `{"delta": -5}`,
			want: http.StatusNotFound,
		},
		"bad request for zero delta": {
			repo: &fakeRepo{items: map[int64]*Item{1: {ID: 1, Quantity: 2}}},
			body: `{"delta": 0}`,
			want: http.StatusBadRequest,
		},
		"ok for valid adjustment": {
			repo: &fakeRepo{items: map[int64]*Item{1: {ID: 1, Quantity: 2}}},
			body: `{"delta": 3}`,
			want: http.StatusOK,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/items/1/stock", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			newTestRouter(tc.repo).ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestCreateItemHandlerRejectsInvalidBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/items", strings.NewReader(`{"description": "no code"}`))
	rec := httptest.NewRecorder()
	newTestRouter(&fakeRepo{}).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
