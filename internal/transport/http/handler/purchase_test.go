package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onbid-goods-api/internal/domain"
	"onbid-goods-api/internal/repository"
	"onbid-goods-api/internal/service"
)

type stubPurchaseRepo struct {
	rows []domain.Purchase
}

func (r *stubPurchaseRepo) Insert(_ context.Context, p *domain.Purchase) error {
	for _, row := range r.rows {
		if row.HistoryNo == p.HistoryNo {
			return repository.ErrDuplicate
		}
	}
	p.ID = int64(len(r.rows) + 1)
	r.rows = append(r.rows, *p)
	return nil
}

func (r *stubPurchaseRepo) FindByHistoryNo(_ context.Context, historyNo int64) ([]domain.Purchase, error) {
	out := []domain.Purchase{}
	for _, row := range r.rows {
		if row.HistoryNo == historyNo {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *stubPurchaseRepo) FindAll(context.Context) ([]domain.Purchase, error) {
	return append([]domain.Purchase{}, r.rows...), nil
}

func (r *stubPurchaseRepo) CountByHistoryNo(_ context.Context, historyNo int64) (int64, error) {
	var n int64
	for _, row := range r.rows {
		if row.HistoryNo == historyNo {
			n++
		}
	}
	return n, nil
}

func (r *stubPurchaseRepo) DeleteAll(context.Context) (int64, error) {
	n := int64(len(r.rows))
	r.rows = nil
	return n, nil
}

func purchaseRouter(h *PurchaseHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/purchases", h.Create)
	r.Get("/purchases", h.ListAll)
	r.Get("/purchases/{historyNo}", h.ListByHistoryNo)
	r.Delete("/purchases", h.Reset)
	return r
}

func TestPurchaseHandler_Create(t *testing.T) {
	h := NewPurchaseHandler(service.NewPurchaseService(&stubPurchaseRepo{}))
	router := purchaseRouter(h)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/purchases",
		strings.NewReader(`{"historyNo":42,"purchasePrice":1000}`))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Success bool            `json:"success"`
		Data    domain.Purchase `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, int64(42), body.Data.HistoryNo)
	assert.Equal(t, domain.PurchaseStatusCompleted, body.Data.PurchaseStatus)
}

func TestPurchaseHandler_Create_duplicateIs409(t *testing.T) {
	h := NewPurchaseHandler(service.NewPurchaseService(&stubPurchaseRepo{}))
	router := purchaseRouter(h)

	first := httptest.NewRequest(http.MethodPost, "/purchases",
		strings.NewReader(`{"historyNo":42,"purchasePrice":1000}`))
	router.ServeHTTP(httptest.NewRecorder(), first)

	rec := httptest.NewRecorder()
	second := httptest.NewRequest(http.MethodPost, "/purchases",
		strings.NewReader(`{"historyNo":42,"purchasePrice":2000}`))
	router.ServeHTTP(rec, second)

	require.Equal(t, http.StatusConflict, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Code    string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "DUPLICATED_PURCHASE", body.Code)
}

func TestPurchaseHandler_Create_missingFieldsIs400(t *testing.T) {
	h := NewPurchaseHandler(service.NewPurchaseService(&stubPurchaseRepo{}))
	router := purchaseRouter(h)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/purchases",
		strings.NewReader(`{"purchasePrice":1000}`))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "INVALID_REQUEST", body.Code)
}

func TestPurchaseHandler_Create_malformedJSONIs400(t *testing.T) {
	h := NewPurchaseHandler(service.NewPurchaseService(&stubPurchaseRepo{}))
	router := purchaseRouter(h)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/purchases", strings.NewReader(`{`))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPurchaseHandler_ListByHistoryNo(t *testing.T) {
	repo := &stubPurchaseRepo{}
	h := NewPurchaseHandler(service.NewPurchaseService(repo))
	router := purchaseRouter(h)

	create := httptest.NewRequest(http.MethodPost, "/purchases",
		strings.NewReader(`{"historyNo":7,"purchasePrice":500}`))
	router.ServeHTTP(httptest.NewRecorder(), create)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/purchases/7", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []domain.Purchase `json:"items"`
		Count int               `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Items, 1)
	assert.Equal(t, int64(500), body.Items[0].PurchasePrice)
}

func TestPurchaseHandler_ListByHistoryNo_nonNumericIs400(t *testing.T) {
	h := NewPurchaseHandler(service.NewPurchaseService(&stubPurchaseRepo{}))
	router := purchaseRouter(h)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/purchases/abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPurchaseHandler_Reset(t *testing.T) {
	repo := &stubPurchaseRepo{rows: []domain.Purchase{
		{ID: 1, HistoryNo: 1}, {ID: 2, HistoryNo: 2},
	}}
	h := NewPurchaseHandler(service.NewPurchaseService(repo))
	router := purchaseRouter(h)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/purchases", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		DeletedCount int64 `json:"deletedCount"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(2), body.DeletedCount)
}
