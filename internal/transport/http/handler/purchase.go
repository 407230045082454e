package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"onbid-goods-api/internal/service"
	"onbid-goods-api/internal/transport/http/response"
	"onbid-goods-api/pkg/apierror"
)

// PurchaseHandler handles purchase-ledger HTTP requests.
type PurchaseHandler struct {
	purchaseService *service.PurchaseService
}

// NewPurchaseHandler creates a new purchase handler.
func NewPurchaseHandler(purchaseService *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// PurchaseRequest is the create-purchase payload. Pointers distinguish
// missing fields from zero values.
type PurchaseRequest struct {
	HistoryNo     *int64 `json:"historyNo"`
	PurchasePrice *int64 `json:"purchasePrice"`
}

// Create handles POST /api/v1/purchases
func (h *PurchaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid purchase payload"))
		return
	}
	defer r.Body.Close()

	purchase, err := h.purchaseService.CreatePurchase(r.Context(), req.HistoryNo, req.PurchasePrice)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, map[string]interface{}{
		"success": true,
		"data":    purchase,
	})
}

// ListAll handles GET /api/v1/purchases
func (h *PurchaseHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	purchases, err := h.purchaseService.ListAll(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"success": true,
		"items":   purchases,
		"count":   len(purchases),
	})
}

// ListByHistoryNo handles GET /api/v1/purchases/{historyNo}
func (h *PurchaseHandler) ListByHistoryNo(w http.ResponseWriter, r *http.Request) {
	historyNo, err := strconv.ParseInt(chi.URLParam(r, "historyNo"), 10, 64)
	if err != nil {
		response.Error(w, apierror.BadRequest("historyNo must be an integer"))
		return
	}

	purchases, err := h.purchaseService.ListByHistoryNo(r.Context(), historyNo)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"success": true,
		"items":   purchases,
		"count":   len(purchases),
	})
}

// Reset handles DELETE /api/v1/purchases
func (h *PurchaseHandler) Reset(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.purchaseService.ResetAll(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"success":      true,
		"deletedCount": deleted,
	})
}
