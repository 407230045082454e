package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"onbid-goods-api/internal/domain"
	"onbid-goods-api/internal/onbid"
	"onbid-goods-api/internal/service"
	"onbid-goods-api/internal/transport/http/response"
	"onbid-goods-api/pkg/apierror"
)

// GoodsHandler serves two views of the goods domain: the live view proxied
// straight from the Onbid API, and the snapshot view backed by the local
// store. The two are not reconciled; /goods is as fresh as the source,
// /goods/db is as fresh as the last sync cycle.
type GoodsHandler struct {
	onbidClient  *onbid.Client
	goodsService *service.GoodsService
}

// NewGoodsHandler creates a new goods handler.
func NewGoodsHandler(onbidClient *onbid.Client, goodsService *service.GoodsService) *GoodsHandler {
	return &GoodsHandler{
		onbidClient:  onbidClient,
		goodsService: goodsService,
	}
}

// ListLive handles GET /api/v1/goods
// Queries the Onbid API directly with the full filter set.
func (h *GoodsHandler) ListLive(w http.ResponseWriter, r *http.Request) {
	result, err := h.onbidClient.SearchGoods(r.Context(), filtersFromQuery(r))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"success": true,
		"data":    result,
	})
}

// ListLiveItems handles GET /api/v1/goods/items
// Returns only the listing items, without header or paging metadata.
func (h *GoodsHandler) ListLiveItems(w http.ResponseWriter, r *http.Request) {
	result, err := h.onbidClient.SearchGoods(r.Context(), filtersFromQuery(r))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"success": true,
		"items":   result.Items,
		"count":   len(result.Items),
	})
}

// RawXML handles GET /api/v1/goods/xml
// Passes the source XML through untouched, for debugging.
func (h *GoodsHandler) RawXML(w http.ResponseWriter, r *http.Request) {
	rawXML, err := h.onbidClient.FetchGoodsListXML(r.Context(), filtersFromQuery(r))
	if err != nil {
		response.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write([]byte(rawXML))
}

// ListDB handles GET /api/v1/goods/db
// Returns the persisted snapshot, newest first.
func (h *GoodsHandler) ListDB(w http.ResponseWriter, r *http.Request) {
	records, err := h.goodsService.ListGoods(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"success": true,
		"items":   records,
		"count":   len(records),
	})
}

// GetDB handles GET /api/v1/goods/db/{historyNo}
func (h *GoodsHandler) GetDB(w http.ResponseWriter, r *http.Request) {
	historyNo, err := strconv.ParseInt(chi.URLParam(r, "historyNo"), 10, 64)
	if err != nil {
		response.Error(w, apierror.BadRequest("historyNo must be an integer"))
		return
	}

	record, err := h.goodsService.GetGoodsByHistoryNo(r.Context(), historyNo)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"success": true,
		"data":    record,
	})
}

// SaveBatch handles POST /api/v1/goods/db/batch
// Bulk-upserts a goods list, the manual counterpart of one sync cycle's
// write phase.
func (h *GoodsHandler) SaveBatch(w http.ResponseWriter, r *http.Request) {
	var goods []domain.Goods
	if err := json.NewDecoder(r.Body).Decode(&goods); err != nil {
		response.Error(w, apierror.BadRequest("invalid goods list payload"))
		return
	}
	defer r.Body.Close()

	saved, err := h.goodsService.SaveGoodsList(r.Context(), goods)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"success":    true,
		"savedCount": saved,
	})
}

// DeleteAll handles DELETE /api/v1/goods/db
func (h *GoodsHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.goodsService.DeleteAllGoods(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"success":      true,
		"deletedCount": deleted,
	})
}

// Count handles GET /api/v1/goods/db/count
func (h *GoodsHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.goodsService.CountGoods(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"success": true,
		"count":   count,
	})
}

func filtersFromQuery(r *http.Request) onbid.SearchFilters {
	q := r.URL.Query()

	return onbid.SearchFilters{
		PageNo:         queryInt(q.Get("pageNo"), 1),
		NumOfRows:      queryInt(q.Get("numOfRows"), 10),
		CategoryID:     q.Get("ctgrHirkId"),
		Sido:           q.Get("sido"),
		Sgk:            q.Get("sgk"),
		Emd:            q.Get("emd"),
		GoodsPriceFrom: q.Get("goodsPriceFrom"),
		GoodsPriceTo:   q.Get("goodsPriceTo"),
		OpenPriceFrom:  q.Get("openPriceFrom"),
		OpenPriceTo:    q.Get("openPriceTo"),
		GoodsName:      q.Get("cltrNm"),
		BidBeginDate:   q.Get("pbctBegnDtm"),
		BidCloseDate:   q.Get("pbctClsDtm"),
		ManagementNo:   q.Get("cltrMnmtNo"),
	}
}

func queryInt(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return def
	}
	return v
}
