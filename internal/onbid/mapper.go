package onbid

import (
	"strconv"
	"strings"

	"onbid-goods-api/internal/domain"
)

// GoodsList converts raw items into domain records. Output length equals
// input length: records without a historyNo are passed through on purpose,
// so the store-side check stays the single place that rejects them.
func GoodsList(items []Item) []domain.Goods {
	if len(items) == 0 {
		return []domain.Goods{}
	}

	goods := make([]domain.Goods, 0, len(items))
	for _, item := range items {
		goods = append(goods, goodsFromItem(item))
	}
	return goods
}

// SearchResultFrom maps a parsed wire response into the domain search result.
func SearchResultFrom(resp *Response) *domain.SearchResult {
	result := &domain.SearchResult{
		ResultCode: resp.Header.ResultCode,
		ResultMsg:  resp.Header.ResultMsg,
		Items:      []domain.Goods{},
	}

	if resp.Body != nil {
		result.Items = GoodsList(resp.Body.Items)
		result.NumOfRows = intOrZero(resp.Body.NumOfRows)
		result.PageNo = intOrZero(resp.Body.PageNo)
		result.TotalCount = intOrZero(resp.Body.TotalCount)
	}

	return result
}

func goodsFromItem(item Item) domain.Goods {
	return domain.Goods{
		HistoryNo:      parseInt64Ptr(item.HistoryNo),
		GoodsNo:        strings.TrimSpace(item.GoodsNo),
		GoodsName:      item.GoodsName,
		GoodsDetail:    item.GoodsDetail,
		AppraisalPrice: parseInt64Ptr(item.AppraisalPrice),
		MinBidPrice:    parseInt64Ptr(item.MinBidPrice),
		BidStartDate:   strings.TrimSpace(item.BidStartDate),
		BidCloseDate:   strings.TrimSpace(item.BidCloseDate),
		NoticeNo:       item.NoticeNo,
		StatusName:     item.StatusName,
		Address:        item.Address,
		RoadAddress:    item.RoadAddress,
		SaleTypeCode:   item.SaleTypeCode,
		SaleTypeName:   item.SaleTypeName,
		BidMethodName:  item.BidMethodName,
		CategoryName:   item.CategoryName,
		InquiryCount:   parseIntPtr(item.InquiryCount),
		FavoriteCount:  parseIntPtr(item.FavoriteCount),
		FeeRate:        strings.TrimSpace(item.FeeRate),
		ImageFiles:     item.ImageFiles,
	}
}

// parseInt64Ptr distinguishes absent or empty elements (nil) from numeric
// values. Unparseable garbage is treated as absent rather than failing the
// whole batch.
func parseInt64Ptr(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseIntPtr(s string) *int {
	v := parseInt64Ptr(s)
	if v == nil {
		return nil
	}
	i := int(*v)
	return &i
}

func intOrZero(s string) int {
	v := parseInt64Ptr(s)
	if v == nil {
		return 0
	}
	return int(*v)
}
