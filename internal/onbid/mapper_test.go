package onbid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoodsList_preservesLength(t *testing.T) {
	items := []Item{
		{HistoryNo: "1", GoodsNo: "A"},
		{GoodsNo: "B"}, // no historyNo: still passed through
		{HistoryNo: "3"},
	}

	goods := GoodsList(items)
	require.Len(t, goods, len(items))

	require.NotNil(t, goods[0].HistoryNo)
	assert.Equal(t, int64(1), *goods[0].HistoryNo)
	assert.Nil(t, goods[1].HistoryNo, "missing historyNo maps to nil, filtering is the store's job")
}

func TestGoodsList_empty(t *testing.T) {
	assert.Empty(t, GoodsList(nil))
	assert.Empty(t, GoodsList([]Item{}))
}

func TestGoodsFromItem_fieldMapping(t *testing.T) {
	item := Item{
		HistoryNo:      "1001",
		GoodsNo:        "2024-01234-001",
		GoodsName:      "승용차 아반떼",
		GoodsDetail:    "아반떼 CN7",
		AppraisalPrice: "5000000",
		MinBidPrice:    "3500000",
		BidStartDate:   "20240801100000",
		BidCloseDate:   "20240808170000",
		NoticeNo:       "202401234",
		StatusName:     "입찰준비중",
		Address:        "서울특별시 강남구",
		RoadAddress:    "서울특별시 강남구 테헤란로 1",
		SaleTypeCode:   "0001",
		SaleTypeName:   "매각",
		BidMethodName:  "일반경쟁",
		CategoryName:   "자동차/운송장비",
		InquiryCount:   "12",
		FavoriteCount:  "3",
		FeeRate:        "10%",
		ImageFiles:     "img1.jpg",
	}

	g := goodsFromItem(item)

	require.NotNil(t, g.HistoryNo)
	assert.Equal(t, int64(1001), *g.HistoryNo)
	assert.Equal(t, "2024-01234-001", g.GoodsNo)
	assert.Equal(t, "승용차 아반떼", g.GoodsName)
	require.NotNil(t, g.AppraisalPrice)
	assert.Equal(t, int64(5000000), *g.AppraisalPrice)
	require.NotNil(t, g.MinBidPrice)
	assert.Equal(t, int64(3500000), *g.MinBidPrice)
	assert.Equal(t, "20240801100000", g.BidStartDate)
	assert.Equal(t, "20240808170000", g.BidCloseDate)
	require.NotNil(t, g.InquiryCount)
	assert.Equal(t, 12, *g.InquiryCount)
	require.NotNil(t, g.FavoriteCount)
	assert.Equal(t, 3, *g.FavoriteCount)
	assert.Equal(t, "10%", g.FeeRate)
	assert.Equal(t, "매각", g.SaleTypeName)
}

func TestGoodsFromItem_presentButEmptyNumerics(t *testing.T) {
	// The source sometimes sends empty elements; these count as absent.
	g := goodsFromItem(Item{
		HistoryNo:    "  ",
		MinBidPrice:  "",
		InquiryCount: "not-a-number",
	})

	assert.Nil(t, g.HistoryNo)
	assert.Nil(t, g.MinBidPrice)
	assert.Nil(t, g.InquiryCount)
}

func TestSearchResultFrom_mapsPageMeta(t *testing.T) {
	resp := &Response{
		Header: Header{ResultCode: "00", ResultMsg: "NORMAL SERVICE."},
		Body: &Body{
			Items:      []Item{{HistoryNo: "1"}},
			NumOfRows:  "10",
			PageNo:     "2",
			TotalCount: "57",
		},
	}

	result := SearchResultFrom(resp)
	assert.Equal(t, "00", result.ResultCode)
	assert.Equal(t, 10, result.NumOfRows)
	assert.Equal(t, 2, result.PageNo)
	assert.Equal(t, 57, result.TotalCount)
	assert.Len(t, result.Items, 1)
}
