package domain

import (
	"strconv"
	"time"
)

// Goods is one auction listing as returned by the Onbid open-data API,
// renamed into the internal field vocabulary. It is the unit of work of a
// sync cycle and is not persisted as-is; see GoodsRecord for the stored shape.
//
// HistoryNo identifies one auction round of one item and is the correlation
// key through the whole pipeline. GoodsNo identifies the item across rounds.
// Numeric fields the source may omit are pointers.
type Goods struct {
	HistoryNo      *int64 `json:"historyNo"`
	GoodsNo        string `json:"goodsNo,omitempty"`
	GoodsName      string `json:"goodsName,omitempty"`
	GoodsDetail    string `json:"goodsDetail,omitempty"`
	AppraisalPrice *int64 `json:"appraisalPrice,omitempty"`
	MinBidPrice    *int64 `json:"minBidPrice,omitempty"`
	BidStartDate   string `json:"bidStartDate,omitempty"`
	BidCloseDate   string `json:"bidCloseDate,omitempty"`
	NoticeNo       string `json:"noticeNo,omitempty"`
	StatusName     string `json:"statusName,omitempty"`
	Address        string `json:"address,omitempty"`
	RoadAddress    string `json:"roadAddress,omitempty"`
	SaleTypeCode   string `json:"saleTypeCode,omitempty"`
	SaleTypeName   string `json:"saleTypeName,omitempty"`
	BidMethodName  string `json:"bidMethodName,omitempty"`
	CategoryName   string `json:"categoryName,omitempty"`
	InquiryCount   *int   `json:"inquiryCount,omitempty"`
	FavoriteCount  *int   `json:"favoriteCount,omitempty"`
	FeeRate        string `json:"feeRate,omitempty"`
	ImageFiles     string `json:"imageFiles,omitempty"`
}

// GroupKey returns the dedup grouping key: goodsNo when present, otherwise
// the decimal form of historyNo.
func (g Goods) GroupKey() string {
	if g.GoodsNo != "" {
		return g.GoodsNo
	}
	return strconv.FormatInt(g.HistoryNoOrZero(), 10)
}

// HistoryNoOrZero treats an absent historyNo as 0, so a present value always
// wins a freshness comparison against a missing one.
func (g Goods) HistoryNoOrZero() int64 {
	if g.HistoryNo == nil {
		return 0
	}
	return *g.HistoryNo
}

// GoodsRecord is the persisted snapshot row: goods_basic joined with
// goods_price on history_no.
type GoodsRecord struct {
	ID             int64     `json:"id"`
	HistoryNo      int64     `json:"historyNo"`
	GoodsName      string    `json:"goodsName"`
	StatusName     string    `json:"statusName"`
	SaleTypeName   string    `json:"saleTypeName"`
	CategoryName   string    `json:"categoryName"`
	BidStartDate   string    `json:"bidStartDate"`
	BidCloseDate   string    `json:"bidCloseDate"`
	Address        string    `json:"address"`
	MinBidPrice    *int64    `json:"minBidPrice"`
	AppraisalPrice *int64    `json:"appraisalPrice"`
	FeeRate        *string   `json:"feeRate"`
	InquiryCount   *int      `json:"inquiryCount"`
	FavoriteCount  *int      `json:"favoriteCount"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// SearchResult is the parsed live response of the Onbid listings API.
type SearchResult struct {
	ResultCode string  `json:"resultCode"`
	ResultMsg  string  `json:"resultMsg"`
	Items      []Goods `json:"items"`
	NumOfRows  int     `json:"numOfRows"`
	PageNo     int     `json:"pageNo"`
	TotalCount int     `json:"totalCount"`
}
