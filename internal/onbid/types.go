package onbid

import "encoding/xml"

// Raw wire types for the Onbid listings response. Fields bind by element
// name, unknown elements are ignored, and every value is optional. Numeric
// fields are kept as strings here because the source sometimes sends
// present-but-empty elements; the mapper decides between absent, empty and
// parseable.
type Response struct {
	XMLName xml.Name `xml:"response"`
	Header  Header   `xml:"header"`
	Body    *Body    `xml:"body"`
}

type Header struct {
	ResultCode string `xml:"resultCode"`
	ResultMsg  string `xml:"resultMsg"`
}

type Body struct {
	Items      []Item `xml:"items>item"`
	NumOfRows  string `xml:"numOfRows"`
	PageNo     string `xml:"pageNo"`
	TotalCount string `xml:"totalCount"`
}

// Item mirrors one <item> node of the Onbid response.
type Item struct {
	HistoryNo      string `xml:"CLTR_HSTR_NO"`
	GoodsNo        string `xml:"CLTR_MNMT_NO"`
	GoodsName      string `xml:"CLTR_NM"`
	GoodsDetail    string `xml:"GOODS_NM"`
	AppraisalPrice string `xml:"APSL_ASES_AVG_AMT"`
	MinBidPrice    string `xml:"MIN_BID_PRC"`
	BidStartDate   string `xml:"PBCT_BEGN_DTM"`
	BidCloseDate   string `xml:"PBCT_CLS_DTM"`
	NoticeNo       string `xml:"PBCT_NO"`
	StatusName     string `xml:"PBCT_CLTR_STAT_NM"`
	Address        string `xml:"LDNM_ADRS"`
	RoadAddress    string `xml:"NMRD_ADRS"`
	SaleTypeCode   string `xml:"DPSL_MTD_CD"`
	SaleTypeName   string `xml:"DPSL_MTD_NM"`
	BidMethodName  string `xml:"BID_MTD_NM"`
	CategoryName   string `xml:"CTGR_FULL_NM"`
	InquiryCount   string `xml:"IQRY_CNT"`
	FavoriteCount  string `xml:"USCBD_CNT"`
	FeeRate        string `xml:"FEE_RATE"`
	ImageFiles     string `xml:"CLTR_IMG_FILES"`
}
