package onbid

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"onbid-goods-api/internal/config"
	"onbid-goods-api/internal/domain"
	"onbid-goods-api/pkg/apierror"
)

// Client calls the Onbid open-data listings endpoint and returns either the
// raw XML body or a parsed search result. It never retries; a failed call is
// the caller's problem (the syncer just skips that cycle).
type Client struct {
	httpClient *http.Client
	apiURL     string
	serviceKey string
}

// SearchFilters are the optional query parameters of the listings endpoint.
// Zero values are omitted from the request entirely.
type SearchFilters struct {
	PageNo         int
	NumOfRows      int
	CategoryID     string // CTGR_HIRK_ID
	Sido           string // province
	Sgk            string // district
	Emd            string // sub-district
	GoodsPriceFrom string
	GoodsPriceTo   string
	OpenPriceFrom  string
	OpenPriceTo    string
	GoodsName      string // CLTR_NM, substring match
	BidBeginDate   string // PBCT_BEGN_DTM, YYYYMMDDHHmmss
	BidCloseDate   string // PBCT_CLS_DTM, YYYYMMDDHHmmss
	ManagementNo   string // CLTR_MNMT_NO
}

// NewClient creates an Onbid API client from configuration.
func NewClient(cfg config.OnbidConfig) *Client {
	return newClient(
		&http.Client{Timeout: cfg.HTTPTimeout},
		cfg.APIURL,
		cfg.ServiceKey,
	)
}

// newClient is the internal constructor used by tests to inject the
// http.Client and endpoint URL.
func newClient(httpClient *http.Client, apiURL, serviceKey string) *Client {
	return &Client{
		httpClient: httpClient,
		apiURL:     apiURL,
		serviceKey: serviceKey,
	}
}

// FetchGoodsListXML performs one GET against the listings endpoint and
// returns the raw XML body. Transport errors and non-2xx statuses surface
// as EXTERNAL_API_ERROR.
func (c *Client) FetchGoodsListXML(ctx context.Context, filters SearchFilters) (string, error) {
	requestURL := c.buildURL(filters)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return "", apierror.ExternalAPIError("failed to build Onbid request: " + err.Error())
	}

	start := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", apierror.ExternalAPIError("Onbid API call failed: " + err.Error())
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", apierror.ExternalAPIError(fmt.Sprintf("Onbid API returned status %d", res.StatusCode))
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", apierror.ExternalAPIError("failed to read Onbid response body: " + err.Error())
	}

	log.Printf("[OnbidClient] fetched goods list in %v (%d bytes)", time.Since(start), len(body))
	return string(body), nil
}

// SearchGoods fetches, parses and maps one page of listings.
func (c *Client) SearchGoods(ctx context.Context, filters SearchFilters) (*domain.SearchResult, error) {
	rawXML, err := c.FetchGoodsListXML(ctx, filters)
	if err != nil {
		return nil, err
	}

	resp, err := Parse(rawXML)
	if err != nil {
		return nil, err
	}

	return SearchResultFrom(resp), nil
}

// buildURL assembles the request URL. The service key is appended verbatim
// (the issuer hands it out pre-encoded); user-supplied filter values are
// query-escaped. Blank filters are omitted so the request carries no empty
// parameters.
func (c *Client) buildURL(filters SearchFilters) string {
	pageNo := filters.PageNo
	if pageNo < 1 {
		pageNo = 1
	}
	numOfRows := filters.NumOfRows
	if numOfRows < 1 {
		numOfRows = 10
	}

	var b strings.Builder
	b.WriteString(c.apiURL)
	b.WriteString("?serviceKey=")
	b.WriteString(c.serviceKey)
	fmt.Fprintf(&b, "&numOfRows=%d", numOfRows)
	fmt.Fprintf(&b, "&pageNo=%d", pageNo)
	b.WriteString("&DPSL_MTD_CD=0001") // sale only, no lease

	appendParam(&b, "CTGR_HIRK_ID", filters.CategoryID)
	appendParam(&b, "SIDO", filters.Sido)
	appendParam(&b, "SGK", filters.Sgk)
	appendParam(&b, "EMD", filters.Emd)
	appendParam(&b, "GOODS_PRICE_FROM", filters.GoodsPriceFrom)
	appendParam(&b, "GOODS_PRICE_TO", filters.GoodsPriceTo)
	appendParam(&b, "OPEN_PRICE_FROM", filters.OpenPriceFrom)
	appendParam(&b, "OPEN_PRICE_TO", filters.OpenPriceTo)
	appendParam(&b, "CLTR_NM", filters.GoodsName)
	appendParam(&b, "PBCT_BEGN_DTM", filters.BidBeginDate)
	appendParam(&b, "PBCT_CLS_DTM", filters.BidCloseDate)
	appendParam(&b, "CLTR_MNMT_NO", filters.ManagementNo)

	return b.String()
}

func appendParam(b *strings.Builder, name, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	b.WriteString("&")
	b.WriteString(name)
	b.WriteString("=")
	b.WriteString(url.QueryEscape(value))
}
