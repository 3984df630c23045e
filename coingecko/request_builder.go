package coingecko

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// buildURL safely combines a base URL with a path
func buildURL(baseURL, path string) string {
	baseURL = strings.TrimRight(baseURL, "/")
	trimmedPath := strings.TrimLeft(path, "/")

	return baseURL + "/" + trimmedPath
}

// MarketsRequestBuilder builds coins/markets request URLs
type MarketsRequestBuilder struct {
	baseURL string
	params  url.Values
}

// NewMarketsRequestBuilder creates a builder for the markets endpoint
func NewMarketsRequestBuilder(baseURL string) *MarketsRequestBuilder {
	rb := &MarketsRequestBuilder{
		baseURL: baseURL,
		params:  url.Values{},
	}

	// Fixed ordering and change window for every dashboard request
	rb.params.Set("order", "market_cap_desc")
	rb.params.Set("price_change_percentage", "24h")

	return rb
}

// WithCurrency adds the vs_currency parameter
func (rb *MarketsRequestBuilder) WithCurrency(currency string) *MarketsRequestBuilder {
	if currency != "" {
		rb.params.Set("vs_currency", strings.ToLower(currency))
	}
	return rb
}

// WithPerPage adds the per_page parameter
func (rb *MarketsRequestBuilder) WithPerPage(perPage int) *MarketsRequestBuilder {
	if perPage > 0 {
		rb.params.Set("per_page", strconv.Itoa(perPage))
	}
	return rb
}

// WithPage adds the page parameter
func (rb *MarketsRequestBuilder) WithPage(page int) *MarketsRequestBuilder {
	if page > 0 {
		rb.params.Set("page", strconv.Itoa(page))
	}
	return rb
}

// WithIDs restricts the response to the given coin ids
func (rb *MarketsRequestBuilder) WithIDs(ids []string) *MarketsRequestBuilder {
	if len(ids) > 0 {
		rb.params.Set("ids", strings.Join(ids, ","))
	}
	return rb
}

// BuildURL builds the complete URL for the request
func (rb *MarketsRequestBuilder) BuildURL() string {
	return fmt.Sprintf("%s?%s", buildURL(rb.baseURL, "coins/markets"), rb.params.Encode())
}

// ChartRequestURL builds the market_chart URL for one coin
func ChartRequestURL(baseURL, coinID, currency string, days int) string {
	path := fmt.Sprintf("coins/%s/market_chart", url.PathEscape(coinID))
	params := url.Values{}
	params.Set("vs_currency", strings.ToLower(currency))
	params.Set("days", strconv.Itoa(days))
	return fmt.Sprintf("%s?%s", buildURL(baseURL, path), params.Encode())
}
