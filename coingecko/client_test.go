package coingecko

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impactcrypto/dashboard/config"
	"github.com/impactcrypto/dashboard/fetch"
)

// fakeFetcher returns canned payloads and records requested URLs
type fakeFetcher struct {
	payload []byte
	err     error
	urls    []string
	opts    []fetch.Options
}

func (f *fakeFetcher) FetchJSON(ctx context.Context, url string, opts fetch.Options) ([]byte, error) {
	f.urls = append(f.urls, url)
	f.opts = append(f.opts, opts)
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

func testConfig() config.CoingeckoConfig {
	cfg := config.DefaultCoingeckoConfig()
	cfg.BaseURL = "http://test/api/v3"
	return cfg
}

func TestMarkets_ParsesResponse(t *testing.T) {
	fetcher := &fakeFetcher{payload: []byte(`[
		{"id":"bitcoin","symbol":"btc","name":"Bitcoin","image":"http://img/btc.png",
		 "current_price":64250.12,"market_cap":1250000000000,"market_cap_rank":1,
		 "price_change_percentage_24h":-1.25},
		{"id":"ethereum","symbol":"eth","name":"Ethereum","image":"http://img/eth.png",
		 "current_price":3120.5,"market_cap":375000000000,"market_cap_rank":2,
		 "price_change_percentage_24h":null}
	]`)}

	client := NewClient(fetcher, testConfig())
	coins, err := client.Markets(context.Background(), MarketsParams{Currency: "USD", PerPage: 2, Page: 1})

	require.NoError(t, err)
	require.Len(t, coins, 2)
	assert.Equal(t, "bitcoin", coins[0].ID)
	assert.Equal(t, 1, coins[0].MarketCapRank)
	require.NotNil(t, coins[0].PriceChange24h)
	assert.InDelta(t, -1.25, *coins[0].PriceChange24h, 1e-9)
	assert.Nil(t, coins[1].PriceChange24h)

	// Request shape: lowercased currency, fixed order and change window
	require.Len(t, fetcher.urls, 1)
	assert.Contains(t, fetcher.urls[0], "coins/markets?")
	assert.Contains(t, fetcher.urls[0], "vs_currency=usd")
	assert.Contains(t, fetcher.urls[0], "order=market_cap_desc")
	assert.Contains(t, fetcher.urls[0], "price_change_percentage=24h")
	assert.Contains(t, fetcher.urls[0], "per_page=2")
	assert.Equal(t, testConfig().MarketsTTL, fetcher.opts[0].TTL)
}

func TestMarkets_IDsFilter(t *testing.T) {
	fetcher := &fakeFetcher{payload: []byte(`[]`)}
	client := NewClient(fetcher, testConfig())

	_, err := client.Markets(context.Background(), MarketsParams{
		Currency: "usd",
		IDs:      []string{"bitcoin", "ethereum"},
	})

	require.NoError(t, err)
	assert.Contains(t, fetcher.urls[0], "ids=bitcoin%2Cethereum")
}

func TestMarketsByIDs_EmptySkipsNetwork(t *testing.T) {
	fetcher := &fakeFetcher{payload: []byte(`[]`)}
	client := NewClient(fetcher, testConfig())

	coins, err := client.MarketsByIDs(context.Background(), "usd", nil)

	require.NoError(t, err)
	assert.Empty(t, coins)
	assert.Empty(t, fetcher.urls)
}

func TestMarkets_FetchErrorPropagates(t *testing.T) {
	fetchErr := errors.New("HTTP 502")
	fetcher := &fakeFetcher{err: fetchErr}
	client := NewClient(fetcher, testConfig())

	_, err := client.Markets(context.Background(), MarketsParams{Currency: "usd"})

	require.Error(t, err)
	assert.ErrorIs(t, err, fetchErr)
}

func TestMarketChart_ParsesPricePairs(t *testing.T) {
	fetcher := &fakeFetcher{payload: []byte(`{
		"prices":[[1714000000000, 64000.5],[1714086400000, 64550.25]],
		"market_caps":[[1714000000000, 1.2e12]]
	}`)}
	client := NewClient(fetcher, testConfig())

	points, err := client.MarketChart(context.Background(), "bitcoin", "usd", 7)

	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, int64(1714000000000), points[0].Timestamp)
	assert.InDelta(t, 64000.5, points[0].Value, 1e-9)
	assert.Equal(t, int64(1714086400000), points[1].Timestamp)

	assert.Contains(t, fetcher.urls[0], "coins/bitcoin/market_chart?")
	assert.Contains(t, fetcher.urls[0], "days=7")
	assert.Equal(t, testConfig().ChartTTL, fetcher.opts[0].TTL)
}

func TestMarketChart_MissingPricesYieldsEmptySeries(t *testing.T) {
	fetcher := &fakeFetcher{payload: []byte(`{"market_caps":[]}`)}
	client := NewClient(fetcher, testConfig())

	points, err := client.MarketChart(context.Background(), "bitcoin", "usd", 7)

	require.NoError(t, err)
	assert.NotNil(t, points)
	assert.Empty(t, points)
}
