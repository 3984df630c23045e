package coingecko

import "encoding/json"

// MarketCoin is one row of the coins/markets response. Identity key is
// ID; instances are transient and live only as long as the cache TTL.
type MarketCoin struct {
	ID           string  `json:"id"`
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	Image        string  `json:"image"`
	CurrentPrice float64 `json:"current_price"`
	MarketCap    float64 `json:"market_cap"`
	MarketCapRank int    `json:"market_cap_rank"`

	// PriceChange24h is nil when the upstream has no 24h change for the
	// coin (new listings); distinct from a genuine 0% change
	PriceChange24h *float64 `json:"price_change_percentage_24h"`
}

// PricePoint is one sample of a historical price series. The upstream
// encodes it as a [timestampMs, price] pair.
type PricePoint struct {
	// Timestamp is a millisecond epoch timestamp
	Timestamp int64
	Value     float64
}

// UnmarshalJSON decodes the upstream's two-element array form
func (p *PricePoint) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	p.Timestamp = int64(pair[0])
	p.Value = pair[1]
	return nil
}

// MarketsParams represents parameters for a coin list request
type MarketsParams struct {
	// Currency to price against (e.g. "usd", "idr")
	Currency string

	// PerPage specifies number of results per page (1-250)
	PerPage int

	// Page number for pagination (1-based)
	Page int

	// IDs restricts the response to specific coins; used for the
	// BTC/ETH snapshot and for refreshing exactly the favorited coins
	IDs []string
}
