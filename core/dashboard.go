package core

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/impactcrypto/dashboard/appstate"
	"github.com/impactcrypto/dashboard/coingecko"
	"github.com/impactcrypto/dashboard/config"
	"github.com/impactcrypto/dashboard/events"
	"github.com/impactcrypto/dashboard/poller"
)

// MarketsProvider is the slice of the market client the dashboard needs
type MarketsProvider interface {
	Markets(ctx context.Context, params coingecko.MarketsParams) ([]coingecko.MarketCoin, error)
	MarketsByIDs(ctx context.Context, currency string, ids []string) ([]coingecko.MarketCoin, error)
}

// Snapshot is the stat-card data shown above the coin table
type Snapshot struct {
	BTC *coingecko.MarketCoin
	ETH *coingecko.MarketCoin

	// Favorites holds fresh market rows for the watchlist
	Favorites []coingecko.MarketCoin
}

// Dashboard drives the coin table: it polls the market list on an
// adaptive cadence, keeps the latest result, and notifies subscribers
// after every successful refresh. Consumers that supersede an in-flight
// request (a fiat switch, for example) cancel their own context; the
// dashboard never cancels on their behalf.
type Dashboard struct {
	markets MarketsProvider
	state   *appstate.Store
	config  config.PollerConfig

	hub    *events.Hub
	poller *poller.Poller

	mu    sync.RWMutex
	coins []coingecko.MarketCoin
}

// NewDashboard creates the dashboard service
func NewDashboard(markets MarketsProvider, state *appstate.Store, cfg config.PollerConfig) *Dashboard {
	d := &Dashboard{
		markets: markets,
		state:   state,
		config:  cfg,
		hub:     events.NewHub(),
	}
	d.poller = poller.New(cfg.BaseInterval, cfg.MaxInterval, d.refresh)
	return d
}

// Start implements Interface
func (d *Dashboard) Start(ctx context.Context) error {
	if d.markets == nil {
		return fmt.Errorf("markets dependency not provided")
	}
	d.poller.Start(ctx, true)
	return nil
}

// Stop implements Interface
func (d *Dashboard) Stop() {
	d.poller.Stop()
}

// refresh is the poll task: fetch the market list for the selected
// fiat, store it, and notify subscribers
func (d *Dashboard) refresh(ctx context.Context) error {
	coins, err := d.markets.Markets(ctx, coingecko.MarketsParams{
		Currency: strings.ToLower(d.state.Fiat()),
		PerPage:  d.config.PageSize,
		Page:     1,
	})
	if err != nil {
		log.Printf("Dashboard: market list refresh failed: %v", err)
		return err
	}

	d.mu.Lock()
	d.coins = coins
	d.mu.Unlock()

	d.hub.Emit(ctx)
	return nil
}

// Coins returns the market list from the latest successful refresh
func (d *Dashboard) Coins() []coingecko.MarketCoin {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]coingecko.MarketCoin, len(d.coins))
	copy(out, d.coins)
	return out
}

// VisibleCoins returns the latest market list filtered by the current
// search text
func (d *Dashboard) VisibleCoins() []coingecko.MarketCoin {
	return FilterCoins(d.Coins(), d.state.Search())
}

// FavoriteCoins fetches fresh market rows for exactly the favorited
// coins. An empty watchlist returns an empty slice without a request.
func (d *Dashboard) FavoriteCoins(ctx context.Context) ([]coingecko.MarketCoin, error) {
	return d.markets.MarketsByIDs(ctx, strings.ToLower(d.state.Fiat()), d.state.Favorites())
}

// LoadSnapshot fetches the BTC/ETH stat cards and the favorites rows
// concurrently
func (d *Dashboard) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	currency := strings.ToLower(d.state.Fiat())
	snapshot := &Snapshot{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		coins, err := d.markets.MarketsByIDs(gctx, currency, []string{"bitcoin", "ethereum"})
		if err != nil {
			return err
		}
		for i := range coins {
			switch coins[i].ID {
			case "bitcoin":
				snapshot.BTC = &coins[i]
			case "ethereum":
				snapshot.ETH = &coins[i]
			}
		}
		return nil
	})

	g.Go(func() error {
		favorites, err := d.FavoriteCoins(gctx)
		if err != nil {
			return err
		}
		snapshot.Favorites = favorites
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// SubscribeUpdates returns a channel that receives a tick after each
// successful market refresh
func (d *Dashboard) SubscribeUpdates() chan struct{} {
	return d.hub.Subscribe()
}

// Unsubscribe removes a subscription channel
func (d *Dashboard) Unsubscribe(ch chan struct{}) {
	d.hub.Unsubscribe(ch)
}

// FilterCoins returns the coins whose name or symbol contains the
// query, case-insensitively. An empty query returns the input as-is.
func FilterCoins(coins []coingecko.MarketCoin, query string) []coingecko.MarketCoin {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return coins
	}

	filtered := make([]coingecko.MarketCoin, 0, len(coins))
	for _, coin := range coins {
		if strings.Contains(strings.ToLower(coin.Name), query) ||
			strings.Contains(strings.ToLower(coin.Symbol), query) {
			filtered = append(filtered, coin)
		}
	}
	return filtered
}
