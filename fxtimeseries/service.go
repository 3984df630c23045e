package fxtimeseries

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/impactcrypto/dashboard/fetch"
	"github.com/impactcrypto/dashboard/fxrate"
)

// RateProvider is the slice of the FX client the synthesizer needs
type RateProvider interface {
	RateOnDate(ctx context.Context, from, to string, day time.Time) (float64, error)
	LatestRate(ctx context.Context, from, to string) (float64, fxrate.RateSource, error)
}

// Point is one calendar day of a synthesized rate history
type Point struct {
	// Date is the UTC calendar day in YYYY-MM-DD form
	Date string `json:"date"`
	Rate float64 `json:"rate"`
}

// Service reconstructs a day-by-day rate history for a currency pair.
// The historical provider publishes at most once per day and may lag,
// so missing days inherit the last observed rate; a history too thin to
// plot degrades to a flat line at the latest known rate. The policy
// favors visual continuity over flagging individual missing days.
type Service struct {
	provider RateProvider

	// now is the clock, injectable for tests
	now func() time.Time
}

// NewService creates a timeseries synthesizer over the given provider
func NewService(provider RateProvider) *Service {
	return &Service{
		provider: provider,
		now:      time.Now,
	}
}

// Timeseries produces one point per calendar day for the last days
// days including today, strictly chronological with no duplicate dates.
// Requests are issued sequentially, oldest day first, to keep provider
// ordering and rate-limit pressure predictable.
//
// The result is empty only when every provider call fails, in which
// case the error says so; cancellation aborts the whole pass.
func (s *Service) Timeseries(ctx context.Context, from, to string, days int) ([]Point, error) {
	if days <= 0 {
		return []Point{}, nil
	}

	today := s.now().UTC()

	if strings.EqualFold(from, to) {
		return flatSeries(today, days, 1), nil
	}

	points := make([]Point, 0, days)
	lastKnown := math.NaN()

	for i := days - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("timeseries aborted: %w", err)
		}

		day := today.AddDate(0, 0, -i)

		rate, err := s.provider.RateOnDate(ctx, from, to, day)
		if err != nil && fetch.IsAborted(err) {
			return nil, err
		}
		if err != nil || !isFinite(rate) {
			// Gap: inherit the last rate observed earlier in this pass.
			// A leading gap produces no point at all rather than a zero.
			rate = lastKnown
		}

		if isFinite(rate) {
			points = append(points, Point{Date: day.Format("2006-01-02"), Rate: rate})
			lastKnown = rate
		}
	}

	if len(points) >= 2 {
		return points, nil
	}

	// Too thin to plot: synthesize a flat line at the latest known rate
	latest, source, err := s.provider.LatestRate(ctx, from, to)
	if err != nil || !isFinite(latest) {
		if err != nil && fetch.IsAborted(err) {
			return nil, err
		}
		return []Point{}, fmt.Errorf("no resolvable rate for %s->%s: %w", from, to, fxrate.ErrUnresolved)
	}

	log.Printf("FX timeseries: %s->%s history too sparse (%d points), flat line at %s rate",
		from, to, len(points), source)
	return flatSeries(today, days, latest), nil
}

// flatSeries emits one point per day, all carrying the same rate
func flatSeries(today time.Time, days int, rate float64) []Point {
	points := make([]Point, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		points = append(points, Point{Date: day.Format("2006-01-02"), Rate: rate})
	}
	return points
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
