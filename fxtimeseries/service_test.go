package fxtimeseries

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impactcrypto/dashboard/fxrate"
)

// fakeProvider serves canned per-day rates keyed by YYYY-MM-DD
type fakeProvider struct {
	daily       map[string]float64
	latest      float64
	latestErr   error
	dateCalls   []string
	latestCalls int
}

func (p *fakeProvider) RateOnDate(ctx context.Context, from, to string, day time.Time) (float64, error) {
	ymd := day.Format("2006-01-02")
	p.dateCalls = append(p.dateCalls, ymd)
	rate, ok := p.daily[ymd]
	if !ok {
		return math.NaN(), errors.New("HTTP 404")
	}
	return rate, nil
}

func (p *fakeProvider) LatestRate(ctx context.Context, from, to string) (float64, fxrate.RateSource, error) {
	p.latestCalls++
	if p.latestErr != nil {
		return math.NaN(), fxrate.RateSourceNone, p.latestErr
	}
	return p.latest, fxrate.RateSourcePrimary, nil
}

// fixedClock pins the synthesizer's "today"
var fixedClock = time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)

func newTestService(provider RateProvider) *Service {
	s := NewService(provider)
	s.now = func() time.Time { return fixedClock }
	return s
}

func TestTimeseries_FullHistory(t *testing.T) {
	provider := &fakeProvider{daily: map[string]float64{
		"2026-08-29": 10,
		"2026-08-30": 11,
		"2026-08-31": 12,
	}}
	service := newTestService(provider)

	points, err := service.Timeseries(context.Background(), "USD", "IDR", 3)

	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, Point{Date: "2026-08-29", Rate: 10}, points[0])
	assert.Equal(t, Point{Date: "2026-08-30", Rate: 11}, points[1])
	assert.Equal(t, Point{Date: "2026-08-31", Rate: 12}, points[2])

	// Oldest day first, strictly sequential
	assert.Equal(t, []string{"2026-08-29", "2026-08-30", "2026-08-31"}, provider.dateCalls)
	assert.Zero(t, provider.latestCalls)
}

func TestTimeseries_GapInheritsLastKnownRate(t *testing.T) {
	provider := &fakeProvider{daily: map[string]float64{
		"2026-08-29": 10,
		// 2026-08-30 missing
		"2026-08-31": 12,
	}}
	service := newTestService(provider)

	points, err := service.Timeseries(context.Background(), "USD", "IDR", 3)

	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, []Point{
		{Date: "2026-08-29", Rate: 10},
		{Date: "2026-08-30", Rate: 10},
		{Date: "2026-08-31", Rate: 12},
	}, points)
}

func TestTimeseries_LeadingGapTriggersFlatFallback(t *testing.T) {
	provider := &fakeProvider{
		daily: map[string]float64{
			// First day missing, so only one genuine point resolves
			"2026-08-31": 10,
		},
		latest: 10,
	}
	service := newTestService(provider)

	points, err := service.Timeseries(context.Background(), "USD", "IDR", 2)

	require.NoError(t, err)
	// One genuine point is below the plot threshold: the flat series
	// replaces it, restoring the full window length
	require.Len(t, points, 2)
	assert.Equal(t, Point{Date: "2026-08-30", Rate: 10}, points[0])
	assert.Equal(t, Point{Date: "2026-08-31", Rate: 10}, points[1])
	assert.Equal(t, 1, provider.latestCalls)
}

func TestTimeseries_AllDaysFailFlatLineAtLatest(t *testing.T) {
	provider := &fakeProvider{latest: 15.5}
	service := newTestService(provider)

	points, err := service.Timeseries(context.Background(), "USD", "IDR", 5)

	require.NoError(t, err)
	require.Len(t, points, 5)
	for _, p := range points {
		assert.Equal(t, 15.5, p.Rate)
	}
	assertChronological(t, points)
}

func TestTimeseries_EverythingFailsYieldsEmpty(t *testing.T) {
	provider := &fakeProvider{latestErr: errors.New("HTTP 503")}
	service := newTestService(provider)

	points, err := service.Timeseries(context.Background(), "USD", "IDR", 5)

	require.Error(t, err)
	assert.ErrorIs(t, err, fxrate.ErrUnresolved)
	assert.Empty(t, points)
}

func TestTimeseries_SameCurrencyShortCircuits(t *testing.T) {
	provider := &fakeProvider{}
	service := newTestService(provider)

	points, err := service.Timeseries(context.Background(), "USD", "usd", 7)

	require.NoError(t, err)
	require.Len(t, points, 7)
	for _, p := range points {
		assert.Equal(t, 1.0, p.Rate)
	}
	assert.Empty(t, provider.dateCalls)
	assert.Zero(t, provider.latestCalls)
	assertChronological(t, points)
}

func TestTimeseries_SingleDayWindowUsesFlatFallback(t *testing.T) {
	provider := &fakeProvider{
		daily:  map[string]float64{"2026-08-31": 12},
		latest: 13,
	}
	service := newTestService(provider)

	// N=1 can never reach two genuine points
	points, err := service.Timeseries(context.Background(), "USD", "IDR", 1)

	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, Point{Date: "2026-08-31", Rate: 13}, points[0])
}

func TestTimeseries_CancellationAborts(t *testing.T) {
	provider := &fakeProvider{daily: map[string]float64{"2026-08-29": 10}}
	service := newTestService(provider)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Timeseries(ctx, "USD", "IDR", 3)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, provider.dateCalls)
}

func TestTimeseries_ZeroDays(t *testing.T) {
	service := newTestService(&fakeProvider{})

	points, err := service.Timeseries(context.Background(), "USD", "IDR", 0)

	require.NoError(t, err)
	assert.Empty(t, points)
}

// assertChronological verifies strict ascending order and unique dates
func assertChronological(t *testing.T, points []Point) {
	t.Helper()
	for i := 1; i < len(points); i++ {
		assert.Less(t, points[i-1].Date, points[i].Date)
	}
}
