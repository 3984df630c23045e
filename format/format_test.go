package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrency_ZeroFractionCurrencies(t *testing.T) {
	assert.Equal(t, "IDR 1,234,567", Currency(1234567, "IDR"))
	assert.Equal(t, "VND 25,000", Currency(25000.4, "VND"))
}

func TestCurrency_TwoFractionDigits(t *testing.T) {
	assert.Equal(t, "USD 1,234.50", Currency(1234.5, "USD"))
	assert.Equal(t, "EUR 0.92", Currency(0.92, "EUR"))
	assert.Equal(t, "USD 64,250.12", Currency(64250.12, "USD"))
}

func TestCurrency_RoundsHalfUp(t *testing.T) {
	assert.Equal(t, "USD 10.13", Currency(10.125, "USD"))
	assert.Equal(t, "IDR 16,235", Currency(16234.6, "IDR"))
}

func TestCurrency_UnknownCodeStillRenders(t *testing.T) {
	assert.Equal(t, "XXX 12.00", Currency(12, "XXX"))
}

func TestNumber_Grouping(t *testing.T) {
	assert.Equal(t, "1,250,000", Number(1250000))
}

func TestChangeDirection(t *testing.T) {
	up := 2.5
	down := -0.1
	zero := 0.0
	nan := math.NaN()

	assert.Equal(t, DirectionUp, ChangeDirection(&up))
	assert.Equal(t, DirectionDown, ChangeDirection(&down))
	assert.Equal(t, DirectionUp, ChangeDirection(&zero))
	assert.Equal(t, DirectionUnknown, ChangeDirection(nil))
	assert.Equal(t, DirectionUnknown, ChangeDirection(&nan))
}
