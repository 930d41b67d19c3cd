package core

import (
	"errors"
	"testing"
	"time"

	"github.com/DefiantLabs/acb-tax-cli/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkLeg(asset, amount string) ledger.Entry {
	return ledger.NewEntry("T", "R", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "trade", "tradespot", asset, dec(amount), dec("0"))
}

func TestValueUsesFallbackRate(t *testing.T) {
	prices := NewPriceState(DefaultCurrencies, dec("1.4"))

	v, err := prices.Value("USD", dec("100"), "test")
	require.NoError(t, err)
	assert.True(t, v.Equal(dec("140")), v.String())

	_, observed := prices.ObservedRate()
	assert.False(t, observed)
}

func TestValueIdentitiesAndMissing(t *testing.T) {
	prices := NewPriceState(DefaultCurrencies, dec("1.4"))

	v, err := prices.Value("CAD", dec("12.5"), "test")
	require.NoError(t, err)
	assert.True(t, v.Equal(dec("12.5")))

	v, err = prices.Value("DOGE", dec("0"), "test")
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	_, err = prices.Value("DOGE", dec("1"), "earn reward R9")
	require.Error(t, err)
	var missing *MissingValuationError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "missing valuation price for DOGE in earn reward R9", err.Error())
}

func TestLearnFiatRateRoundTrip(t *testing.T) {
	prices := NewPriceState(DefaultCurrencies, dec("1.4"))
	prices.Learn(mkLeg("USD", "-100"), mkLeg("CAD", "137.53"))

	rate, ok := prices.ObservedRate()
	require.True(t, ok)
	assert.True(t, rate.Equal(dec("1.3753")), rate.String())

	back, err := prices.Value("USD", dec("100"), "test")
	require.NoError(t, err)
	assert.Equal(t, "137.53", FormatCurrency(back))

	// same orientation when the reporting fiat is sold
	prices = NewPriceState(DefaultCurrencies, dec("1.4"))
	prices.Learn(mkLeg("CAD", "-137.53"), mkLeg("USD", "100"))
	rate, ok = prices.ObservedRate()
	require.True(t, ok)
	assert.True(t, rate.Equal(dec("1.3753")), rate.String())
}

func TestLearnSecondaryPriceFollowsRate(t *testing.T) {
	prices := NewPriceState(DefaultCurrencies, dec("1.4"))
	prices.Learn(mkLeg("USD", "-50000"), mkLeg("BTC", "1"))

	usd, ok := prices.SecondaryPrice("BTC")
	require.True(t, ok)
	assert.True(t, usd.Equal(dec("50000")))

	cad, ok := prices.Price("BTC")
	require.True(t, ok)
	assert.True(t, cad.Equal(dec("70000")), cad.String())

	// a newly observed rate reprices every secondary-fiat price
	prices.Learn(mkLeg("CAD", "-130"), mkLeg("USD", "100"))
	cad, _ = prices.Price("BTC")
	assert.True(t, cad.Equal(dec("65000")), cad.String())
}

func TestLearnReportingPriceAndNoop(t *testing.T) {
	prices := NewPriceState(DefaultCurrencies, dec("1.4"))
	prices.Learn(mkLeg("SOL", "-2"), mkLeg("CAD", "300"))

	cad, ok := prices.Price("SOL")
	require.True(t, ok)
	assert.True(t, cad.Equal(dec("150")))

	prices.Learn(mkLeg("ETH", "-1"), mkLeg("SOL", "0"))
	_, ok = prices.Price("ETH")
	assert.False(t, ok)
}

func TestLearnKeepsPrecisionForLowPricedAssets(t *testing.T) {
	prices := NewPriceState(DefaultCurrencies, dec("1.4"))
	prices.Learn(mkLeg("CAD", "-1"), mkLeg("PEPE", "30000000000000"))

	v, err := prices.Value("PEPE", dec("30000000000000"), "test")
	require.NoError(t, err)
	assert.Equal(t, "1.00", FormatCurrency(v))
	assert.True(t, v.Sub(dec("1")).Abs().LessThan(dec("0.000000000001")), v.String())
}
