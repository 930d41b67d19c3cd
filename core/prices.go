package core

import (
	"github.com/DefiantLabs/acb-tax-cli/ledger"
	"github.com/shopspring/decimal"
)

// PriceState is the valuation oracle. It only learns from trades it is shown.
type PriceState struct {
	currencies Currencies
	fallback   decimal.Decimal

	// rate is reporting fiat per one unit of secondary fiat, once observed.
	rate      *decimal.Decimal
	secondary map[string]decimal.Decimal
	reporting map[string]decimal.Decimal
}

func NewPriceState(currencies Currencies, fallbackRate decimal.Decimal) *PriceState {
	return &PriceState{
		currencies: currencies,
		fallback:   fallbackRate,
		secondary:  make(map[string]decimal.Decimal),
		reporting:  make(map[string]decimal.Decimal),
	}
}

// Rate returns the last observed fiat/fiat rate, or the fallback before any was observed.
func (p *PriceState) Rate() decimal.Decimal {
	if p.rate != nil {
		return *p.rate
	}
	return p.fallback
}

func (p *PriceState) ObservedRate() (decimal.Decimal, bool) {
	if p.rate == nil {
		return decimal.Zero, false
	}
	return *p.rate, true
}

// Price returns the learned reporting-currency price of asset.
func (p *PriceState) Price(asset string) (decimal.Decimal, bool) {
	price, ok := p.reporting[asset]
	return price, ok
}

// SecondaryPrice returns the learned secondary-fiat price of asset.
func (p *PriceState) SecondaryPrice(asset string) (decimal.Decimal, bool) {
	price, ok := p.secondary[asset]
	return price, ok
}

// Value converts units of asset into the reporting currency. ctx names the operation in errors.
func (p *PriceState) Value(asset string, units decimal.Decimal, ctx string) (decimal.Decimal, error) {
	if units.IsZero() {
		return decimal.Zero, nil
	}

	switch asset {
	case p.currencies.Reporting:
		return units, nil
	case p.currencies.Secondary:
		return units.Mul(p.Rate()), nil
	}

	if price, ok := p.reporting[asset]; ok {
		return units.Mul(price), nil
	}
	if price, ok := p.secondary[asset]; ok {
		return units.Mul(price).Mul(p.Rate()), nil
	}
	return decimal.Zero, &MissingValuationError{Asset: asset, Context: ctx}
}

// Learn records the prices implied by one trade's legs.
func (p *PriceState) Learn(out, in ledger.Entry) {
	outUnits := out.NetDelta.Neg()
	inUnits := in.NetDelta
	if !outUnits.IsPositive() || !inUnits.IsPositive() {
		return
	}

	rep, sec := p.currencies.Reporting, p.currencies.Secondary

	if p.currencies.IsFiatPair(out.Asset, in.Asset) {
		secUnits, repUnits := outUnits, inUnits
		if out.Asset == rep {
			secUnits, repUnits = inUnits, outUnits
		}
		rate := repUnits.DivRound(secUnits, divisionPlaces)
		p.rate = &rate
		p.reporting[sec] = rate
	}

	if out.Asset == sec && in.Asset != rep {
		p.secondary[in.Asset] = outUnits.DivRound(inUnits, divisionPlaces)
	}
	if in.Asset == sec && out.Asset != rep {
		p.secondary[out.Asset] = inUnits.DivRound(outUnits, divisionPlaces)
	}
	if out.Asset == rep && in.Asset != sec {
		p.reporting[in.Asset] = outUnits.DivRound(inUnits, divisionPlaces)
	}
	if in.Asset == rep && out.Asset != sec {
		p.reporting[out.Asset] = inUnits.DivRound(outUnits, divisionPlaces)
	}

	rate := p.Rate()
	for asset, price := range p.secondary {
		p.reporting[asset] = price.Mul(rate)
	}
}
