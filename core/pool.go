package core

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// divisionPlaces is the scale kept by price ratios and average costs.
const divisionPlaces int32 = 28

// Pool is the running average-cost position for one asset.
type Pool struct {
	Units decimal.Decimal
	// Basis is the total cost of Units in the reporting currency.
	Basis decimal.Decimal
}

func (p Pool) AverageCost() decimal.Decimal {
	if p.Units.IsZero() {
		return decimal.Zero
	}
	return p.Basis.DivRound(p.Units, divisionPlaces)
}

// Pools holds one Pool per asset code. Pools are created on first touch.
type Pools map[string]*Pool

func (ps Pools) get(asset string) *Pool {
	p, ok := ps[asset]
	if !ok {
		p = &Pool{}
		ps[asset] = p
	}
	return p
}

// Acquire adds units at the given reporting-currency cost.
func (ps Pools) Acquire(asset string, units, cost decimal.Decimal) Pool {
	p := ps.get(asset)
	p.Units = p.Units.Add(units)
	p.Basis = p.Basis.Add(cost)
	return *p
}

// Dispose removes units at the pre-disposal average cost and returns the basis removed.
func (ps Pools) Dispose(asset string, units decimal.Decimal, ctx string) (decimal.Decimal, Pool, error) {
	p := ps.get(asset)
	if units.IsNegative() {
		return decimal.Zero, *p, fmt.Errorf("negative removal units in %s", ctx)
	}
	if units.GreaterThan(p.Units) {
		return decimal.Zero, *p, &InsufficientHoldingsError{Context: ctx, Requested: units, Available: p.Units}
	}

	disposed := p.AverageCost().Mul(units)
	p.Units = p.Units.Sub(units)
	p.Basis = p.Basis.Sub(disposed)
	if p.Units.IsZero() {
		p.Basis = decimal.Zero
	}
	return disposed, *p, nil
}

// Assets returns the pooled asset codes in lexical order, leaving out the excluded ones.
func (ps Pools) Assets(exclude ...string) []string {
	skip := make(map[string]struct{}, len(exclude))
	for _, a := range exclude {
		skip[a] = struct{}{}
	}

	assets := make([]string, 0, len(ps))
	for asset := range ps {
		if _, ok := skip[asset]; !ok {
			assets = append(assets, asset)
		}
	}
	sort.Strings(assets)
	return assets
}
