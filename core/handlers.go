package core

import (
	"fmt"

	"github.com/DefiantLabs/acb-tax-cli/config"
	"github.com/DefiantLabs/acb-tax-cli/ledger"
	"github.com/shopspring/decimal"
)

// legValue values one trade leg. Fiat legs value themselves, a crypto leg traded against fiat takes the
// fiat side's value, and only crypto/crypto trades consult the oracle.
func (p *Processor) legValue(leg ledger.Entry, units decimal.Decimal, other ledger.Entry, otherUnits decimal.Decimal, ctx string) (decimal.Decimal, error) {
	rep, sec := p.settings.Currencies.Reporting, p.settings.Currencies.Secondary
	switch {
	case leg.Asset == rep:
		return units, nil
	case leg.Asset == sec:
		return units.Mul(p.prices.Rate()), nil
	case other.Asset == rep:
		return otherUnits, nil
	case other.Asset == sec:
		return otherUnits.Mul(p.prices.Rate()), nil
	default:
		return p.prices.Value(leg.Asset, units, ctx)
	}
}

func (p *Processor) handleTrade(g ledger.TradeGroup) error {
	out, in, err := g.Split()
	if err != nil {
		return err
	}
	outUnits := out.NetDelta.Neg()
	inUnits := in.NetDelta
	ev := ledger.TradeEvent{Group: g}
	rep := p.settings.Currencies.Reporting

	config.Log.Debugf("Trade %s %s %s -> %s %s", g.RefID, outUnits, out.Asset, inUnits, in.Asset)

	outValue, err := p.legValue(out, outUnits, in, inUnits, fmt.Sprintf("trade %s out leg", g.RefID))
	if err != nil {
		return err
	}
	inValue, err := p.legValue(in, inUnits, out, outUnits, fmt.Sprintf("trade %s in leg", g.RefID))
	if err != nil {
		return err
	}

	if out.Asset != rep {
		disposed, pool, err := p.pools.Dispose(out.Asset, outUnits, fmt.Sprintf("trade disposition %s %s", g.RefID, out.Asset))
		if err != nil {
			return err
		}
		gain := inValue.Sub(disposed)

		if p.inTaxYear(ev) {
			row := newRow(ev, g.RefID, g.TxID, TradeDisposition, out.Asset)
			row.UnitsOut = set(outUnits)
			row.Proceeds = set(inValue)
			row.BasisDisposed = set(disposed)
			row.Gain = set(gain)
			row.setPool(pool)
			p.emit(row)
			p.totals.addDisposition(inValue, disposed, gain)
		}
	}

	if in.Asset != rep {
		pool := p.pools.Acquire(in.Asset, inUnits, outValue)

		if p.inTaxYear(ev) {
			row := newRow(ev, g.RefID, g.TxID, TradeAcquisition, in.Asset)
			row.UnitsIn = set(inUnits)
			row.BasisAdded = set(outValue)
			row.setPool(pool)
			p.emit(row)
		}
	}

	p.prices.Learn(out, in)
	return nil
}

func (p *Processor) handleReward(e ledger.Entry) error {
	if !e.NetDelta.IsPositive() {
		return &ValidationError{Kind: e.Kind, RefID: e.RefID, Reason: "must have positive net delta"}
	}
	income, err := p.prices.Value(e.Asset, e.NetDelta, fmt.Sprintf("earn reward %s", e.RefID))
	if err != nil {
		return err
	}
	if e.Asset == p.settings.Currencies.Reporting {
		return nil
	}

	pool := p.pools.Acquire(e.Asset, e.NetDelta, income)
	ev := ledger.EntryEvent{Entry: e}
	if p.inTaxYear(ev) {
		row := newRow(ev, e.RefID, e.TxID, RewardIncome, e.Asset)
		row.UnitsIn = set(e.NetDelta)
		row.Income = set(income)
		row.BasisAdded = set(income)
		row.setPool(pool)
		p.emit(row)
		p.totals.addIncome(income)
	}
	return nil
}

func (p *Processor) handleDeposit(e ledger.Entry) error {
	if !e.NetDelta.IsPositive() {
		return &ValidationError{Kind: e.Kind, RefID: e.RefID, Reason: "must have positive net delta"}
	}
	rep := p.settings.Currencies.Reporting
	if e.Asset == rep {
		return nil
	}

	pool := p.pools.Acquire(e.Asset, e.NetDelta, decimal.Zero)
	ev := ledger.EntryEvent{Entry: e}
	if p.inTaxYear(ev) {
		config.Log.Warnf("Deposit %s of %s %s has no known cost, assuming zero basis", e.RefID, e.NetDelta, e.Asset)

		row := newRow(ev, e.RefID, e.TxID, UnpricedTransferIn, e.Asset)
		row.UnitsIn = set(e.NetDelta)
		row.setPool(pool)
		row.Notes = fmt.Sprintf("Deposit treated as transfer-in with unknown ACB; assumed 0 %s basis", rep)
		p.emit(row)
		p.totals.addWarning()
	}
	return nil
}

func (p *Processor) handleWithdrawal(e ledger.Entry) error {
	if !e.Amount.IsNegative() {
		return &ValidationError{Kind: e.Kind, RefID: e.RefID, Reason: "must have negative amount"}
	}
	if e.Asset == p.settings.Currencies.Reporting {
		return nil
	}

	if _, _, err := p.pools.Dispose(e.Asset, e.Amount.Neg(), fmt.Sprintf("withdrawal principal %s %s", e.RefID, e.Asset)); err != nil {
		return err
	}
	if !e.Fee.IsPositive() {
		return nil
	}

	// the fee is a disposition with no proceeds
	disposed, pool, err := p.pools.Dispose(e.Asset, e.Fee, fmt.Sprintf("withdrawal fee %s %s", e.RefID, e.Asset))
	if err != nil {
		return err
	}
	gain := disposed.Neg()

	ev := ledger.EntryEvent{Entry: e}
	if p.inTaxYear(ev) {
		row := newRow(ev, e.RefID, e.TxID, WithdrawalFeeDisposition, e.Asset)
		row.UnitsOut = set(e.Fee)
		row.Proceeds = set(decimal.Zero)
		row.BasisDisposed = set(disposed)
		row.Gain = set(gain)
		row.setPool(pool)
		p.emit(row)
		p.totals.addDisposition(decimal.Zero, disposed, gain)
	}
	return nil
}
