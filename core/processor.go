package core

import (
	"fmt"

	"github.com/DefiantLabs/acb-tax-cli/config"
	"github.com/DefiantLabs/acb-tax-cli/ledger"
	"github.com/shopspring/decimal"
)

// Settings are fixed for the duration of one run.
type Settings struct {
	TaxYear      int
	FallbackRate decimal.Decimal
	Currencies   Currencies
}

// Result is everything a run produces.
type Result struct {
	Settings Settings
	Rows     []ReportRow
	Totals   Totals
	Pools    Pools
	Prices   *PriceState
}

// EndingPools lists every pool except the reporting fiat, ordered by asset.
func (r *Result) EndingPools() []PoolBalance {
	assets := r.Pools.Assets(r.Settings.Currencies.Reporting)
	balances := make([]PoolBalance, 0, len(assets))
	for _, asset := range assets {
		balances = append(balances, PoolBalance{Asset: asset, Pool: *r.Pools[asset]})
	}
	return balances
}

type PoolBalance struct {
	Asset string
	Pool
}

// Processor threads the oracle, pools and totals through a single forward pass.
type Processor struct {
	settings Settings
	prices   *PriceState
	pools    Pools
	totals   Totals
	rows     []ReportRow
}

func NewProcessor(settings Settings) *Processor {
	if settings.Currencies == (Currencies{}) {
		settings.Currencies = DefaultCurrencies
	}
	return &Processor{
		settings: settings,
		prices:   NewPriceState(settings.Currencies, settings.FallbackRate),
		pools:    make(Pools),
	}
}

// Process sequences the entries and runs every event through the handlers.
func Process(entries []ledger.Entry, settings Settings) (*Result, error) {
	events, err := ledger.Sequence(entries, settings.TaxYear)
	if err != nil {
		return nil, err
	}

	p := NewProcessor(settings)
	for _, ev := range events {
		if err := p.Handle(ev); err != nil {
			return nil, err
		}
	}
	config.Log.Infof("Processed %d events for tax year %d, %d report rows", len(events), settings.TaxYear, len(p.rows))
	return p.Result(), nil
}

func (p *Processor) Result() *Result {
	return &Result{
		Settings: p.settings,
		Rows:     p.rows,
		Totals:   p.totals,
		Pools:    p.pools,
		Prices:   p.prices,
	}
}

// Handle applies one event.
func (p *Processor) Handle(ev ledger.Event) error {
	switch e := ev.(type) {
	case ledger.TradeEvent:
		return p.handleTrade(e.Group)
	case ledger.EntryEvent:
		return p.handleEntry(e.Entry)
	default:
		return fmt.Errorf("unknown event type %T", ev)
	}
}

func (p *Processor) inTaxYear(ev ledger.Event) bool {
	return ev.When().Year() == p.settings.TaxYear
}

func (p *Processor) handleEntry(e ledger.Entry) error {
	config.Log.Debugf("Entry %s %s %s %s net=%s", e.Time, e.RefID, e.Kind, e.Asset, e.NetDelta)

	switch e.Kind {
	case ledger.Reward:
		return p.handleReward(e)
	case ledger.Deposit:
		return p.handleDeposit(e)
	case ledger.Withdrawal:
		return p.handleWithdrawal(e)
	case ledger.Reallocation:
		// moves between wallets, holdings are unchanged
		return nil
	default:
		return nil
	}
}

func (p *Processor) emit(row ReportRow) {
	p.rows = append(p.rows, row)
}

func newRow(t ledger.Event, refID, txID string, eventType EventType, asset string) ReportRow {
	return ReportRow{Time: t.When(), RefID: refID, TxID: txID, EventType: eventType, Asset: asset}
}
