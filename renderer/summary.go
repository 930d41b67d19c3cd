package renderer

import (
	"fmt"
	"io"

	"github.com/DefiantLabs/acb-tax-cli/core"
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

type PoolLine struct {
	Asset       string `json:"asset"`
	Units       string `json:"units"`
	Basis       string `json:"acb"`
	AverageCost string `json:"averageCost"`

	basis       decimal.Decimal
	averageCost decimal.Decimal
}

// Summary is the read-only view of a finished run handed to the console and the API.
type Summary struct {
	TaxYear           int        `json:"taxYear"`
	ReportingCurrency string     `json:"reportingCurrency"`
	SecondaryCurrency string     `json:"secondaryCurrency"`
	FallbackRate      string     `json:"fallbackRate"`
	Proceeds          string     `json:"proceeds"`
	BasisDisposed     string     `json:"acbDisposed"`
	CapitalGain       string     `json:"capitalGain"`
	RewardIncome      string     `json:"rewardIncome"`
	WarningCount      int        `json:"warningCount"`
	Pools             []PoolLine `json:"pools"`

	totals core.Totals
}

func NewSummary(result *core.Result) Summary {
	s := Summary{
		TaxYear:           result.Settings.TaxYear,
		ReportingCurrency: result.Settings.Currencies.Reporting,
		SecondaryCurrency: result.Settings.Currencies.Secondary,
		FallbackRate:      result.Settings.FallbackRate.String(),
		Proceeds:          core.FormatCurrency(result.Totals.Proceeds),
		BasisDisposed:     core.FormatCurrency(result.Totals.BasisDisposed),
		CapitalGain:       core.FormatCurrency(result.Totals.CapitalGain),
		RewardIncome:      core.FormatCurrency(result.Totals.RewardIncome),
		WarningCount:      result.Totals.WarningCount,
		Pools:             []PoolLine{},
		totals:            result.Totals,
	}

	for _, b := range result.EndingPools() {
		avg := b.AverageCost()
		s.Pools = append(s.Pools, PoolLine{
			Asset:       b.Asset,
			Units:       core.FormatUnits(b.Units),
			Basis:       core.FormatCurrency(b.Basis),
			AverageCost: core.FormatCurrency(avg),
			basis:       b.Basis,
			averageCost: avg,
		})
	}
	return s
}

// PlainSummary writes the console summary.
func PlainSummary(w io.Writer, s Summary) error {
	cur := s.ReportingCurrency
	lines := []string{
		"",
		"=== CANADIAN CRYPTO TAX SUMMARY (LEDGER / ACB) ===",
		fmt.Sprintf("Tax year: %d", s.TaxYear),
		fmt.Sprintf("Fallback %s/%s FX: %s", s.SecondaryCurrency, cur, s.FallbackRate),
		fmt.Sprintf("Total proceeds (%s): %s", cur, s.Proceeds),
		fmt.Sprintf("Total ACB disposed (%s): %s", cur, s.BasisDisposed),
		fmt.Sprintf("Net capital gain/loss (%s): %s", cur, s.CapitalGain),
		fmt.Sprintf("Total reward income (%s): %s", cur, s.RewardIncome),
		fmt.Sprintf("Warnings (transfer-in assumed 0 ACB): %d", s.WarningCount),
		"",
		"=== ENDING POOLS (units + ACB) ===",
	}
	if cur != "CAD" {
		lines[1] = "=== CRYPTO TAX SUMMARY (LEDGER / ACB) ==="
	}
	for _, p := range s.Pools {
		lines = append(lines, fmt.Sprintf("%s: units=%s, ACB(%s)=%s, avg_cost(%s/unit)=%s", p.Asset, p.Units, cur, p.Basis, cur, p.AverageCost))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// DisplayMoney formats an amount in a known ISO currency with its symbol and grouping.
// Unknown codes fall back to the plain two-place amount followed by the code.
func DisplayMoney(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return fmt.Sprintf("%s %s", core.FormatCurrency(amount), currency)
	}
	places := int32(cur.Fraction)
	minor := amount.Round(places).Shift(places).IntPart()
	return money.New(minor, currency).Display()
}
