package core

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type EventType string

const (
	TradeDisposition         EventType = "trade_disposition"
	TradeAcquisition         EventType = "trade_acquisition"
	RewardIncome             EventType = "earn_reward_income"
	UnpricedTransferIn       EventType = "warning_unpriced_transfer_in"
	WithdrawalFeeDisposition EventType = "withdrawal_fee_disposition"
)

// IsDisposition reports whether rows of this type realize a gain or loss.
func (t EventType) IsDisposition() bool {
	return t == TradeDisposition || t == WithdrawalFeeDisposition
}

// ReportRow is one line of the audit trail. Unset amounts are left invalid and print empty.
type ReportRow struct {
	Time           time.Time
	RefID          string
	TxID           string
	EventType      EventType
	Asset          string
	UnitsIn        decimal.NullDecimal
	UnitsOut       decimal.NullDecimal
	Proceeds       decimal.NullDecimal
	BasisDisposed  decimal.NullDecimal
	Gain           decimal.NullDecimal
	Income         decimal.NullDecimal
	BasisAdded     decimal.NullDecimal
	PoolUnitsAfter decimal.NullDecimal
	PoolBasisAfter decimal.NullDecimal
	Notes          string
}

func (r *ReportRow) setPool(p Pool) {
	r.PoolUnitsAfter = set(p.Units)
	r.PoolBasisAfter = set(p.Basis)
}

func set(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// Totals are the year-scoped summary figures.
type Totals struct {
	Proceeds      decimal.Decimal
	BasisDisposed decimal.Decimal
	CapitalGain   decimal.Decimal
	RewardIncome  decimal.Decimal
	WarningCount  int
}

func (t *Totals) addDisposition(proceeds, basis, gain decimal.Decimal) {
	t.Proceeds = t.Proceeds.Add(proceeds)
	t.BasisDisposed = t.BasisDisposed.Add(basis)
	t.CapitalGain = t.CapitalGain.Add(gain)
}

func (t *Totals) addIncome(income decimal.Decimal) {
	t.RewardIncome = t.RewardIncome.Add(income)
}

func (t *Totals) addWarning() {
	t.WarningCount++
}

// FormatCurrency rounds half away from zero to cents.
func FormatCurrency(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func FormatUnits(d decimal.Decimal) string {
	return d.StringFixed(8)
}

func FormatNullCurrency(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return FormatCurrency(d.Decimal)
}

func FormatNullUnits(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return FormatUnits(d.Decimal)
}

// FormatTime renders a UTC timestamp with an explicit offset. Sub-second precision is printed in
// groups of 3, 6 or 9 digits and omitted entirely when zero.
func FormatTime(t time.Time) string {
	t = t.UTC()
	base := t.Format("2006-01-02T15:04:05")

	ns := t.Nanosecond()
	switch {
	case ns == 0:
	case ns%int(time.Millisecond) == 0:
		base += fmt.Sprintf(".%03d", ns/int(time.Millisecond))
	case ns%int(time.Microsecond) == 0:
		base += fmt.Sprintf(".%06d", ns/int(time.Microsecond))
	default:
		base += fmt.Sprintf(".%09d", ns)
	}
	return base + "+00:00"
}
