package db

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportRun is one computed report with its year-scoped totals.
type ReportRun struct {
	ID                uint
	RunID             string `gorm:"uniqueIndex"`
	Source            string
	TaxYear           int             `gorm:"index"`
	ReportingCurrency string
	SecondaryCurrency string
	FallbackRate      decimal.Decimal     `gorm:"type:numeric"`
	ObservedRate      decimal.NullDecimal `gorm:"type:numeric"`
	Proceeds          decimal.Decimal     `gorm:"type:numeric"`
	BasisDisposed     decimal.Decimal     `gorm:"type:numeric"`
	CapitalGain       decimal.Decimal     `gorm:"type:numeric"`
	RewardIncome      decimal.Decimal     `gorm:"type:numeric"`
	WarningCount      int
	CreatedAt         time.Time
}

// ReportEntry is one audit row of a run, Seq preserving processing order.
type ReportEntry struct {
	ID             uint
	ReportRunID    uint `gorm:"index"`
	Seq            int
	Time           time.Time
	RefID          string `gorm:"index"`
	TxID           string
	EventType      string
	Asset          string
	UnitsIn        decimal.NullDecimal `gorm:"type:numeric"`
	UnitsOut       decimal.NullDecimal `gorm:"type:numeric"`
	Proceeds       decimal.NullDecimal `gorm:"type:numeric"`
	BasisDisposed  decimal.NullDecimal `gorm:"type:numeric"`
	Gain           decimal.NullDecimal `gorm:"type:numeric"`
	Income         decimal.NullDecimal `gorm:"type:numeric"`
	BasisAdded     decimal.NullDecimal `gorm:"type:numeric"`
	PoolUnitsAfter decimal.NullDecimal `gorm:"type:numeric"`
	PoolBasisAfter decimal.NullDecimal `gorm:"type:numeric"`
	Notes          string
}

// PoolSnapshot is an ending pool of a run.
type PoolSnapshot struct {
	ID          uint
	ReportRunID uint `gorm:"index"`
	Asset       string
	Units       decimal.Decimal `gorm:"type:numeric"`
	Basis       decimal.Decimal `gorm:"type:numeric"`
}
