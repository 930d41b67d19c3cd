package dispositions

import (
	"fmt"

	"github.com/DefiantLabs/acb-tax-cli/core"
	"github.com/shopspring/decimal"
)

func (row Row) GetRowForCsv() []string {
	return []string{
		row.Date,
		row.Asset,
		row.UnitsDisposed,
		row.Proceeds,
		row.Basis,
		row.Outlays,
		row.Gain,
	}
}

func (row *Row) ParseReportRow(r core.ReportRow) error {
	if !r.UnitsOut.Valid || !r.Proceeds.Valid || !r.BasisDisposed.Valid || !r.Gain.Valid {
		return fmt.Errorf("disposition row for refid %s is missing amounts", r.RefID)
	}
	row.Date = r.Time.UTC().Format(DateLayout)
	row.Asset = r.Asset
	row.UnitsDisposed = core.FormatUnits(r.UnitsOut.Decimal)
	row.Proceeds = core.FormatCurrency(r.Proceeds.Decimal)
	row.Basis = core.FormatCurrency(r.BasisDisposed.Decimal)
	row.Outlays = core.FormatCurrency(decimal.Zero)
	row.Gain = core.FormatCurrency(r.Gain.Decimal)
	return nil
}
