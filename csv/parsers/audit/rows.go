package audit

import "github.com/DefiantLabs/acb-tax-cli/core"

func (row Row) GetRowForCsv() []string {
	return []string{
		row.Time,
		row.RefID,
		row.TxID,
		row.EventType,
		row.Asset,
		row.UnitsIn,
		row.UnitsOut,
		row.Proceeds,
		row.BasisDisposed,
		row.Gain,
		row.Income,
		row.BasisAdded,
		row.PoolUnitsAfter,
		row.PoolBasisAfter,
		row.Notes,
	}
}

func (row *Row) ParseReportRow(r core.ReportRow) {
	row.Time = core.FormatTime(r.Time)
	row.RefID = r.RefID
	row.TxID = r.TxID
	row.EventType = string(r.EventType)
	row.Asset = r.Asset
	row.UnitsIn = core.FormatNullUnits(r.UnitsIn)
	row.UnitsOut = core.FormatNullUnits(r.UnitsOut)
	row.Proceeds = core.FormatNullCurrency(r.Proceeds)
	row.BasisDisposed = core.FormatNullCurrency(r.BasisDisposed)
	row.Gain = core.FormatNullCurrency(r.Gain)
	row.Income = core.FormatNullCurrency(r.Income)
	row.BasisAdded = core.FormatNullCurrency(r.BasisAdded)
	row.PoolUnitsAfter = core.FormatNullUnits(r.PoolUnitsAfter)
	row.PoolBasisAfter = core.FormatNullCurrency(r.PoolBasisAfter)
	row.Notes = r.Notes
}
