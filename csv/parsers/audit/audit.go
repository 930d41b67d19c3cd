package audit

import (
	"fmt"
	"strings"

	"github.com/DefiantLabs/acb-tax-cli/core"
	"github.com/DefiantLabs/acb-tax-cli/csv/parsers"
)

// ProcessReport keeps every row of the audit trail in processing order.
func (p *Parser) ProcessReport(result *core.Result) error {
	p.Currency = result.Settings.Currencies.Reporting
	p.Rows = make([]Row, 0, len(result.Rows))
	for _, reportRow := range result.Rows {
		row := Row{}
		row.ParseReportRow(reportRow)
		p.Rows = append(p.Rows, row)
	}
	return nil
}

func (p *Parser) GetRows() []parsers.CsvRow {
	csvRows := make([]parsers.CsvRow, len(p.Rows))
	for i, v := range p.Rows {
		csvRows[i] = v
	}
	return csvRows
}

func (p *Parser) GetHeaders() []string {
	cur := strings.ToLower(p.Currency)
	if cur == "" {
		cur = strings.ToLower(core.DefaultCurrencies.Reporting)
	}
	return []string{
		"time",
		"refid",
		"txid",
		"event_type",
		"asset",
		"units_in",
		"units_out",
		fmt.Sprintf("proceeds_%s", cur),
		fmt.Sprintf("acb_disposed_%s", cur),
		fmt.Sprintf("gain_%s", cur),
		fmt.Sprintf("income_%s", cur),
		fmt.Sprintf("acb_added_%s", cur),
		"pool_units_after",
		fmt.Sprintf("pool_acb_%s_after", cur),
		"notes",
	}
}
