package dispositions

import (
	"fmt"
	"strings"

	"github.com/DefiantLabs/acb-tax-cli/core"
	"github.com/DefiantLabs/acb-tax-cli/csv/parsers"
)

func (p *Parser) ProcessReport(result *core.Result) error {
	p.Currency = result.Settings.Currencies.Reporting
	p.Rows = nil
	for _, reportRow := range result.Rows {
		if !reportRow.EventType.IsDisposition() {
			continue
		}
		row := Row{}
		if err := row.ParseReportRow(reportRow); err != nil {
			return err
		}
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
		"date",
		"asset",
		"units_disposed",
		fmt.Sprintf("proceeds_%s", cur),
		fmt.Sprintf("acb_%s", cur),
		fmt.Sprintf("outlays_%s", cur),
		fmt.Sprintf("gain_%s", cur),
	}
}
