package renderer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownSummary lays the summary out as markdown tables.
func MarkdownSummary(s Summary) string {
	cur := s.ReportingCurrency
	var b strings.Builder

	fmt.Fprintf(&b, "# Tax summary %d (%s, average cost)\n\n", s.TaxYear, cur)
	fmt.Fprintf(&b, "Fallback %s/%s rate: `%s`\n\n", s.SecondaryCurrency, cur, s.FallbackRate)

	b.WriteString("| Figure | Amount |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Total proceeds | %s |\n", DisplayMoney(s.totals.Proceeds, cur))
	fmt.Fprintf(&b, "| Total ACB disposed | %s |\n", DisplayMoney(s.totals.BasisDisposed, cur))
	fmt.Fprintf(&b, "| Net capital gain/loss | %s |\n", DisplayMoney(s.totals.CapitalGain, cur))
	fmt.Fprintf(&b, "| Reward income | %s |\n", DisplayMoney(s.totals.RewardIncome, cur))
	fmt.Fprintf(&b, "| Zero-basis deposits | %d |\n\n", s.WarningCount)

	b.WriteString("## Ending pools\n\n")
	if len(s.Pools) == 0 {
		b.WriteString("_No holdings._\n")
		return b.String()
	}
	b.WriteString("| Asset | Units | ACB | Average cost |\n|---|---:|---:|---:|\n")
	for _, p := range s.Pools {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", p.Asset, p.Units, DisplayMoney(p.basis, cur), DisplayMoney(p.averageCost, cur))
	}
	return b.String()
}

// RenderPretty styles the markdown summary for a terminal.
func RenderPretty(s Summary) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return r.Render(MarkdownSummary(s))
}
