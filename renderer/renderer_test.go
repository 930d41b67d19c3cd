package renderer

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/DefiantLabs/acb-tax-cli/core"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkResult() *core.Result {
	pools := make(core.Pools)
	pools.Acquire("SOL", decimal.RequireFromString("0.4"), decimal.RequireFromString("56"))
	pools.Acquire("CAD", decimal.RequireFromString("100"), decimal.Zero)

	return &core.Result{
		Settings: core.Settings{
			TaxYear:      2025,
			FallbackRate: decimal.RequireFromString("1.3978"),
			Currencies:   core.DefaultCurrencies,
		},
		Totals: core.Totals{
			BasisDisposed: decimal.RequireFromString("14"),
			CapitalGain:   decimal.RequireFromString("-14"),
			RewardIncome:  decimal.RequireFromString("1234.5"),
			WarningCount:  1,
		},
		Pools: pools,
	}
}

func TestPlainSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PlainSummary(&buf, NewSummary(mkResult())))

	out := buf.String()
	assert.Contains(t, out, "=== CANADIAN CRYPTO TAX SUMMARY (LEDGER / ACB) ===")
	assert.Contains(t, out, "Fallback USD/CAD FX: 1.3978")
	assert.Contains(t, out, "Net capital gain/loss (CAD): -14.00")
	assert.Contains(t, out, "Warnings (transfer-in assumed 0 ACB): 1")
	assert.Contains(t, out, "SOL: units=0.40000000, ACB(CAD)=56.00, avg_cost(CAD/unit)=140.00")
	assert.NotContains(t, out, "CAD: units=")
}

func TestDisplayMoney(t *testing.T) {
	assert.Equal(t, "$1,234.50", DisplayMoney(decimal.RequireFromString("1234.5"), "CAD"))
	assert.Equal(t, "$0.13", DisplayMoney(decimal.RequireFromString("0.125"), "CAD"))
	assert.Equal(t, "12.00 XYZ", DisplayMoney(decimal.RequireFromString("12"), "XYZ"))
}

func TestMarkdownSummary(t *testing.T) {
	md := MarkdownSummary(NewSummary(mkResult()))

	assert.Contains(t, md, "# Tax summary 2025 (CAD, average cost)")
	assert.Contains(t, md, "| Reward income | $1,234.50 |")
	assert.Contains(t, md, "| SOL | 0.40000000 | $56.00 | $140.00 |")
}

func TestSummaryJSON(t *testing.T) {
	raw, err := json.Marshal(NewSummary(mkResult()))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "-14.00", decoded["capitalGain"])
	assert.Len(t, decoded["pools"], 1)
}
