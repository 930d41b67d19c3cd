package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkTime(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := ParseTime(s)
	require.NoError(t, err)
	return parsed
}

func mkEntry(t *testing.T, txID, refID, ts, typ, subtype, asset, amount, fee string) Entry {
	t.Helper()
	return NewEntry(txID, refID, mkTime(t, ts), typ, subtype, asset,
		decimal.RequireFromString(amount), decimal.RequireFromString(fee))
}

func TestParseTimeWithFraction(t *testing.T) {
	parsed, err := ParseTime("2025-03-04 05:06:07.123")
	require.NoError(t, err)
	assert.Equal(t, 123*int(time.Millisecond), parsed.Nanosecond())
	assert.Equal(t, time.UTC, parsed.Location())

	parsed, err = ParseTime("2025-03-04 05:06:07")
	require.NoError(t, err)
	assert.Equal(t, 7, parsed.Second())
}

func TestParseTimeRejectsOtherFormats(t *testing.T) {
	_, err := ParseTime("2025-03-04T05:06:07Z")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported timestamp format")
}

func TestParseTimePadding(t *testing.T) {
	parsed, err := ParseTime("2025-03-04 5:06:07")
	require.NoError(t, err)
	assert.Equal(t, 5, parsed.Hour())

	for _, s := range []string{"2025-3-04 05:06:07", "2025-03-4 05:06:07", "2025-03-04 05:6:07", "2025-03-04 05:06:7"} {
		_, err := ParseTime(s)
		assert.Error(t, err, s)
	}
}

func TestNewEntryNormalizes(t *testing.T) {
	e := mkEntry(t, "T1", "R1", "2025-01-01 00:00:00", " Withdrawal ", "", " sol ", "-1.0", "0.01")

	assert.Equal(t, "withdrawal", e.Type)
	assert.Equal(t, "SOL", e.Asset)
	assert.Equal(t, Withdrawal, e.Kind)
	assert.True(t, e.NetDelta.Equal(decimal.RequireFromString("-1.01")), e.NetDelta.String())
}

func TestClassify(t *testing.T) {
	assert.Equal(t, SpotTrade, Classify("trade", "tradespot"))
	assert.Equal(t, Ignored, Classify("trade", ""))
	assert.Equal(t, Reward, Classify("earn", "reward"))
	assert.Equal(t, Reallocation, Classify("earn", "autoallocation"))
	assert.Equal(t, Reallocation, Classify("earn", "allocation"))
	assert.Equal(t, Reallocation, Classify("earn", "deallocation"))
	assert.Equal(t, Ignored, Classify("earn", "migration"))
	assert.Equal(t, Deposit, Classify("deposit", ""))
	assert.Equal(t, Ignored, Classify("deposit", "spotfromfutures"))
	assert.Equal(t, Withdrawal, Classify("withdrawal", ""))
	assert.Equal(t, Ignored, Classify("transfer", "spottostaking"))
}

func TestGroupTradesRequiresTwoRows(t *testing.T) {
	entries := []Entry{
		mkEntry(t, "T1", "R1", "2025-01-01 00:00:00", "trade", "tradespot", "CAD", "-140", "0"),
	}

	_, err := GroupTrades(entries, 2025)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 2 rows")
	assert.Contains(t, err.Error(), "R1")
	assert.Contains(t, err.Error(), "got 1")

	var structural *StructuralError
	assert.True(t, errors.As(err, &structural))
}

func TestGroupTradesMismatchedTimes(t *testing.T) {
	entries := []Entry{
		mkEntry(t, "T1", "R1", "2025-01-01 00:00:00", "trade", "tradespot", "CAD", "-140", "0"),
		mkEntry(t, "T2", "R1", "2025-01-01 00:00:01", "trade", "tradespot", "SOL", "1", "0"),
	}

	_, err := GroupTrades(entries, 2025)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trade refid R1 has mismatched times")
}

func TestGroupTradesOrdersLegsAndSkipsLaterYears(t *testing.T) {
	entries := []Entry{
		mkEntry(t, "T2", "R1", "2025-01-01 00:00:00", "trade", "tradespot", "SOL", "1", "0"),
		mkEntry(t, "T1", "R1", "2025-01-01 00:00:00", "trade", "tradespot", "CAD", "-140", "0"),
		// a lone leg after the tax year is never validated
		mkEntry(t, "T3", "R2", "2026-01-01 00:00:00", "trade", "tradespot", "SOL", "1", "0"),
	}

	groups, err := GroupTrades(entries, 2025)
	require.NoError(t, err)
	require.Len(t, groups, 1)

	g := groups["R1"]
	assert.Equal(t, "T1", g.TxID)
	assert.Equal(t, "CAD", g.Legs[0].Asset)
	assert.Equal(t, "SOL", g.Legs[1].Asset)
}

func TestSplitLegs(t *testing.T) {
	cad := mkEntry(t, "T1", "R1", "2025-01-01 00:00:00", "trade", "tradespot", "CAD", "-140", "0")
	sol := mkEntry(t, "T2", "R1", "2025-01-01 00:00:00", "trade", "tradespot", "SOL", "1", "0")

	out, in, err := TradeGroup{RefID: "R1", Legs: [2]Entry{sol, cad}}.Split()
	require.NoError(t, err)
	assert.Equal(t, "CAD", out.Asset)
	assert.Equal(t, "SOL", in.Asset)

	sameSign := mkEntry(t, "T3", "R1", "2025-01-01 00:00:00", "trade", "tradespot", "BTC", "1", "0")
	_, _, err = TradeGroup{RefID: "R1", Legs: [2]Entry{sol, sameSign}}.Split()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not reducible to one outflow and one inflow")

	zero := mkEntry(t, "T4", "R1", "2025-01-01 00:00:00", "trade", "tradespot", "BTC", "0.5", "0.5")
	_, _, err = TradeGroup{RefID: "R1", Legs: [2]Entry{cad, zero}}.Split()
	require.Error(t, err)
	assert.Equal(t, "trade refid R1 has zero net leg", err.Error())
}

func TestBuildEventsOrdering(t *testing.T) {
	entries := []Entry{
		mkEntry(t, "T9", "R9", "2025-01-01 00:00:00", "deposit", "", "BTC", "1", "0"),
		mkEntry(t, "T1", "R2", "2025-01-01 00:00:00", "trade", "tradespot", "CAD", "-140", "0"),
		mkEntry(t, "T2", "R2", "2025-01-01 00:00:00", "trade", "tradespot", "SOL", "1", "0"),
		mkEntry(t, "T0", "R0", "2024-06-01 00:00:00", "earn", "reward", "SOL", "0.1", "0"),
		mkEntry(t, "T5", "R5", "2026-01-01 00:00:00", "deposit", "", "BTC", "1", "0"),
	}
	SortEntries(entries)

	events, err := Sequence(entries, 2025)
	require.NoError(t, err)
	require.Len(t, events, 3)

	first, ok := events[0].(EntryEvent)
	require.True(t, ok)
	assert.Equal(t, "R0", first.Entry.RefID)

	trade, ok := events[1].(TradeEvent)
	require.True(t, ok)
	assert.Equal(t, "R2", trade.Group.RefID)

	deposit, ok := events[2].(EntryEvent)
	require.True(t, ok)
	assert.Equal(t, "R9", deposit.Entry.RefID)
}

func TestSortEventsTieBreaksOnKey(t *testing.T) {
	a := mkEntry(t, "T1", "RB", "2025-01-01 00:00:00", "deposit", "", "ETH", "1", "0")
	b := mkEntry(t, "T1", "RA", "2025-01-01 00:00:00", "deposit", "", "ETH", "1", "0")
	c := mkEntry(t, "T1", "RA", "2025-01-01 00:00:00", "deposit", "", "BTC", "1", "0")

	events := []Event{EntryEvent{Entry: a}, EntryEvent{Entry: b}, EntryEvent{Entry: c}}
	SortEvents(events)

	assert.Equal(t, "BTC", events[0].(EntryEvent).Entry.Asset)
	assert.Equal(t, "RA", events[1].(EntryEvent).Entry.RefID)
	assert.Equal(t, "RB", events[2].(EntryEvent).Entry.RefID)
}
