package ledger

import (
	"fmt"
	"sort"
	"time"
)

// TradeGroup is the pair of legs that make up one spot trade.
type TradeGroup struct {
	RefID string
	Time  time.Time
	// TxID is the txid of the first leg after ordering by (txid, asset).
	TxID string
	Legs [2]Entry
}

// GroupTrades collects spot-trade legs by refid, skipping entries dated after taxYear.
// Every group must hold exactly two legs sharing a timestamp.
func GroupTrades(entries []Entry, taxYear int) (map[string]TradeGroup, error) {
	byRef := make(map[string][]Entry)
	for _, e := range entries {
		if e.Time.Year() > taxYear || e.Kind != SpotTrade {
			continue
		}
		byRef[e.RefID] = append(byRef[e.RefID], e)
	}

	refIDs := make([]string, 0, len(byRef))
	for refID := range byRef {
		refIDs = append(refIDs, refID)
	}
	sort.Strings(refIDs)

	groups := make(map[string]TradeGroup, len(byRef))
	for _, refID := range refIDs {
		legs := byRef[refID]
		sort.SliceStable(legs, func(i, j int) bool {
			if legs[i].TxID != legs[j].TxID {
				return legs[i].TxID < legs[j].TxID
			}
			return legs[i].Asset < legs[j].Asset
		})

		if len(legs) != 2 {
			return nil, &StructuralError{RefID: refID, Reason: fmt.Sprintf("expected 2 rows, got %d", len(legs))}
		}
		if !legs[0].Time.Equal(legs[1].Time) {
			return nil, &StructuralError{RefID: refID, Reason: "has mismatched times"}
		}

		groups[refID] = TradeGroup{
			RefID: refID,
			Time:  legs[0].Time,
			TxID:  legs[0].TxID,
			Legs:  [2]Entry{legs[0], legs[1]},
		}
	}
	return groups, nil
}

// Split returns the outflow leg (negative net delta) and the inflow leg (positive net delta).
func (g TradeGroup) Split() (out Entry, in Entry, err error) {
	a, b := g.Legs[0], g.Legs[1]
	if a.NetDelta.IsZero() || b.NetDelta.IsZero() {
		return Entry{}, Entry{}, &StructuralError{RefID: g.RefID, Reason: "has zero net leg"}
	}
	switch {
	case a.NetDelta.IsNegative() && b.NetDelta.IsPositive():
		out, in = a, b
	case b.NetDelta.IsNegative() && a.NetDelta.IsPositive():
		out, in = b, a
	default:
		return Entry{}, Entry{}, &StructuralError{RefID: g.RefID, Reason: "not reducible to one outflow and one inflow"}
	}
	return out, in, nil
}
