package ledger

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// time.Parse accepts a fractional second after the seconds field even though the layout omits it.
const timeLayout = "2006-01-02 15:04:05"

// Entry is a single normalized ledger line. Entries are values and are never
// mutated after NewEntry returns.
type Entry struct {
	TxID    string
	RefID   string
	Time    time.Time
	Type    string
	Subtype string
	Asset   string
	Amount  decimal.Decimal
	Fee     decimal.Decimal
	// NetDelta is the signed change to holdings, Amount - Fee.
	NetDelta decimal.Decimal
	Kind     Kind
}

// NewEntry canonicalizes the classification fields and resolves the event kind.
func NewEntry(txID, refID string, t time.Time, typ, subtype, asset string, amount, fee decimal.Decimal) Entry {
	typ = strings.ToLower(strings.TrimSpace(typ))
	subtype = strings.ToLower(strings.TrimSpace(subtype))

	return Entry{
		TxID:     txID,
		RefID:    refID,
		Time:     t.UTC(),
		Type:     typ,
		Subtype:  subtype,
		Asset:    strings.ToUpper(strings.TrimSpace(asset)),
		Amount:   amount,
		Fee:      fee,
		NetDelta: amount.Sub(fee),
		Kind:     Classify(typ, subtype),
	}
}

// ParseTime accepts "YYYY-MM-DD HH:MM:SS" with an optional fractional second. Values are UTC.
// Month, day, minute and second must be zero padded; the hour may be a single digit.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.ParseInLocation(timeLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("unsupported timestamp format: %s", s)
	}
	return t, nil
}

// SortEntries orders entries by time, refid, txid and asset.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.Time.Equal(b.Time) {
			return a.Time.Before(b.Time)
		}
		if a.RefID != b.RefID {
			return a.RefID < b.RefID
		}
		if a.TxID != b.TxID {
			return a.TxID < b.TxID
		}
		return a.Asset < b.Asset
	})
}
