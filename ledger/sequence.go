package ledger

import (
	"sort"
	"time"
)

// Event is one unit of chronological processing: a TradeEvent or an EntryEvent.
type Event interface {
	When() time.Time
	// rank orders trades before plain entries at the same timestamp.
	rank() int
	key() string
}

type TradeEvent struct {
	Group TradeGroup
}

func (e TradeEvent) When() time.Time { return e.Group.Time }
func (e TradeEvent) rank() int       { return 0 }
func (e TradeEvent) key() string     { return e.Group.RefID + ":" + e.Group.TxID }

type EntryEvent struct {
	Entry Entry
}

func (e EntryEvent) When() time.Time { return e.Entry.Time }
func (e EntryEvent) rank() int       { return 1 }
func (e EntryEvent) key() string {
	return e.Entry.RefID + ":" + e.Entry.TxID + ":" + e.Entry.Asset
}

// BuildEvents merges trade groups and the remaining entries into a single ordered timeline.
// Each trade refid is emitted once no matter how many of its legs are seen.
func BuildEvents(entries []Entry, groups map[string]TradeGroup, taxYear int) []Event {
	events := make([]Event, 0, len(entries))
	seen := make(map[string]struct{}, len(groups))

	for _, e := range entries {
		if e.Time.Year() > taxYear {
			continue
		}
		if e.Kind == SpotTrade {
			if _, ok := seen[e.RefID]; ok {
				continue
			}
			if g, ok := groups[e.RefID]; ok {
				seen[e.RefID] = struct{}{}
				events = append(events, TradeEvent{Group: g})
			}
			continue
		}
		events = append(events, EntryEvent{Entry: e})
	}

	SortEvents(events)
	return events
}

// SortEvents orders by timestamp, then trades before entries, then the composite key.
func SortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.When().Equal(b.When()) {
			return a.When().Before(b.When())
		}
		if a.rank() != b.rank() {
			return a.rank() < b.rank()
		}
		return a.key() < b.key()
	})
}

// Sequence groups trades and orders every event at or before the end of taxYear.
func Sequence(entries []Entry, taxYear int) ([]Event, error) {
	groups, err := GroupTrades(entries, taxYear)
	if err != nil {
		return nil, err
	}
	return BuildEvents(entries, groups, taxYear), nil
}
