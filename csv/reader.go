package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/DefiantLabs/acb-tax-cli/config"
	"github.com/DefiantLabs/acb-tax-cli/ledger"
	"github.com/shopspring/decimal"
)

var requiredColumns = []string{"txid", "refid", "time", "type", "asset", "amount", "fee"}

// RowError locates an ingestion failure. Line counts the header as line 1.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("ledger line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// ReadLedgerFile loads and sorts every entry of a ledger export on disk.
func ReadLedgerFile(path string) ([]ledger.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("CSV not found: %s", path)
		}
		return nil, err
	}
	defer f.Close()

	return ReadLedger(f)
}

// ReadLedger parses a ledger export addressed by header name. Unknown columns are ignored and
// records may differ in length. The result is sorted by time, refid, txid and asset.
func ReadLedger(r io.Reader) ([]ledger.Entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("ledger is empty")
		}
		return nil, err
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("ledger is missing required column %q", name)
		}
	}

	var entries []ledger.Entry
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, &RowError{Line: line, Err: err}
		}

		field := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		entry, err := parseRecord(field)
		if err != nil {
			return nil, &RowError{Line: line, Err: err}
		}
		entries = append(entries, entry)
	}

	ledger.SortEntries(entries)
	config.Log.Infof("Read %d ledger entries", len(entries))
	return entries, nil
}

func parseRecord(field func(string) string) (ledger.Entry, error) {
	when, err := ledger.ParseTime(field("time"))
	if err != nil {
		return ledger.Entry{}, err
	}
	amount, err := decimal.NewFromString(field("amount"))
	if err != nil {
		return ledger.Entry{}, fmt.Errorf("invalid amount %q: %w", field("amount"), err)
	}
	fee, err := decimal.NewFromString(field("fee"))
	if err != nil {
		return ledger.Entry{}, fmt.Errorf("invalid fee %q: %w", field("fee"), err)
	}

	return ledger.NewEntry(field("txid"), field("refid"), when, field("type"), field("subtype"), field("asset"), amount, fee), nil
}
