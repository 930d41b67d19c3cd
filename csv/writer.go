package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/DefiantLabs/acb-tax-cli/csv/parsers"
)

// ToCsv writes the headers and rows into a buffer.
func ToCsv(rows []parsers.CsvRow, headers []string) (bytes.Buffer, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)

	if err := w.Write(headers); err != nil {
		return b, fmt.Errorf("error writing header to csv: %w", err)
	}

	for _, row := range rows {
		if err := w.Write(row.GetRowForCsv()); err != nil {
			return b, fmt.Errorf("error writing record to csv: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return b, err
	}

	return b, nil
}

func WriteFile(path string, rows []parsers.CsvRow, headers []string) error {
	buf, err := ToCsv(rows, headers)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
