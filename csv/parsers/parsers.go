package parsers

import (
	"sort"

	"github.com/DefiantLabs/acb-tax-cli/core"
)

// Parser turns a computed report into CSV rows for one output format.
type Parser interface {
	ProcessReport(result *core.Result) error
	GetRows() []CsvRow
	GetHeaders() []string
}

var parserKeys = make(map[string]struct{})

func RegisterParsers(keys []string) {
	for _, key := range keys {
		parserKeys[key] = struct{}{}
	}
}

func GetParserKeys() []string {
	keys := make([]string, 0, len(parserKeys))
	for key := range parserKeys {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func IsParserKey(key string) bool {
	_, ok := parserKeys[key]
	return ok
}
