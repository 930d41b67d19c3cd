package csv

import (
	"fmt"

	"github.com/DefiantLabs/acb-tax-cli/config"
	"github.com/DefiantLabs/acb-tax-cli/core"
	"github.com/DefiantLabs/acb-tax-cli/csv/parsers"
	"github.com/DefiantLabs/acb-tax-cli/csv/parsers/audit"
	"github.com/DefiantLabs/acb-tax-cli/csv/parsers/dispositions"
)

// Register new parsers by adding them to this list
var supportedParsers = []string{audit.ParserKey, dispositions.ParserKey}

func init() {
	parsers.RegisterParsers(supportedParsers)
}

func GetParser(parserKey string) parsers.Parser {
	switch parserKey {
	case audit.ParserKey:
		parser := audit.Parser{}
		return &parser
	case dispositions.ParserKey:
		parser := dispositions.Parser{}
		return &parser
	}
	return nil
}

// ParseReport renders result in the requested format, returning rows and headers.
func ParseReport(result *core.Result, parserKey string) ([]parsers.CsvRow, []string, error) {
	parser := GetParser(parserKey)
	if parser == nil {
		return nil, nil, fmt.Errorf("unsupported report format %q, valid formats are %v", parserKey, parsers.GetParserKeys())
	}

	err := parser.ProcessReport(result)
	if err != nil {
		config.Log.Error("Error processing report.", err)
		return nil, nil, err
	}

	return parser.GetRows(), parser.GetHeaders(), nil
}
