package dispositions

var ParserKey = "dispositions"

const DateLayout = "2006-01-02"

// Parser lays out realized gains and losses one disposition per line, the way they are
// transcribed onto a capital gains schedule.
type Parser struct {
	Currency string
	Rows     []Row
}

type Row struct {
	Date          string
	Asset         string
	UnitsDisposed string
	Proceeds      string
	Basis         string
	Outlays       string
	Gain          string
}
