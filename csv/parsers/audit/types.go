package audit

var ParserKey = "audit"

type Parser struct {
	Currency string
	Rows     []Row
}

type Row struct {
	Time           string
	RefID          string
	TxID           string
	EventType      string
	Asset          string
	UnitsIn        string
	UnitsOut       string
	Proceeds       string
	BasisDisposed  string
	Gain           string
	Income         string
	BasisAdded     string
	PoolUnitsAfter string
	PoolBasisAfter string
	Notes          string
}
