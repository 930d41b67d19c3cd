package core

// Currencies names the fiat the report is denominated in and the second fiat seen on the ledger.
type Currencies struct {
	Reporting string
	Secondary string
}

var DefaultCurrencies = Currencies{Reporting: "CAD", Secondary: "USD"}

func (c Currencies) IsFiatPair(a, b string) bool {
	return (a == c.Secondary && b == c.Reporting) || (a == c.Reporting && b == c.Secondary)
}
