package ledger

// Kind is the event category an entry is routed to.
type Kind int

const (
	Ignored Kind = iota
	SpotTrade
	Reward
	Reallocation
	Deposit
	Withdrawal
)

// SpotTradeSubtype is the subcategory of trade legs that form spot trades.
const SpotTradeSubtype = "tradespot"

var kindNames = map[Kind]string{
	Ignored:      "ignored",
	SpotTrade:    "spot trade",
	Reward:       "reward",
	Reallocation: "earn reallocation",
	Deposit:      "deposit",
	Withdrawal:   "withdrawal",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Classify maps an already lowercased (type, subtype) pair to its Kind.
func Classify(typ, subtype string) Kind {
	switch typ {
	case "trade":
		if subtype == SpotTradeSubtype {
			return SpotTrade
		}
	case "earn":
		switch subtype {
		case "reward":
			return Reward
		case "autoallocation", "allocation", "deallocation":
			return Reallocation
		}
	case "deposit":
		if subtype == "" {
			return Deposit
		}
	case "withdrawal":
		if subtype == "" {
			return Withdrawal
		}
	}
	return Ignored
}
