package ledger

import "fmt"

// StructuralError reports a trade group that cannot be interpreted as a spot trade.
type StructuralError struct {
	RefID  string
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("trade refid %s %s", e.RefID, e.Reason)
}
