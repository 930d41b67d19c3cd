package core

import (
	"fmt"

	"github.com/DefiantLabs/acb-tax-cli/ledger"
	"github.com/shopspring/decimal"
)

// ValidationError is returned when an entry breaks the sign rules of its category.
type ValidationError struct {
	Kind   ledger.Kind
	RefID  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s at refid %s", e.Kind, e.Reason, e.RefID)
}

// MissingValuationError means neither a fiat identity nor a learned price could value the asset.
type MissingValuationError struct {
	Asset   string
	Context string
}

func (e *MissingValuationError) Error() string {
	return fmt.Sprintf("missing valuation price for %s in %s", e.Asset, e.Context)
}

type InsufficientHoldingsError struct {
	Context   string
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientHoldingsError) Error() string {
	return fmt.Sprintf("insufficient units in %s: remove=%s, pool=%s", e.Context, e.Requested, e.Available)
}
