// file: model/request.go

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRequest defines the payload for a deposit or withdrawal.
// The target account is never part of the payload; it is resolved from the
// authenticated caller, which rules out cross-account writes by construction.
type TransactionRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

// DateRange is an optional, inclusive report window over transaction dates.
// A range with Start after End simply matches nothing.
type DateRange struct {
	Start time.Time
	End   time.Time
}
