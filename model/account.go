package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType carries the interest plan configuration for a class of
// accounts. InterestCalculationPerYear is how many times per year interest
// is calculated; it must be positive and divide 12 evenly.
type AccountType struct {
	ID                         int    `json:"id"`
	Name                       string `json:"name"`
	InterestCalculationPerYear int    `json:"interest_calculation_per_year"`
}

// Account is the ledger record for one bank account. Balance and the two
// interest schedule dates are mutated only by the ledger service.
// InitialDepositDate and InterestStartDate stay nil until the account's
// first ever deposit and are never recomputed afterwards.
type Account struct {
	ID                 int             `json:"id"`
	AccountNumber      int64           `json:"account_number"`
	Name               string          `json:"name"`
	Email              string          `json:"email"`
	AccountType        AccountType     `json:"account_type"`
	Balance            decimal.Decimal `json:"balance"`
	InitialDepositDate *time.Time      `json:"initial_deposit_date"`
	InterestStartDate  *time.Time      `json:"interest_start_date"`
	CreatedAt          time.Time       `json:"created_at"`
}
