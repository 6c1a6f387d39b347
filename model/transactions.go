package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the closed set of posting kinds. The numeric codes are
// part of the stored schema, so new kinds may be appended but existing codes
// never change.
type TransactionType int

const (
	TransactionDeposit    TransactionType = 1
	TransactionWithdrawal TransactionType = 2
	TransactionInterest   TransactionType = 3
)

func (t TransactionType) String() string {
	switch t {
	case TransactionDeposit:
		return "Deposit"
	case TransactionWithdrawal:
		return "Withdrawal"
	case TransactionInterest:
		return "Interest"
	default:
		return "Unknown"
	}
}

// Transaction is one append-only ledger entry. Amount is the magnitude of
// the posting; the sign is implied by TransactionType.
// BalanceAfterTransaction snapshots the account balance immediately after
// this entry was applied, so replaying an account's entries in timestamp
// order reproduces every intermediate balance.
type Transaction struct {
	ID                      int             `json:"id"`
	AccountID               int             `json:"account_id"`
	Amount                  decimal.Decimal `json:"amount"`
	BalanceAfterTransaction decimal.Decimal `json:"balance_after_transaction"`
	TransactionType         TransactionType `json:"transaction_type"`
	Timestamp               time.Time       `json:"timestamp"`
}
