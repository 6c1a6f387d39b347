// notifier/notifier_test.go
package notifier

import (
	"go-bank-ledger/model"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPostingMessage(t *testing.T) {
	account := &model.Account{AccountNumber: 1000001, Email: "jordan@example.com"}
	amount := decimal.RequireFromString("50.00")

	subject, body := postingMessage(account, model.TransactionDeposit, amount)
	assert.Equal(t, "Amount Credited", subject)
	assert.Contains(t, body, "50.00")
	assert.Contains(t, body, "1000001")

	subject, body = postingMessage(account, model.TransactionWithdrawal, amount)
	// The withdrawal subject line is a historical artifact, typo and all.
	assert.Equal(t, "Amount Withdrawl", subject)
	assert.Contains(t, body, "50.00")
	assert.Contains(t, body, "1000001")
}
