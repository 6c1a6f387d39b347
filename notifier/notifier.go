// Package notifier delivers fire-and-forget emails for successful postings.
package notifier

import (
	"fmt"
	"go-bank-ledger/model"

	"github.com/shopspring/decimal"
	"gopkg.in/gomail.v2"
)

// Notifier is the outbound notification collaborator. Implementations must
// not mutate any account state; callers treat delivery failures as
// non-fatal.
type Notifier interface {
	NotifyPosting(account *model.Account, kind model.TransactionType, amount decimal.Decimal) error
}

// SMTPConfig carries everything the mail notifier needs, including the
// sender address, so nothing is read from process-wide state.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Sender   string
}

// SMTPNotifier sends posting notifications over SMTP.
type SMTPNotifier struct {
	dialer *gomail.Dialer
	sender string
}

func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		sender: cfg.Sender,
	}
}

// Subject lines are part of the external contract, typo included.
const (
	subjectDeposit    = "Amount Credited"
	subjectWithdrawal = "Amount Withdrawl"
)

func (n *SMTPNotifier) NotifyPosting(account *model.Account, kind model.TransactionType, amount decimal.Decimal) error {
	subject, body := postingMessage(account, kind, amount)

	m := gomail.NewMessage()
	m.SetHeader("From", n.sender)
	m.SetHeader("To", account.Email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("could not send posting notification: %w", err)
	}
	return nil
}

func postingMessage(account *model.Account, kind model.TransactionType, amount decimal.Decimal) (subject, body string) {
	switch kind {
	case model.TransactionWithdrawal:
		subject = subjectWithdrawal
		body = fmt.Sprintf("%s was withdrawn from your account %d successfully", amount.StringFixed(2), account.AccountNumber)
	default:
		subject = subjectDeposit
		body = fmt.Sprintf("%s was deposited to your account %d successfully", amount.StringFixed(2), account.AccountNumber)
	}
	return subject, body
}

// NoopNotifier discards every notification. Used where outbound mail is not
// configured, and in tests.
type NoopNotifier struct{}

func (NoopNotifier) NotifyPosting(*model.Account, model.TransactionType, decimal.Decimal) error {
	return nil
}
