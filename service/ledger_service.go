package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"go-bank-ledger/logger"
	"go-bank-ledger/model"
	"go-bank-ledger/notifier"
	"go-bank-ledger/repository"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrInvalidInterestPlan = errors.New("account type has an invalid interest calculation frequency")
)

// LedgerService applies deposits and withdrawals to an account and records
// each posting in the transaction log. Balance mutation and log append run
// inside one database transaction with the account row locked, so concurrent
// postings against the same account cannot lose updates.
type LedgerService struct {
	db              *sql.DB
	accountRepo     repository.IAccountRepository
	transactionRepo repository.ITransactionRepository
	notifier        notifier.Notifier
	cache           ICacheClient
}

func NewLedgerService(db *sql.DB, accountRepo repository.IAccountRepository, transactionRepo repository.ITransactionRepository, n notifier.Notifier, cache ICacheClient) *LedgerService {
	return &LedgerService{
		db:              db,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		notifier:        n,
		cache:           cache,
	}
}

// interestStartDate computes when interest accrual begins for an account
// whose first deposit lands at t. The offset is 12/perYear calendar months,
// so a quarterly plan starts three months out and a monthly plan one month
// out, regardless of how many days those months contain.
func interestStartDate(t time.Time, perYear int) (time.Time, error) {
	if perYear <= 0 || 12%perYear != 0 {
		return time.Time{}, ErrInvalidInterestPlan
	}
	return t.AddDate(0, 12/perYear, 0), nil
}

// Deposit credits amount to the account. The account's first ever deposit
// additionally initializes the interest schedule.
func (s *LedgerService) Deposit(ctx context.Context, accountID int, amount decimal.Decimal) (*model.Transaction, error) {
	return s.post(ctx, accountID, amount, model.TransactionDeposit)
}

// Withdraw debits amount from the account. Withdrawals that would overdraw
// the balance fail with ErrInsufficientFunds before any state changes.
func (s *LedgerService) Withdraw(ctx context.Context, accountID int, amount decimal.Decimal) (*model.Transaction, error) {
	return s.post(ctx, accountID, amount, model.TransactionWithdrawal)
}

func (s *LedgerService) post(ctx context.Context, accountID int, amount decimal.Decimal, kind model.TransactionType) (*model.Transaction, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id":       accountID,
		"amount":           amount,
		"transaction_type": kind.String(),
	})
	log.Info("Starting posting process")

	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	account, err := s.accountRepo.GetAccountForUpdate(tx, accountID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	switch kind {
	case model.TransactionDeposit:
		account.Balance = account.Balance.Add(amount)

		if account.InitialDepositDate == nil {
			now := time.Now()
			startDate, err := interestStartDate(now, account.AccountType.InterestCalculationPerYear)
			if err != nil {
				return nil, err
			}
			account.InitialDepositDate = &now
			account.InterestStartDate = &startDate

			err = s.accountRepo.RecordFirstDeposit(tx, account.ID, account.Balance, now, startDate)
			if err != nil {
				return nil, fmt.Errorf("could not record first deposit: %w", err)
			}
		} else {
			if err := s.accountRepo.UpdateBalance(tx, account.ID, account.Balance); err != nil {
				return nil, fmt.Errorf("could not update balance: %w", err)
			}
		}

	case model.TransactionWithdrawal:
		if account.Balance.LessThan(amount) {
			return nil, ErrInsufficientFunds
		}
		account.Balance = account.Balance.Sub(amount)

		if err := s.accountRepo.UpdateBalance(tx, account.ID, account.Balance); err != nil {
			return nil, fmt.Errorf("could not update balance: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported transaction type: %d", kind)
	}

	transaction := &model.Transaction{
		AccountID:               account.ID,
		Amount:                  amount,
		BalanceAfterTransaction: account.Balance,
		TransactionType:         kind,
	}

	if err := s.transactionRepo.CreateTransaction(tx, transaction); err != nil {
		return nil, fmt.Errorf("could not create transaction record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}

	// The posting is committed at this point. Notification and cache
	// invalidation failures are logged and do not fail the operation.
	if err := s.notifier.NotifyPosting(account, kind, amount); err != nil {
		log.WithError(err).Error("Failed to send posting notification")
	}
	if s.cache != nil {
		s.cache.Del(ctx, reportCacheKey(account.ID))
	}

	log.Info("Posting completed successfully")
	return transaction, nil
}
