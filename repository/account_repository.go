package repository

import (
	"database/sql"
	"go-bank-ledger/logger"
	"go-bank-ledger/model"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// IAccountRepository defines the contract for account ledger operations.
// Balance and interest schedule writes always happen inside a caller-owned
// *sql.Tx so they commit atomically with the matching transaction row.
type IAccountRepository interface {
	GetAccountByID(accountID int) (*model.Account, error)
	GetAccountForUpdate(tx *sql.Tx, accountID int) (*model.Account, error)
	UpdateBalance(tx *sql.Tx, accountID int, balance decimal.Decimal) error
	RecordFirstDeposit(tx *sql.Tx, accountID int, balance decimal.Decimal, initialDepositDate, interestStartDate time.Time) error
}

// AccountRepository implements IAccountRepository over Postgres.
type AccountRepository struct {
	DB *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{DB: db}
}

const accountColumns = `
	a.id, a.account_number, a.name, a.email, a.balance,
	a.initial_deposit_date, a.interest_start_date, a.created_at,
	t.id, t.name, t.interest_calculation_per_year`

func scanAccount(row *sql.Row) (*model.Account, error) {
	account := &model.Account{}
	err := row.Scan(
		&account.ID, &account.AccountNumber, &account.Name, &account.Email, &account.Balance,
		&account.InitialDepositDate, &account.InterestStartDate, &account.CreatedAt,
		&account.AccountType.ID, &account.AccountType.Name, &account.AccountType.InterestCalculationPerYear,
	)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// GetAccountByID retrieves one account together with its account type.
func (r *AccountRepository) GetAccountByID(accountID int) (*model.Account, error) {
	log := logger.Log.WithField("account_id", accountID)
	log.Info("Executing query to get account by ID")

	query := `
		SELECT` + accountColumns + `
		FROM accounts a
		JOIN account_types t ON t.id = a.account_type_id
		WHERE a.id = $1`

	account, err := scanAccount(r.DB.QueryRow(query, accountID))
	if err != nil {
		if err == sql.ErrNoRows {
			log.Info("Account not found")
		} else {
			log.WithError(err).Error("Failed to execute get account query")
		}
		return nil, err
	}
	return account, nil
}

// GetAccountForUpdate locks the account row for the duration of the caller's
// database transaction. Every balance mutation must go through this lock so
// concurrent postings against the same account serialize instead of racing.
func (r *AccountRepository) GetAccountForUpdate(tx *sql.Tx, accountID int) (*model.Account, error) {
	log := logger.Log.WithField("account_id", accountID)
	log.Info("Executing query to get account for update")

	query := `
		SELECT` + accountColumns + `
		FROM accounts a
		JOIN account_types t ON t.id = a.account_type_id
		WHERE a.id = $1
		FOR UPDATE OF a`

	account, err := scanAccount(tx.QueryRow(query, accountID))
	if err != nil {
		if err == sql.ErrNoRows {
			log.Info("Account not found for update")
		} else {
			log.WithError(err).Error("Failed to execute get account for update query")
		}
		return nil, err
	}
	return account, nil
}

// UpdateBalance persists a new balance and nothing else. Used by
// withdrawals and by deposits after the first one.
func (r *AccountRepository) UpdateBalance(tx *sql.Tx, accountID int, balance decimal.Decimal) error {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id":  accountID,
		"new_balance": balance,
	})
	log.Info("Executing query to update account balance")

	query := `UPDATE accounts SET balance = $1 WHERE id = $2`
	_, err := tx.Exec(query, balance, accountID)
	if err != nil {
		log.WithError(err).Error("Failed to execute update account balance query")
		return err
	}
	return nil
}

// RecordFirstDeposit persists the fields an account's first deposit changes:
// the new balance plus the two interest schedule dates.
func (r *AccountRepository) RecordFirstDeposit(tx *sql.Tx, accountID int, balance decimal.Decimal, initialDepositDate, interestStartDate time.Time) error {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id":          accountID,
		"new_balance":         balance,
		"interest_start_date": interestStartDate,
	})
	log.Info("Executing query to record first deposit")

	query := `
		UPDATE accounts
		SET balance = $1, initial_deposit_date = $2, interest_start_date = $3
		WHERE id = $4`
	_, err := tx.Exec(query, balance, initialDepositDate, interestStartDate, accountID)
	if err != nil {
		log.WithError(err).Error("Failed to execute record first deposit query")
		return err
	}
	return nil
}
