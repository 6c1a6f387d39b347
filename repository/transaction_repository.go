package repository

import (
	"database/sql"
	"go-bank-ledger/logger"
	"go-bank-ledger/model"
	"time"

	"github.com/sirupsen/logrus"
)

// ITransactionRepository defines the contract for the append-only
// transaction log.
type ITransactionRepository interface {
	CreateTransaction(tx *sql.Tx, transaction *model.Transaction) error
	ListByAccount(accountID int, from, to *time.Time) ([]*model.Transaction, error)
}

// TransactionRepository implements ITransactionRepository.
type TransactionRepository struct {
	DB *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{DB: db}
}

// CreateTransaction appends one ledger entry inside the caller's database
// transaction, so it commits atomically with the account balance update.
func (r *TransactionRepository) CreateTransaction(tx *sql.Tx, transaction *model.Transaction) error {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id":       transaction.AccountID,
		"amount":           transaction.Amount,
		"transaction_type": transaction.TransactionType.String(),
	})
	log.Info("Executing query to create a new transaction")

	query := `
		INSERT INTO transactions (account_id, amount, balance_after_transaction, transaction_type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, timestamp`
	err := tx.QueryRow(query,
		transaction.AccountID,
		transaction.Amount,
		transaction.BalanceAfterTransaction,
		transaction.TransactionType,
	).Scan(&transaction.ID, &transaction.Timestamp)
	if err != nil {
		log.WithError(err).Error("Failed to execute create transaction query")
		return err
	}
	return nil
}

// ListByAccount retrieves the transaction history for one account, oldest
// first. The account filter is mandatory; the date window is optional and
// inclusive on both ends, comparing calendar dates rather than instants.
func (r *TransactionRepository) ListByAccount(accountID int, from, to *time.Time) ([]*model.Transaction, error) {
	log := logger.Log.WithField("account_id", accountID)
	log.Info("Executing query to list transactions by account")

	query := `
		SELECT DISTINCT id, account_id, amount, balance_after_transaction, transaction_type, timestamp
		FROM transactions
		WHERE account_id = $1`
	args := []interface{}{accountID}

	if from != nil && to != nil {
		query += ` AND timestamp::date BETWEEN $2 AND $3`
		args = append(args, *from, *to)
	}
	query += ` ORDER BY timestamp ASC`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for transactions by account")
		return nil, err
	}
	defer rows.Close()

	var transactions []*model.Transaction
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.AccountID, &t.Amount, &t.BalanceAfterTransaction, &t.TransactionType, &t.Timestamp); err != nil {
			log.WithError(err).Error("Failed to scan transaction row")
			return nil, err
		}
		transactions = append(transactions, &t)
	}

	return transactions, rows.Err()
}
