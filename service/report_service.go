// file: service/report_service.go

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"go-bank-ledger/logger"
	"go-bank-ledger/model"
	"go-bank-ledger/repository"
	"time"
)

// ReportService produces the ordered transaction history for one account.
// Unfiltered reports use a cache-aside strategy; date-windowed ones always
// hit the database since every window would need its own cache slot.
type ReportService struct {
	accountRepo     repository.IAccountRepository
	transactionRepo repository.ITransactionRepository
	cache           ICacheClient
}

func NewReportService(accountRepo repository.IAccountRepository, transactionRepo repository.ITransactionRepository, cache ICacheClient) *ReportService {
	return &ReportService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		cache:           cache,
	}
}

// Report returns the account's transactions ordered by timestamp ascending,
// restricted to the inclusive date window when one is supplied. A window
// whose start lies after its end matches nothing and yields an empty report.
func (s *ReportService) Report(ctx context.Context, accountID int, dateRange *model.DateRange) ([]*model.Transaction, error) {
	log := logger.Log.WithField("account_id", accountID)

	if _, err := s.accountRepo.GetAccountByID(accountID); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	if dateRange != nil {
		from, to := dateRange.Start, dateRange.End
		return s.transactionRepo.ListByAccount(accountID, &from, &to)
	}

	cacheKey := reportCacheKey(accountID)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var transactions []*model.Transaction
			if err := json.Unmarshal([]byte(cached), &transactions); err == nil {
				return transactions, nil
			}
		}
	}

	transactions, err := s.transactionRepo.ListByAccount(accountID, nil, nil)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(transactions); err == nil {
			s.cache.Set(ctx, cacheKey, data, 10*time.Minute)
		} else {
			log.WithError(err).Warn("Failed to cache report")
		}
	}

	return transactions, nil
}
