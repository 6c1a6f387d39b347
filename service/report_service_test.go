// service/report_service_test.go
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"go-bank-ledger/model"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// fakeCache is an in-memory ICacheClient.
type fakeCache struct {
	store map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string]string{}}
}

func (c *fakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if v, ok := c.store[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		c.store[key] = string(v)
	case string:
		c.store[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(c.store, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func reportFixture(accountID int) []*model.Transaction {
	base := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	return []*model.Transaction{
		{ID: 1, AccountID: accountID, Amount: decimal.RequireFromString("50.00"), BalanceAfterTransaction: decimal.RequireFromString("50.00"), TransactionType: model.TransactionDeposit, Timestamp: base},
		{ID: 2, AccountID: accountID, Amount: decimal.RequireFromString("30.00"), BalanceAfterTransaction: decimal.RequireFromString("20.00"), TransactionType: model.TransactionWithdrawal, Timestamp: base.Add(time.Hour)},
	}
}

func TestReportService_Report(t *testing.T) {
	ctx := context.Background()
	account := freshAccount("20.00", 4)

	t.Run("no date range returns all transactions for the account", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		mockTxnRepo := new(MockTransactionRepository)
		reportService := NewReportService(mockAccountRepo, mockTxnRepo, nil)

		expected := reportFixture(1)
		mockAccountRepo.On("GetAccountByID", 1).Return(account, nil).Once()
		mockTxnRepo.On("ListByAccount", 1, (*time.Time)(nil), (*time.Time)(nil)).Return(expected, nil).Once()

		transactions, err := reportService.Report(ctx, 1, nil)

		assert.NoError(t, err)
		assert.Equal(t, expected, transactions)
		// Ascending timestamp order is part of the contract.
		for i := 1; i < len(transactions); i++ {
			assert.True(t, transactions[i-1].Timestamp.Before(transactions[i].Timestamp))
		}
		mockTxnRepo.AssertExpectations(t)
	})

	t.Run("date range is passed to the repository inclusively", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		mockTxnRepo := new(MockTransactionRepository)
		reportService := NewReportService(mockAccountRepo, mockTxnRepo, nil)

		start := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, time.May, 31, 0, 0, 0, 0, time.UTC)

		mockAccountRepo.On("GetAccountByID", 1).Return(account, nil).Once()
		mockTxnRepo.On("ListByAccount", 1, &start, &end).Return(reportFixture(1), nil).Once()

		_, err := reportService.Report(ctx, 1, &model.DateRange{Start: start, End: end})

		assert.NoError(t, err)
		mockTxnRepo.AssertExpectations(t)
	})

	t.Run("inverted range yields an empty report, not an error", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		mockTxnRepo := new(MockTransactionRepository)
		reportService := NewReportService(mockAccountRepo, mockTxnRepo, nil)

		start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

		mockAccountRepo.On("GetAccountByID", 1).Return(account, nil).Once()
		mockTxnRepo.On("ListByAccount", 1, &start, &end).Return([]*model.Transaction{}, nil).Once()

		transactions, err := reportService.Report(ctx, 1, &model.DateRange{Start: start, End: end})

		assert.NoError(t, err)
		assert.Empty(t, transactions)
	})

	t.Run("unknown account", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		reportService := NewReportService(mockAccountRepo, new(MockTransactionRepository), nil)

		mockAccountRepo.On("GetAccountByID", 99).Return(nil, sql.ErrNoRows).Once()

		_, err := reportService.Report(ctx, 99, nil)

		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("unfiltered reports are served from the cache on repeat", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		mockTxnRepo := new(MockTransactionRepository)
		cache := newFakeCache()
		reportService := NewReportService(mockAccountRepo, mockTxnRepo, cache)

		expected := reportFixture(1)
		mockAccountRepo.On("GetAccountByID", 1).Return(account, nil).Twice()
		// The repository must be hit exactly once; the second call is a
		// cache hit.
		mockTxnRepo.On("ListByAccount", 1, (*time.Time)(nil), (*time.Time)(nil)).Return(expected, nil).Once()

		first, err := reportService.Report(ctx, 1, nil)
		assert.NoError(t, err)

		second, err := reportService.Report(ctx, 1, nil)
		assert.NoError(t, err)

		firstJSON, _ := json.Marshal(first)
		secondJSON, _ := json.Marshal(second)
		assert.JSONEq(t, string(firstJSON), string(secondJSON))
		mockTxnRepo.AssertExpectations(t)
		mockTxnRepo.AssertNumberOfCalls(t, "ListByAccount", 1)
	})

	t.Run("date-windowed reports bypass the cache", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		mockTxnRepo := new(MockTransactionRepository)
		cache := newFakeCache()
		reportService := NewReportService(mockAccountRepo, mockTxnRepo, cache)

		start := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, time.May, 31, 0, 0, 0, 0, time.UTC)

		mockAccountRepo.On("GetAccountByID", 1).Return(account, nil).Once()
		mockTxnRepo.On("ListByAccount", 1, &start, &end).Return(reportFixture(1), nil).Once()

		_, err := reportService.Report(ctx, 1, &model.DateRange{Start: start, End: end})

		assert.NoError(t, err)
		assert.Empty(t, cache.store)
		mockTxnRepo.AssertExpectations(t)
	})
}
