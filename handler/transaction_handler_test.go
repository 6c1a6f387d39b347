// handler/transaction_handler_test.go
package handler

import (
	"go-bank-ledger/logger"
	"go-bank-ledger/service"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestDateRangeFromQuery(t *testing.T) {
	t.Run("valid range", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/transactions/report?start_date=2024-05-01&end_date=2024-05-31", nil)

		dateRange := dateRangeFromQuery(req)

		assert.NotNil(t, dateRange)
		assert.Equal(t, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), dateRange.Start)
		assert.Equal(t, time.Date(2024, time.May, 31, 0, 0, 0, 0, time.UTC), dateRange.End)
	})

	t.Run("missing parameters mean no filter", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/transactions/report", nil)
		assert.Nil(t, dateRangeFromQuery(req))
	})

	t.Run("unparseable values mean no filter", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/transactions/report?start_date=01/05/2024&end_date=2024-05-31", nil)
		assert.Nil(t, dateRangeFromQuery(req))
	})

	t.Run("one missing bound means no filter", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/transactions/report?start_date=2024-05-01", nil)
		assert.Nil(t, dateRangeFromQuery(req))
	})
}

func TestMapLedgerError(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{service.ErrAccountNotFound, http.StatusNotFound},
		{service.ErrInvalidAmount, http.StatusBadRequest},
		{service.ErrInsufficientFunds, http.StatusBadRequest},
		{service.ErrInvalidInterestPlan, http.StatusUnprocessableEntity},
		{assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		appErr := mapLedgerError(tc.err)
		assert.Equal(t, tc.code, appErr.Code)
	}
}
