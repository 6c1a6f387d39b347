// file: service/export.go

package service

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"go-bank-ledger/model"
	"io"
)

// Export renders the account's (optionally date-windowed) report as a CSV
// download.
func (s *ReportService) Export(ctx context.Context, accountID int, dateRange *model.DateRange, w io.Writer) error {
	account, err := s.accountRepo.GetAccountByID(accountID)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrAccountNotFound
		}
		return err
	}

	transactions, err := s.Report(ctx, accountID, dateRange)
	if err != nil {
		return err
	}

	return WriteReportCSV(w, account, transactions)
}

// reportHeader mirrors the columns of the downloadable report.
var reportHeader = []string{"Name", "Transaction Type", "Date", "Amount"}

// WriteReportCSV renders a report query result as CSV, one row per
// transaction beneath a header row.
func WriteReportCSV(w io.Writer, account *model.Account, transactions []*model.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(reportHeader); err != nil {
		return fmt.Errorf("could not write report header: %w", err)
	}

	for _, t := range transactions {
		record := []string{
			account.Name,
			t.TransactionType.String(),
			t.Timestamp.Format("2006-01-02"),
			t.Amount.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("could not write report row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
