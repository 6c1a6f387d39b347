package handler

import (
	"bytes"
	"encoding/json"
	"go-bank-ledger/common"
	"go-bank-ledger/model"
	"go-bank-ledger/service"
	"net/http"
	"time"
)

// TransactionHandler holds dependencies for posting and report handlers.
type TransactionHandler struct {
	ledger *service.LedgerService
	report *service.ReportService
}

// NewTransactionHandler creates a new TransactionHandler with its dependencies.
func NewTransactionHandler(ledger *service.LedgerService, report *service.ReportService) *TransactionHandler {
	return &TransactionHandler{ledger: ledger, report: report}
}

func accountIDFromContext(r *http.Request) (int, *common.AppError) {
	accountID, ok := r.Context().Value(AccountIDKey).(int)
	if !ok {
		return 0, common.NewAppError(http.StatusUnauthorized, "Missing account identity", nil)
	}
	return accountID, nil
}

func mapLedgerError(err error) *common.AppError {
	switch err {
	case service.ErrAccountNotFound:
		return common.NewAppError(http.StatusNotFound, err.Error(), err)
	case service.ErrInvalidAmount, service.ErrInsufficientFunds:
		return common.NewAppError(http.StatusBadRequest, err.Error(), err)
	case service.ErrInvalidInterestPlan:
		return common.NewAppError(http.StatusUnprocessableEntity, err.Error(), err)
	default:
		return common.NewAppError(http.StatusInternalServerError, "Could not process posting", err)
	}
}

// Deposit godoc
// @Summary      Deposit money into the caller's account
// @Description  Credits the given amount to the authenticated caller's account and records the posting.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        posting body model.TransactionRequest true "Amount to deposit"
// @Success      201  {object}  model.Transaction
// @Failure      400  {object}  common.AppError "Missing or non-positive amount"
// @Failure      401  {object}  common.AppError "Missing account identity"
// @Failure      404  {object}  common.AppError "Account not found"
// @Failure      422  {object}  common.AppError "Account type has an invalid interest plan"
// @Failure      500  {object}  common.AppError "Internal server error while processing the deposit"
// @Router       /api/transactions/deposit [post]
func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.TransactionRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}
	if !req.Amount.IsPositive() {
		return common.NewAppError(http.StatusBadRequest, "Amount must be greater than zero", nil)
	}

	accountID, appErr := accountIDFromContext(r)
	if appErr != nil {
		return appErr
	}

	transaction, err := h.ledger.Deposit(r.Context(), accountID, req.Amount)
	if err != nil {
		return mapLedgerError(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(transaction)
	return nil
}

// Withdraw godoc
// @Summary      Withdraw money from the caller's account
// @Description  Debits the given amount from the authenticated caller's account and records the posting. Overdrafts are rejected.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        posting body model.TransactionRequest true "Amount to withdraw"
// @Success      201  {object}  model.Transaction
// @Failure      400  {object}  common.AppError "Missing or non-positive amount, or insufficient funds"
// @Failure      401  {object}  common.AppError "Missing account identity"
// @Failure      404  {object}  common.AppError "Account not found"
// @Failure      500  {object}  common.AppError "Internal server error while processing the withdrawal"
// @Router       /api/transactions/withdraw [post]
func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.TransactionRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}
	if !req.Amount.IsPositive() {
		return common.NewAppError(http.StatusBadRequest, "Amount must be greater than zero", nil)
	}

	accountID, appErr := accountIDFromContext(r)
	if appErr != nil {
		return appErr
	}

	transaction, err := h.ledger.Withdraw(r.Context(), accountID, req.Amount)
	if err != nil {
		return mapLedgerError(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(transaction)
	return nil
}

// dateRangeFromQuery reads the optional start_date/end_date parameters.
// Missing or unparseable values mean "no filter" rather than an error.
func dateRangeFromQuery(r *http.Request) *model.DateRange {
	start, errStart := time.Parse("2006-01-02", r.URL.Query().Get("start_date"))
	end, errEnd := time.Parse("2006-01-02", r.URL.Query().Get("end_date"))
	if errStart != nil || errEnd != nil {
		return nil
	}
	return &model.DateRange{Start: start, End: end}
}

// Report godoc
// @Summary      List the caller's transaction history
// @Description  Returns the authenticated caller's transactions ordered by timestamp ascending, optionally restricted to an inclusive date range.
// @Tags         transactions
// @Produce      json
// @Param        start_date query string false "Range start (YYYY-MM-DD)"
// @Param        end_date   query string false "Range end (YYYY-MM-DD)"
// @Success      200  {array}   model.Transaction
// @Failure      401  {object}  common.AppError "Missing account identity"
// @Failure      404  {object}  common.AppError "Account not found"
// @Failure      500  {object}  common.AppError "Internal server error while retrieving the report"
// @Router       /api/transactions/report [get]
func (h *TransactionHandler) Report(w http.ResponseWriter, r *http.Request) *common.AppError {
	accountID, appErr := accountIDFromContext(r)
	if appErr != nil {
		return appErr
	}

	transactions, err := h.report.Report(r.Context(), accountID, dateRangeFromQuery(r))
	if err != nil {
		if err == service.ErrAccountNotFound {
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve report", err)
	}
	if transactions == nil {
		transactions = []*model.Transaction{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(transactions)
	return nil
}

// ExportReport godoc
// @Summary      Download the caller's transaction history as CSV
// @Description  Streams the report as a CSV attachment with columns Name, Transaction Type, Date and Amount.
// @Tags         transactions
// @Produce      text/csv
// @Param        start_date query string false "Range start (YYYY-MM-DD)"
// @Param        end_date   query string false "Range end (YYYY-MM-DD)"
// @Success      200  {string}  string "CSV report"
// @Failure      401  {object}  common.AppError "Missing account identity"
// @Failure      404  {object}  common.AppError "Account not found"
// @Failure      500  {object}  common.AppError "Internal server error while exporting the report"
// @Router       /api/transactions/report/export [get]
func (h *TransactionHandler) ExportReport(w http.ResponseWriter, r *http.Request) *common.AppError {
	accountID, appErr := accountIDFromContext(r)
	if appErr != nil {
		return appErr
	}

	var buf bytes.Buffer
	if err := h.report.Export(r.Context(), accountID, dateRangeFromQuery(r), &buf); err != nil {
		if err == service.ErrAccountNotFound {
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not export report", err)
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="report.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
	return nil
}
