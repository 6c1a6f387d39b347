package router

import (
	"go-bank-ledger/handler"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func NewRouter(transactionHandler *handler.TransactionHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", handler.HealthCheck)
	mux.Handle("/swagger/", httpSwagger.Handler())

	if transactionHandler != nil {
		api := http.NewServeMux()
		api.Handle("POST /api/transactions/deposit", handler.ErrorHandlingMiddleware(transactionHandler.Deposit))
		api.Handle("POST /api/transactions/withdraw", handler.ErrorHandlingMiddleware(transactionHandler.Withdraw))
		api.Handle("GET /api/transactions/report", handler.ErrorHandlingMiddleware(transactionHandler.Report))
		api.Handle("GET /api/transactions/report/export", handler.ErrorHandlingMiddleware(transactionHandler.ExportReport))

		mux.Handle("/api/", handler.AccountMiddleware(api))
	}

	return mux
}
