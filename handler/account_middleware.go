package handler

import (
	"context"
	"go-bank-ledger/common"
	"net/http"
	"strconv"
)

type contextKey string

// AccountIDKey holds the authenticated caller's account ID in the request
// context. Handlers never accept an account from the request body, so a
// caller can only ever post against their own account.
const AccountIDKey contextKey = "accountID"

// AccountMiddleware resolves the caller's account from the X-Account-ID
// header, which the upstream authentication layer sets after verifying the
// session. Requests without it are rejected before reaching any handler.
func AccountMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountIDStr := r.Header.Get("X-Account-ID")
		if accountIDStr == "" {
			err := common.NewAppError(http.StatusUnauthorized, "Account identity header is required", nil)
			err.Send(w)
			return
		}

		accountID, err := strconv.Atoi(accountIDStr)
		if err != nil {
			appErr := common.NewAppError(http.StatusUnauthorized, "Invalid account identity header", err)
			appErr.Send(w)
			return
		}

		ctx := context.WithValue(r.Context(), AccountIDKey, accountID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
