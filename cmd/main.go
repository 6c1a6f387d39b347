// cmd/main.go
package main

import (
	"go-bank-ledger/app"
	_ "go-bank-ledger/docs"
)

// @title           Bank Ledger API
// @version         1.0
// @description     Retail banking demo: deposits, withdrawals and transaction reports.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
func main() {
	app.Run()
}
