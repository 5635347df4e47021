package domain

import (
	"github.com/shopspring/decimal"
)

// TransactionRecord is one well-formed line of the transaction log. Records
// are built per line by the parser and discarded once the processing loop has
// applied them; nothing holds on to them across iterations.
type TransactionRecord struct {
	Date       string          // first field, kept verbatim (dates are not validated)
	CardNumber string          // card number identifying a loyalty member
	MerchantID string          // merchant the transaction was made at
	Amount     decimal.Decimal // transaction amount in dollars, never negative
}
