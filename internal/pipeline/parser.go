package pipeline

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dvloznov/loyalty-processor/internal/domain"
)

// ParseLine splits one transaction-log line into a record. Lines look like
// "date,card_number,merchant_id,amount" with no header row and no quoting;
// fields past the fourth are ignored.
//
// The second return is false for malformed lines: fewer than four fields, or
// an amount that is not a non-negative decimal. Malformed lines are counted
// and skipped by the caller, never surfaced as errors.
func ParseLine(line string) (domain.TransactionRecord, bool) {
	parts := strings.Split(line, ",")
	if len(parts) < 4 {
		return domain.TransactionRecord{}, false
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(parts[3]))
	if err != nil || amount.IsNegative() {
		return domain.TransactionRecord{}, false
	}

	return domain.TransactionRecord{
		Date:       parts[0],
		CardNumber: parts[1],
		MerchantID: parts[2],
		Amount:     amount,
	}, true
}
