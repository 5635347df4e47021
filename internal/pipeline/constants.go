package pipeline

import "github.com/shopspring/decimal"

// Default values for a processing run. Configuration and flags override these.
const (
	// DefaultTargetMerchant is the merchant whose transactions earn points.
	DefaultTargetMerchant = "GAS123"

	// DefaultCheckpointInterval is the number of lines between periodic
	// checkpoint saves. It bounds how much a resumed run has to reprocess
	// after a crash.
	DefaultCheckpointInterval = 1000
)

// DefaultPointsRate is the points-per-dollar accrual rate.
var DefaultPointsRate = decimal.NewFromInt(1)
