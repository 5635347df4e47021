package pipeline

import "time"

// Report summarizes one processing run. Skipped-line classes are counted here
// instead of logged line by line; a large file with one bad producer would
// otherwise drown the log.
type Report struct {
	RunID       string
	ResumedFrom int64 // checkpoint at the start of the run, 0 for a fresh file
	LinesRead   int64 // absolute line count at the end of the run, resumed lines included

	Accruals      int64 // transactions that earned points
	PointsAwarded int64 // total points handed out this run

	Malformed     int64 // lines that failed structural or numeric parsing
	OtherMerchant int64 // well-formed lines for merchants we don't track
	UnknownCard   int64 // target-merchant lines with no matching member

	Started  time.Time
	Finished time.Time
}

// Skipped returns the total number of lines this run read but did not apply.
func (r *Report) Skipped() int64 {
	return r.Malformed + r.OtherMerchant + r.UnknownCard
}
