package pipeline

// CheckpointStore persists how many lines of the current transaction log have
// been fully applied, so an interrupted run can resume without double-awarding
// points. The file-backed implementation lives in internal/checkpoint; tests
// substitute in-memory fakes.
type CheckpointStore interface {
	// Load returns the saved line count, or 0 when no checkpoint exists.
	Load() (int64, error)

	// Save durably replaces the stored line count. It must not report success
	// unless the value would survive a crash.
	Save(lineNo int64) error

	// Clear removes the checkpoint entirely. An absent checkpoint is the one
	// signal that the previous run consumed its whole file.
	Clear() error
}
