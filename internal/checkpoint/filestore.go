package checkpoint

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/dvloznov/loyalty-processor/internal/pipeline"
)

// ErrCorrupt marks a checkpoint file whose contents are not a non-negative
// integer. Quietly restarting from zero would replay every line already
// applied, so a corrupt value is surfaced instead of ignored.
var ErrCorrupt = errors.New("corrupt checkpoint value")

// FileStore keeps the checkpoint as a single textual integer in a file.
// Saves replace the file atomically; a crash mid-write can never leave a
// half-written value behind.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore at path. The file itself appears on the
// first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns the saved line count, or 0 when no checkpoint file exists.
func (s *FileStore) Load() (int64, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("Load: reading checkpoint: %w", err)
	}

	value := strings.TrimSpace(string(data))
	lineNo, err := strconv.ParseInt(value, 10, 64)
	if err != nil || lineNo < 0 {
		return 0, fmt.Errorf("Load: %w: %q in %s", ErrCorrupt, value, s.path)
	}
	return lineNo, nil
}

// Save writes the line count to a temp file, syncs it and renames it over
// the checkpoint, so a reader sees either the old value or the new one.
func (s *FileStore) Save(lineNo int64) error {
	if lineNo < 0 {
		return fmt.Errorf("Save: negative line count %d", lineNo)
	}

	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("Save: creating temp checkpoint: %w", err)
	}

	if _, err := fmt.Fprintf(f, "%d\n", lineNo); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("Save: writing temp checkpoint: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("Save: syncing temp checkpoint: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("Save: closing temp checkpoint: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("Save: replacing checkpoint: %w", err)
	}
	return nil
}

// Clear removes the checkpoint file. Clearing an absent checkpoint is fine.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("Clear: removing checkpoint: %w", err)
	}
	return nil
}

// Ensure FileStore implements the processing loop's store interface.
var _ pipeline.CheckpointStore = (*FileStore)(nil)
