package members

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/dvloznov/loyalty-processor/internal/domain"
)

// memberRecord is the JSON shape of one member in a snapshot file.
type memberRecord struct {
	Name       string `json:"name"`
	CardNumber string `json:"card_number"`
	Points     int64  `json:"points"`
}

// LoadSnapshot reads a members snapshot into a new Store. When the file does
// not exist yet the seed set is used instead; the first successful run then
// writes the snapshot out.
func LoadSnapshot(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewSeededStore(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("LoadSnapshot: reading %s: %w", path, err)
	}

	var records []memberRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("LoadSnapshot: decoding %s: %w", path, err)
	}

	s := NewStore()
	for _, rec := range records {
		s.members[rec.CardNumber] = &domain.Member{
			Name:       rec.Name,
			CardNumber: rec.CardNumber,
			Points:     rec.Points,
		}
	}
	return s, nil
}

// SaveSnapshot writes the current members to path through a temp file and
// rename, the same way the checkpoint is replaced.
func (s *Store) SaveSnapshot(path string) error {
	s.mu.RLock()
	records := make([]memberRecord, 0, len(s.members))
	for _, member := range s.members {
		records = append(records, memberRecord{
			Name:       member.Name,
			CardNumber: member.CardNumber,
			Points:     member.Points,
		})
	}
	s.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("SaveSnapshot: creating temp file: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("SaveSnapshot: encoding members: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("SaveSnapshot: closing temp file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("SaveSnapshot: replacing %s: %w", path, err)
	}
	return nil
}
