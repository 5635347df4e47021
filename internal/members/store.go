package members

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/dvloznov/loyalty-processor/internal/domain"
)

// Store is an in-memory MemberRepository. It stands in for a real account
// store; balances live for the process lifetime unless written to a snapshot
// file. It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	members map[string]*domain.Member
}

// NewStore creates an empty in-memory member store.
func NewStore() *Store {
	return &Store{
		members: make(map[string]*domain.Member),
	}
}

// NewSeededStore creates a store holding the built-in member set.
func NewSeededStore() *Store {
	s := NewStore()
	for _, member := range Seed() {
		s.members[member.CardNumber] = member
	}
	return s
}

// Seed returns the built-in member set used when no snapshot exists yet.
func Seed() []*domain.Member {
	return []*domain.Member{
		{Name: "John Doe", CardNumber: "1234567890123456", Points: 100},
		{Name: "Jane Smith", CardNumber: "2345678901234567", Points: 250},
		{Name: "Bob Johnson", CardNumber: "3456789012345678", Points: 50},
	}
}

// Get implements the MemberRepository interface. It returns (nil, nil) when
// no member holds the card number.
func (s *Store) Get(ctx context.Context, cardNumber string) (*domain.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	member, exists := s.members[cardNumber]
	if !exists {
		return nil, nil
	}

	// Return a copy to avoid external modifications
	memberCopy := *member
	return &memberCopy, nil
}

// Put implements the MemberRepository interface.
// It saves or replaces a member, keyed by card number.
func (s *Store) Put(ctx context.Context, member *domain.Member) error {
	if member.CardNumber == "" {
		return fmt.Errorf("member card number is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Store a copy to avoid external modifications
	memberCopy := *member
	s.members[member.CardNumber] = &memberCopy

	return nil
}

// List implements the MemberRepository interface.
// Members come back ordered by name so console output is stable.
func (s *Store) List(ctx context.Context) ([]*domain.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Member, 0, len(s.members))
	for _, member := range s.members {
		memberCopy := *member
		result = append(result, &memberCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result, nil
}

// Ensure Store implements MemberRepository interface.
var _ domain.MemberRepository = (*Store)(nil)
