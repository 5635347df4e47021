package domain

import (
	"context"
	"math"
	"strings"
)

// Member is a loyalty-program member, keyed by card number.
type Member struct {
	Name       string
	CardNumber string
	Points     int64
}

// Accrue adds points to the member's balance and returns the new balance.
// The balance saturates at the int64 maximum, so accrual never wraps it
// negative.
func (m *Member) Accrue(points int64) int64 {
	if points > math.MaxInt64-m.Points {
		m.Points = math.MaxInt64
	} else {
		m.Points += points
	}
	return m.Points
}

// MaskedCard returns the member's card number with all but the last four
// digits hidden, for logs and console output.
func (m *Member) MaskedCard() string {
	if len(m.CardNumber) <= 4 {
		return m.CardNumber
	}
	return strings.Repeat("*", len(m.CardNumber)-4) + m.CardNumber[len(m.CardNumber)-4:]
}

// MemberRepository is the account store the processing loop runs against.
// The in-memory implementation lives in internal/members; production
// deployments swap in a database-backed one without touching the loop.
type MemberRepository interface {
	// Get returns the member holding the card number, or (nil, nil) when no
	// member does.
	Get(ctx context.Context, cardNumber string) (*Member, error)

	// Put saves or replaces a member, keyed by card number.
	Put(ctx context.Context, member *Member) error

	// List returns all members, ordered by name.
	List(ctx context.Context) ([]*Member, error)
}
