package session

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// MaxTicketID keeps Next representable.
const MaxTicketID = math.MaxInt64 - 1

// ErrInvalidTicketID is returned for a manual ticket ID outside
// 1..MaxTicketID.
var ErrInvalidTicketID = errors.New("ticket ID must be a positive integer")

// TicketID is the manually seeded ticket number of a session.
type TicketID struct {
	ID int64 `json:"id"`
}

// Next is the number the next ticket will get.
func (t TicketID) Next() int64 { return t.ID + 1 }

// TicketIDs stores the manual ticket ID per session.
type TicketIDs struct {
	drafts *DraftStore[TicketID]
}

// NewTicketIDs creates the store.
func NewTicketIDs(s *Store) *TicketIDs {
	return &TicketIDs{drafts: NewDraftStore[TicketID](s, "ticket-id")}
}

// Get returns the stored ID, or nil when unset.
func (t *TicketIDs) Get(ctx context.Context, sessionID string) (*TicketID, error) {
	return t.drafts.Get(ctx, sessionID)
}

// Set stores id after checking its range.
func (t *TicketIDs) Set(ctx context.Context, sessionID string, id int64) (*TicketID, error) {
	if id < 1 || id > MaxTicketID {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTicketID, id)
	}
	v := &TicketID{ID: id}
	if err := t.drafts.Put(ctx, sessionID, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Clear removes the stored ID.
func (t *TicketIDs) Clear(ctx context.Context, sessionID string) error {
	return t.drafts.Delete(ctx, sessionID)
}
