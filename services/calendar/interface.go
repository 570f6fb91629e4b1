// File: services/calendar/interface.go
package calendar

import (
	"context"
	"time"
)

// Event is the payload for a calendar insert.
type Event struct {
	Summary       string
	Description   string
	Start         time.Time
	End           time.Time
	AttendeeEmail string
}

// Resource abstracts the shared external calendar. Implementations must be
// safe for concurrent use; the engine never holds locks on the calendar and
// accepts the narrow race between a free check and the insert.
type Resource interface {
	// IsSlotFree reports whether no existing event overlaps the window.
	IsSlotFree(ctx context.Context, start, end time.Time) (bool, error)
	// CreateEvent inserts an event and sends invitations.
	CreateEvent(ctx context.Context, evt Event) error
	// Verify checks connectivity with the calendar backend.
	Verify(ctx context.Context) error
}
