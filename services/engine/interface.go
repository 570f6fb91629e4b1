// File: services/engine/interface.go
package engine

import (
	"context"
	"time"

	appointmentRepo "github.com/itelsaia/agente-itelsa-ia/database/repository/appointment"
	userRepo "github.com/itelsaia/agente-itelsa-ia/database/repository/user"
	"github.com/itelsaia/agente-itelsa-ia/models"
	"github.com/itelsaia/agente-itelsa-ia/services/calendar"
	"github.com/itelsaia/agente-itelsa-ia/services/intent"
	"github.com/itelsaia/agente-itelsa-ia/services/schedule"
)

// Engine is the single entry point the transport layer (webhook or console)
// invokes per inbound message.
type Engine interface {
	HandleTurn(ctx context.Context, userID, text string) string
}

// ReminderScheduler queues an appointment reminder to fire before the
// confirmed slot. A nil scheduler disables reminders.
type ReminderScheduler interface {
	ScheduleReminder(payload models.ReminderPayload, fireAt time.Time) error
}

// DefaultEngine drives the conversation state machine and booking
// negotiation over injected collaborators, so tests can swap in fakes for
// every external resource.
type DefaultEngine struct {
	Sessions     SessionStore
	Users        userRepo.UserRepository
	Appointments appointmentRepo.AppointmentRepository
	Calendar     calendar.Resource
	Checker      *schedule.Checker
	Slots        *schedule.SlotGenerator
	Intents      intent.Classifier
	Hours        schedule.BusinessHours
	Reminders    ReminderScheduler
	SessionTTL   time.Duration

	// Now is the wall clock; overridable in tests so relative day parsing
	// resolves against a fixed instant.
	Now func() time.Time
}

func (e *DefaultEngine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now().In(e.Hours.Location)
}
