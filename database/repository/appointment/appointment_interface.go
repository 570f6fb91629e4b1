package appointmentRepo

import (
	"github.com/itelsaia/agente-itelsa-ia/models"
)

// AppointmentRepository persists negotiation outcomes and answers the
// second-chance question about a user's history.
type AppointmentRepository interface {
	// OutcomeState scans a user's records and summarizes them for the
	// update-vs-insert decision.
	OutcomeState(email string) (models.OutcomeState, error)
	// Append inserts a new outcome record.
	Append(record *models.AppointmentRecord) error
	// Update rewrites an existing record in place, keeping its identity.
	Update(id string, record *models.AppointmentRecord) error
	// ListByUser returns a user's records, oldest first.
	ListByUser(email string) ([]models.AppointmentRecord, error)
	// Stats aggregates all records for the admin endpoint.
	Stats() (models.AppointmentStats, error)
}
