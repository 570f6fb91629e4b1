package models

import "time"

// Outcome annotations written to appointment records. The decline / success
// wording doubles as the discriminator when scanning a user's history.
const (
	NoteBooked       = "Cita agendada con éxito"
	NoteSecondChance = "Cita agendada con éxito (segunda oportunidad)"
	NoteDeclined     = "Usuario rechazó asesoría gratuita"

	// NoSlot marks the date/time columns of a decline record.
	NoSlot = "N/A"
)

// AppointmentRecord is the persisted outcome of a negotiation: either a
// confirmed slot or a recorded decline.
type AppointmentRecord struct {
	ID              string    `bson:"id" json:"id"`
	Timestamp       time.Time `bson:"timestamp" json:"timestamp"`
	FullName        string    `bson:"fullName" json:"fullName"`
	Email           string    `bson:"email" json:"email"`
	Phone           string    `bson:"phone" json:"phone"`
	ServiceInterest string    `bson:"serviceInterest" json:"serviceInterest"`
	Date            string    `bson:"date" json:"date"`
	TimeLabel       string    `bson:"timeLabel" json:"timeLabel"`
	Notes           string    `bson:"notes" json:"notes"`
}

// IsDecline reports whether the record captures a rejected offer.
func (r AppointmentRecord) IsDecline() bool {
	return r.Date == "" || r.Date == NoSlot
}

// OutcomeState summarizes a user's appointment history for the
// second-chance decision.
type OutcomeState struct {
	HasDecline    bool
	HasBooking    bool
	LastRecordID  string
	LastIsDecline bool
}

// SecondChance reports whether the user's most recent outcome is a decline
// with no successful booking on file.
func (o OutcomeState) SecondChance() bool {
	return o.HasDecline && !o.HasBooking && o.LastIsDecline
}

// AppointmentStats aggregates history records for the admin endpoint.
type AppointmentStats struct {
	TotalRecords   int       `json:"totalRecords"`
	Booked         int       `json:"booked"`
	Declined       int       `json:"declined"`
	UniqueUsers    int       `json:"uniqueUsers"`
	ConversionRate float64   `json:"conversionRate"`
	RecentRecords  int       `json:"recentRecords"` // last 30 days
	CheckedAt      time.Time `json:"checkedAt"`
}
