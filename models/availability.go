package models

// Rejection reasons produced by the availability checker, ordered by the
// short-circuit validation sequence.
const (
	ReasonAvailable      = "disponible"
	ReasonInvalidTime    = "hora_invalida"
	ReasonOutsideHours   = "fuera_horario_laboral"
	ReasonInvalidDate    = "fecha_invalida"
	ReasonNonBusinessDay = "fin_semana"
	ReasonSlotConflict   = "horario_ocupado"
	ReasonSystemError    = "error_sistema"
)

// AvailabilityResult is the typed outcome of checking one (date, time) pair.
type AvailabilityResult struct {
	Available       bool     `json:"available"`
	Reason          string   `json:"reason"`
	Alternatives    []string `json:"alternatives,omitempty"`
	AlternativeDate string   `json:"alternativeDate,omitempty"`
}

// BookingRequest is the ephemeral value passed from parsing or option
// selection into the availability check.
type BookingRequest struct {
	Profile   UserProfile
	Date      string // YYYY-MM-DD
	TimeLabel string // friendly 12h label like "3:00pm"
}
