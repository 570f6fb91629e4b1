// File: services/engine/recorder.go
package engine

import (
	"github.com/itelsaia/agente-itelsa-ia/models"
	"github.com/itelsaia/agente-itelsa-ia/utils"

	"go.uber.org/zap"
)

// recordBooking persists a confirmed slot with update-vs-insert semantics:
// when the user's most recent record is a decline with no later success,
// that record is rewritten in place as a second-chance booking instead of
// appending a duplicate. Returns the identity of the written record.
func (e *DefaultEngine) recordBooking(profile models.UserProfile, date, timeLabel string) (string, error) {
	outcome, err := e.Appointments.OutcomeState(profile.Email)
	if err != nil {
		return "", err
	}

	record := &models.AppointmentRecord{
		FullName:        profile.FullName,
		Email:           profile.Email,
		Phone:           profile.Phone,
		ServiceInterest: profile.ServiceInterest,
		Date:            date,
		TimeLabel:       timeLabel,
	}

	if outcome.SecondChance() && outcome.LastRecordID != "" {
		utils.GetLogger().Info("rewriting decline record as second-chance booking",
			zap.String("email", profile.Email), zap.String("recordID", outcome.LastRecordID))
		record.Notes = models.NoteSecondChance
		if err := e.Appointments.Update(outcome.LastRecordID, record); err != nil {
			return "", err
		}
		return outcome.LastRecordID, nil
	}

	record.Notes = models.NoteBooked
	if err := e.Appointments.Append(record); err != nil {
		return "", err
	}
	return record.ID, nil
}
