// File: services/engine/negotiation.go
package engine

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/itelsaia/agente-itelsa-ia/models"
	"github.com/itelsaia/agente-itelsa-ia/services/calendar"
	"github.com/itelsaia/agente-itelsa-ia/services/intent"
	"github.com/itelsaia/agente-itelsa-ia/services/schedule"
	"github.com/itelsaia/agente-itelsa-ia/utils"

	"go.uber.org/zap"
)

// handleConversing dispatches one turn of the booking negotiation. Order is
// fixed: pending-option selection beats fresh date/time parsing, which beats
// intent classification, so a user mid-negotiation cannot accidentally open
// a second one.
func (e *DefaultEngine) handleConversing(ctx context.Context, session *models.Session, text string) string {
	if session.Pending != nil {
		if label, ok := matchPendingSelection(text, session.Pending, e.Intents); ok {
			date := session.Pending.Date
			session.Pending = nil
			return e.book(ctx, session, date, label)
		}
	}

	if date, label, ok := schedule.ParseDateTime(text, e.now()); ok {
		return e.book(ctx, session, date, label)
	}

	res := e.Intents.Classify(text)
	switch {
	case res.BookingRequest:
		session.AskedForSlot = true
		return msgAskSlot
	case res.Rejection:
		return e.decline(session)
	}

	if session.Pending != nil {
		return repeatOptions(session.Pending)
	}
	return msgGeneralHelp
}

var (
	ordinalRefPattern = regexp.MustCompile(`opci[oó]n\s*(\d{1,2})`)
	soleRefPattern    = regexp.MustCompile(`^(?:la\s+|el\s+|n[uú]mero\s+)?(\d{1,2})$`)
)

// matchPendingSelection resolves a reply against the offered alternatives:
// an explicit ordinal reference ("opción 2", "la 2", bare "2"), or a sole
// affirmative when exactly one option was offered.
func matchPendingSelection(text string, pending *models.PendingOptions, classifier intent.Classifier) (string, bool) {
	lowered := strings.ToLower(strings.TrimSpace(text))

	var pick int
	if m := ordinalRefPattern.FindStringSubmatch(lowered); m != nil {
		pick, _ = strconv.Atoi(m[1])
	} else if m := soleRefPattern.FindStringSubmatch(lowered); m != nil {
		pick, _ = strconv.Atoi(m[1])
	}

	if pick >= 1 && pick <= len(pending.Times) {
		return pending.Times[pick-1], true
	}

	if len(pending.Times) == 1 && classifier.Classify(lowered).Affirmative {
		return pending.Times[0], true
	}
	return "", false
}

// book runs the availability check for a concrete slot and either records
// the booking or answers with alternatives that become the new pending
// state.
func (e *DefaultEngine) book(ctx context.Context, session *models.Session, date, timeLabel string) string {
	logger := utils.GetLogger()

	result := e.Checker.Check(ctx, date, timeLabel)
	if !result.Available {
		if len(result.Alternatives) > 0 {
			optionDate := date
			if result.AlternativeDate != "" {
				optionDate = result.AlternativeDate
			}
			session.Pending = &models.PendingOptions{
				Date:      optionDate,
				DateLabel: schedule.FriendlyDate(optionDate, e.Hours.Location),
				Times:     result.Alternatives,
			}
		}
		return e.rejectionMessage(result, date)
	}

	hour, minute, err := schedule.ParseTimeLabel(timeLabel)
	if err != nil {
		return e.rejectionMessage(models.AvailabilityResult{Reason: models.ReasonInvalidTime}, date)
	}
	start, end, err := e.Hours.SlotWindow(date, hour, minute)
	if err != nil {
		return e.rejectionMessage(models.AvailabilityResult{Reason: models.ReasonInvalidDate}, date)
	}

	profile := session.Profile
	evt := calendar.Event{
		Summary: "Asesoría - " + profile.FullName,
		Description: fmt.Sprintf("Cliente: %s\nCorreo: %s\nTeléfono: %s\nTipo: Asesoría gratuita",
			profile.FullName, profile.Email, profile.Phone),
		Start:         start,
		End:           end,
		AttendeeEmail: profile.Email,
	}
	if err := e.Calendar.CreateEvent(ctx, evt); err != nil {
		logger.Error("failed to create calendar event",
			zap.String("email", profile.Email), zap.String("date", date), zap.Error(err))
		return msgTechnicalProblem
	}

	recordID, err := e.recordBooking(profile, date, timeLabel)
	if err != nil {
		logger.Error("failed to record booking outcome",
			zap.String("email", profile.Email), zap.Error(err))
		return msgTechnicalProblem
	}

	e.scheduleReminder(recordID, session.UserID, profile.FullName, date, timeLabel, start)

	session.Pending = nil
	session.AskedForSlot = false
	session.SecondChance = false
	return e.successMessage(date, timeLabel)
}

// decline records a rejected offer and closes without pressure. A user
// already in second-chance status declining again is left untouched: no
// duplicate decline record is forced.
func (e *DefaultEngine) decline(session *models.Session) string {
	logger := utils.GetLogger()

	if !session.SecondChance {
		record := &models.AppointmentRecord{
			FullName:        session.Profile.FullName,
			Email:           session.Profile.Email,
			Phone:           session.Profile.Phone,
			ServiceInterest: session.Profile.ServiceInterest,
			Date:            models.NoSlot,
			TimeLabel:       models.NoSlot,
			Notes:           models.NoteDeclined,
		}
		if err := e.Appointments.Append(record); err != nil {
			logger.Error("failed to record decline",
				zap.String("email", session.Profile.Email), zap.Error(err))
			return msgTechnicalProblem
		}
		session.SecondChance = true
	}

	session.Pending = nil
	return msgDeclineClose
}

// scheduleReminder queues a reminder ahead of the appointment when a
// scheduler is wired and the fire time is still in the future.
func (e *DefaultEngine) scheduleReminder(recordID, userID, fullName, date, timeLabel string, start time.Time) {
	if e.Reminders == nil {
		return
	}
	fireAt := start.Add(-24 * time.Hour)
	if !fireAt.After(e.now()) {
		return
	}
	payload := models.ReminderPayload{
		RecordID:  recordID,
		UserID:    userID,
		FullName:  fullName,
		Date:      date,
		TimeLabel: timeLabel,
		FireDate:  fireAt.Format(time.RFC3339),
	}
	if err := e.Reminders.ScheduleReminder(payload, fireAt); err != nil {
		utils.GetLogger().Warn("failed to schedule reminder",
			zap.String("recordID", recordID), zap.Error(err))
	}
}
