// File: services/schedule/availability.go
package schedule

import (
	"context"
	"time"

	"github.com/itelsaia/agente-itelsa-ia/models"
	"github.com/itelsaia/agente-itelsa-ia/services/calendar"
	"github.com/itelsaia/agente-itelsa-ia/utils"

	"go.uber.org/zap"
)

// maxAlternatives caps the substitute slots attached to a rejection.
const maxAlternatives = 4

// Checker validates a requested (date, time) pair against business
// constraints and the live calendar. Checks short-circuit: the first failing
// constraint decides the rejection reason.
type Checker struct {
	Calendar calendar.Resource
	Hours    BusinessHours
	Slots    *SlotGenerator
}

// Check runs the ordered validation sequence for one requested slot.
func (c *Checker) Check(ctx context.Context, date, timeLabel string) models.AvailabilityResult {
	logger := utils.GetLogger()

	hour, minute, err := ParseTimeLabel(timeLabel)
	if err != nil {
		return models.AvailabilityResult{Reason: models.ReasonInvalidTime}
	}

	if hour < c.Hours.Opening || hour >= c.Hours.Closing {
		return models.AvailabilityResult{
			Reason:       models.ReasonOutsideHours,
			Alternatives: c.alternatives(ctx, date),
		}
	}

	day, err := time.ParseInLocation("2006-01-02", date, c.Hours.Location)
	if err != nil {
		return models.AvailabilityResult{Reason: models.ReasonInvalidDate}
	}

	if !c.Hours.IsBusinessDay(day.Weekday()) {
		nextDay := c.Hours.NextBusinessDay(day).Format("2006-01-02")
		return models.AvailabilityResult{
			Reason:          models.ReasonNonBusinessDay,
			AlternativeDate: nextDay,
			Alternatives:    c.alternatives(ctx, nextDay),
		}
	}

	start, end, err := c.Hours.SlotWindow(date, hour, minute)
	if err != nil {
		return models.AvailabilityResult{Reason: models.ReasonInvalidDate}
	}
	free, err := c.Calendar.IsSlotFree(ctx, start, end)
	if err != nil {
		logger.Error("availability check failed against calendar",
			zap.String("date", date), zap.String("time", timeLabel), zap.Error(err))
		return models.AvailabilityResult{Reason: models.ReasonSystemError}
	}
	if !free {
		return models.AvailabilityResult{
			Reason:       models.ReasonSlotConflict,
			Alternatives: c.alternatives(ctx, date),
		}
	}

	return models.AvailabilityResult{Available: true, Reason: models.ReasonAvailable}
}

// alternatives enumerates free slots for a date, truncated to the cap in
// generation order (earliest first).
func (c *Checker) alternatives(ctx context.Context, date string) []string {
	times := c.Slots.AvailableTimes(ctx, date)
	if len(times) > maxAlternatives {
		times = times[:maxAlternatives]
	}
	return times
}
