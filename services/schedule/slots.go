// File: services/schedule/slots.go
package schedule

import (
	"context"

	"github.com/itelsaia/agente-itelsa-ia/services/calendar"
	"github.com/itelsaia/agente-itelsa-ia/utils"

	"go.uber.org/zap"
)

// SlotGenerator enumerates conflict-free slots for a date over the fixed
// hourly grid. Every call re-queries the calendar per slot: slot state can
// change between a user's turns, so nothing is cached.
type SlotGenerator struct {
	Calendar calendar.Resource
	Hours    BusinessHours
}

// AvailableTimes returns the free time labels for a date, earliest first.
// A slot whose conflict check errors is treated as occupied rather than
// failing the whole enumeration.
func (g *SlotGenerator) AvailableTimes(ctx context.Context, date string) []string {
	logger := utils.GetLogger()

	var available []string
	for _, label := range g.Hours.SlotLabels() {
		hour, minute, err := ParseTimeLabel(label)
		if err != nil {
			continue
		}
		start, end, err := g.Hours.SlotWindow(date, hour, minute)
		if err != nil {
			logger.Debug("skipping slot grid for unparseable date",
				zap.String("date", date), zap.Error(err))
			return nil
		}
		free, err := g.Calendar.IsSlotFree(ctx, start, end)
		if err != nil {
			logger.Warn("slot conflict check failed, treating as occupied",
				zap.String("date", date), zap.String("time", label), zap.Error(err))
			continue
		}
		if free {
			available = append(available, label)
		}
	}
	return available
}
