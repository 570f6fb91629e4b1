// File: services/schedule/hours.go
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SlotDuration is the fixed length of every bookable slot.
const SlotDuration = time.Hour

// BusinessHours describes the bookable window: opening/closing hour on the
// 24h clock and the weekday set on which appointments are taken.
type BusinessHours struct {
	Opening  int
	Closing  int
	Days     []int // time.Weekday values
	Location *time.Location
}

// IsBusinessDay reports whether the weekday is in the configured set.
func (b BusinessHours) IsBusinessDay(day time.Weekday) bool {
	for _, d := range b.Days {
		if time.Weekday(d) == day {
			return true
		}
	}
	return false
}

// NextBusinessDay walks forward from the given day until it lands on a
// business day.
func (b BusinessHours) NextBusinessDay(from time.Time) time.Time {
	next := from.AddDate(0, 0, 1)
	for !b.IsBusinessDay(next.Weekday()) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// SlotLabels returns the fixed hourly grid of friendly labels, from opening
// hour through one hour before closing.
func (b BusinessHours) SlotLabels() []string {
	var labels []string
	for h := b.Opening; h < b.Closing; h++ {
		labels = append(labels, FormatTimeLabel(h, 0))
	}
	return labels
}

// SlotWindow resolves a (date, clock) pair into the concrete one-hour window
// in the business timezone.
func (b BusinessHours) SlotWindow(date string, hour, minute int) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, b.Location)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, b.Location)
	return start, start.Add(SlotDuration), nil
}

// ParseTimeLabel converts a friendly 12h label like "2pm" or "10:30am" into
// 24h clock values. The meridiem marker is mandatory.
func ParseTimeLabel(label string) (int, int, error) {
	cleaned := strings.ToLower(strings.TrimSpace(label))

	var pm bool
	switch {
	case strings.HasSuffix(cleaned, "pm"):
		pm = true
		cleaned = strings.TrimSuffix(cleaned, "pm")
	case strings.HasSuffix(cleaned, "am"):
		cleaned = strings.TrimSuffix(cleaned, "am")
	default:
		return 0, 0, fmt.Errorf("time %q is missing am/pm marker", label)
	}
	cleaned = strings.TrimSpace(cleaned)

	hourPart := cleaned
	minutePart := "00"
	if idx := strings.Index(cleaned, ":"); idx >= 0 {
		hourPart = cleaned[:idx]
		minutePart = cleaned[idx+1:]
	}

	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 1 || hour > 12 {
		return 0, 0, fmt.Errorf("invalid hour in %q", label)
	}
	minute, err := strconv.Atoi(minutePart)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minutes in %q", label)
	}

	if pm && hour != 12 {
		hour += 12
	} else if !pm && hour == 12 {
		hour = 0
	}
	return hour, minute, nil
}

// FormatTimeLabel renders 24h clock values as the friendly 12h label used in
// chat messages, e.g. (15, 0) -> "3:00pm".
func FormatTimeLabel(hour, minute int) string {
	meridiem := "am"
	display := hour
	switch {
	case hour == 0:
		display = 12
	case hour == 12:
		meridiem = "pm"
	case hour > 12:
		display = hour - 12
		meridiem = "pm"
	}
	return fmt.Sprintf("%d:%02d%s", display, minute, meridiem)
}

var spanishWeekdays = [...]string{
	"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado",
}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FriendlyDate renders a YYYY-MM-DD date in conversational Spanish, e.g.
// "lunes 5 de enero". Unparseable input is returned untouched.
func FriendlyDate(date string, loc *time.Location) string {
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s %d de %s",
		spanishWeekdays[day.Weekday()], day.Day(), spanishMonths[day.Month()-1])
}
