// File: services/schedule/parser.go
package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The parser recognizes Spanish scheduling phrases. Patterns are tried in
// fixed priority order; the first match wins and no attempt is made to
// disambiguate several expressions in one message.
var (
	// Absolute form: "2025-03-10 15:00" (24h clock, no meridiem needed).
	absolutePattern = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})\s+(?:a\s+las\s+)?(\d{1,2}):(\d{2})`)

	// Relative day followed by a 12h clock time: "mañana a las 3pm".
	dayThenTimePattern = regexp.MustCompile(`(hoy|pasado\s+ma[ñn]ana|ma[ñn]ana)\s+(?:a\s+las?\s+)?(\d{1,2})(?::(\d{2}))?\s*(am|pm)`)

	// Clock time followed by a relative day: "a las 3pm mañana".
	timeThenDayPattern = regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*(am|pm)\s+(?:de\s+|para\s+)?(hoy|pasado\s+ma[ñn]ana|ma[ñn]ana)`)

	// Weekday name with a 12h clock time: "sábado a las 10am".
	weekdayThenTimePattern = regexp.MustCompile(`(lunes|martes|mi[eé]rcoles|jueves|viernes|s[aá]bado|domingo)\s+(?:a\s+las?\s+)?(\d{1,2})(?::(\d{2}))?\s*(am|pm)`)

	// Clock time followed by a weekday name: "10am el sábado".
	timeThenWeekdayPattern = regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*(am|pm)\s+(?:de\s+|para\s+)?(?:el\s+)?(lunes|martes|mi[eé]rcoles|jueves|viernes|s[aá]bado|domingo)`)
)

// ParseDateTime extracts a (date, timeLabel) pair from free text, resolving
// relative day words against the provided instant. A (zero, zero, false)
// return is a normal negative result, not an error: the caller falls through
// to intent classification.
func ParseDateTime(text string, now time.Time) (string, string, bool) {
	lowered := strings.ToLower(text)

	if m := absolutePattern.FindStringSubmatch(lowered); m != nil {
		hour, _ := strconv.Atoi(m[2])
		minute, _ := strconv.Atoi(m[3])
		if hour > 23 || minute > 59 {
			return "", "", false
		}
		return m[1], FormatTimeLabel(hour, minute), true
	}

	if m := dayThenTimePattern.FindStringSubmatch(lowered); m != nil {
		date, ok := resolveRelativeDay(m[1], now)
		if !ok {
			return "", "", false
		}
		label, ok := buildLabel(m[2], m[3], m[4])
		if !ok {
			return "", "", false
		}
		return date, label, true
	}

	if m := timeThenDayPattern.FindStringSubmatch(lowered); m != nil {
		date, ok := resolveRelativeDay(m[4], now)
		if !ok {
			return "", "", false
		}
		label, ok := buildLabel(m[1], m[2], m[3])
		if !ok {
			return "", "", false
		}
		return date, label, true
	}

	if m := weekdayThenTimePattern.FindStringSubmatch(lowered); m != nil {
		date, ok := resolveWeekday(m[1], now)
		if !ok {
			return "", "", false
		}
		label, ok := buildLabel(m[2], m[3], m[4])
		if !ok {
			return "", "", false
		}
		return date, label, true
	}

	if m := timeThenWeekdayPattern.FindStringSubmatch(lowered); m != nil {
		date, ok := resolveWeekday(m[4], now)
		if !ok {
			return "", "", false
		}
		label, ok := buildLabel(m[1], m[2], m[3])
		if !ok {
			return "", "", false
		}
		return date, label, true
	}

	return "", "", false
}

// resolveRelativeDay maps a day word to a concrete date relative to now.
func resolveRelativeDay(word string, now time.Time) (string, bool) {
	normalized := strings.Join(strings.Fields(word), " ")
	normalized = strings.ReplaceAll(normalized, "manana", "mañana")

	var offset int
	switch normalized {
	case "hoy":
		offset = 0
	case "mañana":
		offset = 1
	case "pasado mañana":
		offset = 2
	default:
		return "", false
	}
	return now.AddDate(0, 0, offset).Format("2006-01-02"), true
}

var weekdayByName = map[string]time.Weekday{
	"domingo":   time.Sunday,
	"lunes":     time.Monday,
	"martes":    time.Tuesday,
	"miércoles": time.Wednesday,
	"miercoles": time.Wednesday,
	"jueves":    time.Thursday,
	"viernes":   time.Friday,
	"sábado":    time.Saturday,
	"sabado":    time.Saturday,
}

// resolveWeekday maps a weekday name to its next occurrence after now. Naming
// today's weekday means next week, never the current day.
func resolveWeekday(word string, now time.Time) (string, bool) {
	target, ok := weekdayByName[word]
	if !ok {
		return "", false
	}
	ahead := (int(target) - int(now.Weekday()) + 7) % 7
	if ahead == 0 {
		ahead = 7
	}
	return now.AddDate(0, 0, ahead).Format("2006-01-02"), true
}

// buildLabel normalizes regex captures into the canonical friendly label.
func buildLabel(hourStr, minuteStr, meridiem string) (string, bool) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 1 || hour > 12 {
		return "", false
	}
	minute := 0
	if minuteStr != "" {
		minute, err = strconv.Atoi(minuteStr)
		if err != nil || minute > 59 {
			return "", false
		}
	}
	return fmt.Sprintf("%d:%02d%s", hour, minute, meridiem), true
}
