package schedule

import (
	"testing"
	"time"
)

// Fixed reference instant: Monday 2026-01-05 at 10:00.
var parserNow = time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)

func TestParseDateTime(t *testing.T) {
	cases := []struct {
		text     string
		wantDate string
		wantTime string
		wantOK   bool
	}{
		{"mañana a las 3pm", "2026-01-06", "3:00pm", true},
		{"manana a las 3pm", "2026-01-06", "3:00pm", true},
		{"hoy a las 10:30am", "2026-01-05", "10:30am", true},
		{"pasado mañana a las 9am", "2026-01-07", "9:00am", true},
		{"Mañana a la 1pm", "2026-01-06", "1:00pm", true},
		{"a las 3pm mañana", "2026-01-06", "3:00pm", true},
		{"a las 11am para hoy", "2026-01-05", "11:00am", true},
		{"quiero el 2026-02-10 a las 15:00", "2026-02-10", "3:00pm", true},
		{"2026-02-10 15:30", "2026-02-10", "3:30pm", true},
		{"sábado a las 10am", "2026-01-10", "10:00am", true},
		{"sabado a las 10am", "2026-01-10", "10:00am", true},
		{"el martes a las 2pm", "2026-01-06", "2:00pm", true},
		{"miércoles a las 4:30pm", "2026-01-07", "4:30pm", true},
		{"a las 10am el sábado", "2026-01-10", "10:00am", true},
		{"9am para el viernes", "2026-01-09", "9:00am", true},
		{"lunes a las 9am", "2026-01-12", "9:00am", true}, // same weekday means next week
		{"hola, quiero información", "", "", false},
		{"mañana a las 13pm", "", "", false},
		{"2026-02-10 99:00", "", "", false},
		{"mañana", "", "", false},
		{"a las 3", "", "", false},
	}

	for _, tc := range cases {
		date, label, ok := ParseDateTime(tc.text, parserNow)
		if ok != tc.wantOK {
			t.Errorf("ParseDateTime(%q): ok = %v, want %v", tc.text, ok, tc.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if date != tc.wantDate || label != tc.wantTime {
			t.Errorf("ParseDateTime(%q) = (%s, %s), want (%s, %s)",
				tc.text, date, label, tc.wantDate, tc.wantTime)
		}
	}
}

func TestParseDateTimeEmbeddedInSentence(t *testing.T) {
	date, label, ok := ParseDateTime("Me gustaría verlos mañana a las 2:00pm si se puede", parserNow)
	if !ok {
		t.Fatal("expected a match inside a longer sentence")
	}
	if date != "2026-01-06" || label != "2:00pm" {
		t.Errorf("got (%s, %s), want (2026-01-06, 2:00pm)", date, label)
	}
}
