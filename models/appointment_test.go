package models

import "testing"

func TestIsDecline(t *testing.T) {
	cases := []struct {
		date string
		want bool
	}{
		{NoSlot, true},
		{"", true},
		{"2026-01-06", false},
	}
	for _, tc := range cases {
		rec := AppointmentRecord{Date: tc.date}
		if got := rec.IsDecline(); got != tc.want {
			t.Errorf("IsDecline with date %q = %v, want %v", tc.date, got, tc.want)
		}
	}
}

func TestSecondChance(t *testing.T) {
	cases := []struct {
		name  string
		state OutcomeState
		want  bool
	}{
		{"decline only", OutcomeState{HasDecline: true, LastIsDecline: true}, true},
		{"decline then booking", OutcomeState{HasDecline: true, HasBooking: true}, false},
		{"booking then decline", OutcomeState{HasDecline: true, HasBooking: true, LastIsDecline: true}, false},
		{"no history", OutcomeState{}, false},
		{"booking only", OutcomeState{HasBooking: true}, false},
	}
	for _, tc := range cases {
		if got := tc.state.SecondChance(); got != tc.want {
			t.Errorf("%s: SecondChance = %v, want %v", tc.name, got, tc.want)
		}
	}
}
