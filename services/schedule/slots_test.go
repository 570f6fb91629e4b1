package schedule

import (
	"context"
	"errors"
	"testing"
	"time"
)

// errOnceCalendar fails the conflict check for one specific slot and answers
// normally for the rest.
type errOnceCalendar struct {
	*stubCalendar
	failAt string
}

func (e *errOnceCalendar) IsSlotFree(ctx context.Context, start, end time.Time) (bool, error) {
	if start.Format(time.RFC3339) == e.failAt {
		return false, errors.New("transient calendar failure")
	}
	return e.stubCalendar.IsSlotFree(ctx, start, end)
}

func TestAvailableTimesFullGrid(t *testing.T) {
	gen := &SlotGenerator{Calendar: newStubCalendar(), Hours: testHours()}

	times := gen.AvailableTimes(context.Background(), "2026-01-06")
	if len(times) != 9 {
		t.Fatalf("expected 9 free slots, got %d: %v", len(times), times)
	}
	if times[0] != "8:00am" || times[8] != "4:00pm" {
		t.Errorf("grid bounds wrong: %v", times)
	}
}

func TestAvailableTimesSkipsBusySlots(t *testing.T) {
	cal := newStubCalendar()
	cal.markBusy(time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC))
	gen := &SlotGenerator{Calendar: cal, Hours: testHours()}

	times := gen.AvailableTimes(context.Background(), "2026-01-06")
	if len(times) != 8 {
		t.Fatalf("expected 8 free slots, got %d: %v", len(times), times)
	}
	for _, label := range times {
		if label == "10:00am" {
			t.Error("busy slot listed as free")
		}
	}
}

func TestAvailableTimesTreatsCheckErrorAsOccupied(t *testing.T) {
	cal := &errOnceCalendar{
		stubCalendar: newStubCalendar(),
		failAt:       time.Date(2026, 1, 6, 9, 0, 0, 0, time.UTC).Format(time.RFC3339),
	}
	gen := &SlotGenerator{Calendar: cal, Hours: testHours()}

	times := gen.AvailableTimes(context.Background(), "2026-01-06")
	if len(times) != 8 {
		t.Fatalf("expected the failing slot to be dropped, got %v", times)
	}
	for _, label := range times {
		if label == "9:00am" {
			t.Error("slot with failed check listed as free")
		}
	}
}

func TestAvailableTimesUnparseableDate(t *testing.T) {
	gen := &SlotGenerator{Calendar: newStubCalendar(), Hours: testHours()}

	if times := gen.AvailableTimes(context.Background(), "el martes"); times != nil {
		t.Errorf("expected nil for unparseable date, got %v", times)
	}
}
