// File: services/calendar/google.go
package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/itelsaia/agente-itelsa-ia/utils"

	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleCalendar implements Resource on top of the Google Calendar API.
type GoogleCalendar struct {
	svc        *gcal.Service
	calendarID string
	timezone   string
}

// NewGoogleCalendar acquires a calendar client once for the process lifetime
// using a service-account credentials file.
func NewGoogleCalendar(ctx context.Context, credentialsFile, calendarID, timezone string) (*GoogleCalendar, error) {
	svc, err := gcal.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize calendar service: %w", err)
	}
	return &GoogleCalendar{
		svc:        svc,
		calendarID: calendarID,
		timezone:   timezone,
	}, nil
}

// IsSlotFree lists events overlapping [start, end) and reports whether the
// window is clear.
func (g *GoogleCalendar) IsSlotFree(ctx context.Context, start, end time.Time) (bool, error) {
	events, err := g.svc.Events.List(g.calendarID).
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return false, fmt.Errorf("failed to list calendar events: %w", err)
	}
	free := len(events.Items) == 0
	if !free {
		utils.GetLogger().Debug("slot occupied",
			zap.Time("start", start), zap.Int("events", len(events.Items)))
	}
	return free, nil
}

// CreateEvent inserts an event with attendee invitation and default
// email/popup reminders, matching the advisory booking format.
func (g *GoogleCalendar) CreateEvent(ctx context.Context, evt Event) error {
	body := &gcal.Event{
		Summary:     evt.Summary,
		Description: evt.Description,
		Start: &gcal.EventDateTime{
			DateTime: evt.Start.Format(time.RFC3339),
			TimeZone: g.timezone,
		},
		End: &gcal.EventDateTime{
			DateTime: evt.End.Format(time.RFC3339),
			TimeZone: g.timezone,
		},
		Attendees: []*gcal.EventAttendee{
			{Email: evt.AttendeeEmail},
		},
		Reminders: &gcal.EventReminders{
			UseDefault: false,
			Overrides: []*gcal.EventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 60},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}

	if _, err := g.svc.Events.Insert(g.calendarID, body).
		SendUpdates("all").
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("failed to insert calendar event: %w", err)
	}
	return nil
}

// Verify fetches the calendar metadata to confirm connectivity.
func (g *GoogleCalendar) Verify(ctx context.Context) error {
	cal, err := g.svc.Calendars.Get(g.calendarID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to verify calendar connection: %w", err)
	}
	utils.GetLogger().Sugar().Infof("Calendar connection verified: %s", cal.Summary)
	return nil
}
