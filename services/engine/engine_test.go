package engine

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/itelsaia/agente-itelsa-ia/models"
	"github.com/itelsaia/agente-itelsa-ia/services/calendar"
	"github.com/itelsaia/agente-itelsa-ia/services/intent"
	"github.com/itelsaia/agente-itelsa-ia/services/schedule"
)

// Fixed reference instant: Monday 2026-01-05 at 10:00.
var testNow = time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)

// --- fakes -----------------------------------------------------------------

type memSessions struct {
	data map[string]*models.Session
}

func newMemSessions() *memSessions {
	return &memSessions{data: make(map[string]*models.Session)}
}

func (m *memSessions) Get(ctx context.Context, userID string) (*models.Session, error) {
	s, ok := m.data[userID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *memSessions) Set(ctx context.Context, userID string, session *models.Session) error {
	cp := *session
	m.data[userID] = &cp
	return nil
}

func (m *memSessions) Clear(ctx context.Context, userID string) error {
	delete(m.data, userID)
	return nil
}

type fakeUsers struct {
	profiles map[string]models.UserProfile
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{profiles: make(map[string]models.UserProfile)}
}

func (f *fakeUsers) FindByEmail(email string) (*models.UserProfile, error) {
	p, ok := f.profiles[email]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeUsers) Save(profile *models.UserProfile) error {
	if profile.ID == "" {
		profile.ID = fmt.Sprintf("user-%d", len(f.profiles)+1)
	}
	f.profiles[profile.Email] = *profile
	return nil
}

type fakeAppointments struct {
	records []models.AppointmentRecord
	nextID  int
}

func (f *fakeAppointments) OutcomeState(email string) (models.OutcomeState, error) {
	var state models.OutcomeState
	for _, rec := range f.records {
		if rec.Email != email {
			continue
		}
		if rec.IsDecline() {
			state.HasDecline = true
		} else {
			state.HasBooking = true
		}
		state.LastRecordID = rec.ID
		state.LastIsDecline = rec.IsDecline()
	}
	return state, nil
}

func (f *fakeAppointments) Append(record *models.AppointmentRecord) error {
	f.nextID++
	if record.ID == "" {
		record.ID = fmt.Sprintf("rec-%d", f.nextID)
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeAppointments) Update(id string, record *models.AppointmentRecord) error {
	for i := range f.records {
		if f.records[i].ID == id {
			record.ID = id
			f.records[i] = *record
			return nil
		}
	}
	return fmt.Errorf("record %s not found", id)
}

func (f *fakeAppointments) ListByUser(email string) ([]models.AppointmentRecord, error) {
	var out []models.AppointmentRecord
	for _, rec := range f.records {
		if rec.Email == email {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeAppointments) Stats() (models.AppointmentStats, error) {
	return models.AppointmentStats{TotalRecords: len(f.records)}, nil
}

type fakeCalendar struct {
	busy    map[string]bool
	created []calendar.Event
}

func newFakeCalendar() *fakeCalendar {
	return &fakeCalendar{busy: make(map[string]bool)}
}

func (f *fakeCalendar) markBusy(start time.Time) {
	f.busy[start.Format(time.RFC3339)] = true
}

func (f *fakeCalendar) IsSlotFree(ctx context.Context, start, end time.Time) (bool, error) {
	return !f.busy[start.Format(time.RFC3339)], nil
}

func (f *fakeCalendar) CreateEvent(ctx context.Context, evt calendar.Event) error {
	f.created = append(f.created, evt)
	f.busy[evt.Start.Format(time.RFC3339)] = true
	return nil
}

func (f *fakeCalendar) Verify(ctx context.Context) error { return nil }

type fakeReminders struct {
	payloads []models.ReminderPayload
}

func (f *fakeReminders) ScheduleReminder(payload models.ReminderPayload, fireAt time.Time) error {
	f.payloads = append(f.payloads, payload)
	return nil
}

// --- helpers ---------------------------------------------------------------

type testEnv struct {
	engine       *DefaultEngine
	sessions     *memSessions
	users        *fakeUsers
	appointments *fakeAppointments
	calendar     *fakeCalendar
	reminders    *fakeReminders
}

func newTestEnv() *testEnv {
	hours := schedule.BusinessHours{
		Opening:  8,
		Closing:  17,
		Days:     []int{1, 2, 3, 4, 5},
		Location: time.UTC,
	}
	env := &testEnv{
		sessions:     newMemSessions(),
		users:        newFakeUsers(),
		appointments: &fakeAppointments{},
		calendar:     newFakeCalendar(),
		reminders:    &fakeReminders{},
	}
	slots := &schedule.SlotGenerator{Calendar: env.calendar, Hours: hours}
	env.engine = &DefaultEngine{
		Sessions:     env.sessions,
		Users:        env.users,
		Appointments: env.appointments,
		Calendar:     env.calendar,
		Checker:      &schedule.Checker{Calendar: env.calendar, Hours: hours, Slots: slots},
		Slots:        slots,
		Intents:      intent.NewKeywordClassifier(),
		Hours:        hours,
		Reminders:    env.reminders,
		SessionTTL:   30 * time.Minute,
		Now:          func() time.Time { return testNow },
	}
	return env
}

func testProfile() models.UserProfile {
	return models.UserProfile{
		ID:              "user-1",
		FullName:        "Ana Pérez",
		Email:           "ana@example.com",
		Phone:           "3001234567",
		ServiceInterest: "Automatización",
	}
}

// startConversing seeds an active session already past registration.
func (env *testEnv) startConversing(userID string) {
	env.sessions.data[userID] = &models.Session{
		UserID:       userID,
		State:        models.StateConversing,
		Profile:      testProfile(),
		LastActivity: testNow,
	}
}

func (env *testEnv) session(userID string) *models.Session {
	return env.sessions.data[userID]
}

// --- tests -----------------------------------------------------------------

func TestInitialTurnAsksForContact(t *testing.T) {
	env := newTestEnv()

	reply := env.engine.HandleTurn(context.Background(), "u1", "hola")
	if reply != msgAskContact {
		t.Errorf("reply = %q, want contact prompt", reply)
	}
}

func TestRegistrationFlow(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	turns := []struct {
		text string
		want string // substring the reply must contain
	}{
		{"hola, soy nueva", "correo"},
		{"mi correo es nueva@example.com", "nombre completo"},
		{"Laura Gómez", "número de contacto"},
		{"3109876543", "servicio"},
		{"Desarrollo web", "comentario"},
		{"Los contacté por recomendación", "¿Están correctos?"},
	}
	for _, turn := range turns {
		reply := env.engine.HandleTurn(ctx, "u1", turn.text)
		if !strings.Contains(reply, turn.want) {
			t.Fatalf("turn %q: reply %q does not mention %q", turn.text, reply, turn.want)
		}
	}

	reply := env.engine.HandleTurn(ctx, "u1", "sí")
	if !strings.Contains(reply, "Quedaste registrado") {
		t.Fatalf("confirmation reply = %q", reply)
	}

	saved, err := env.users.FindByEmail("nueva@example.com")
	if err != nil || saved == nil {
		t.Fatal("profile was not persisted")
	}
	if saved.FullName != "Laura Gómez" || saved.Phone != "3109876543" {
		t.Errorf("persisted profile wrong: %+v", saved)
	}
	if got := env.session("u1").State; got != models.StateConversing {
		t.Errorf("state = %q, want conversing", got)
	}
}

func TestProfileRejectionRestartsRegistration(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.engine.HandleTurn(ctx, "u1", "nueva@example.com")
	env.engine.HandleTurn(ctx, "u1", "Laura Gómez")
	env.engine.HandleTurn(ctx, "u1", "3109876543")
	env.engine.HandleTurn(ctx, "u1", "Desarrollo web")
	env.engine.HandleTurn(ctx, "u1", "ninguno")

	reply := env.engine.HandleTurn(ctx, "u1", "no")
	if reply != msgProfileRetry {
		t.Fatalf("reply = %q, want retry prompt", reply)
	}

	s := env.session("u1")
	if s.State != models.StateRegistering {
		t.Errorf("state = %q, want registering", s.State)
	}
	if s.Profile.FullName != "" || s.Profile.Email != "nueva@example.com" {
		t.Errorf("profile should keep only the email, got %+v", s.Profile)
	}
}

func TestReturningUserGreeting(t *testing.T) {
	env := newTestEnv()
	env.users.profiles["ana@example.com"] = testProfile()

	reply := env.engine.HandleTurn(context.Background(), "u1", "mi correo es ana@example.com")
	if !strings.Contains(reply, "Ana Pérez") {
		t.Errorf("greeting %q does not name the user", reply)
	}
	if strings.Contains(reply, "no pudimos concretar") {
		t.Error("greeting used the second-chance variant without a decline on file")
	}
	if got := env.session("u1").State; got != models.StateConversing {
		t.Errorf("state = %q, want conversing", got)
	}
}

func TestSecondChanceGreeting(t *testing.T) {
	env := newTestEnv()
	env.users.profiles["ana@example.com"] = testProfile()
	env.appointments.records = []models.AppointmentRecord{{
		ID:    "rec-1",
		Email: "ana@example.com",
		Date:  models.NoSlot, TimeLabel: models.NoSlot,
		Notes: models.NoteDeclined,
	}}

	reply := env.engine.HandleTurn(context.Background(), "u1", "ana@example.com")
	if !strings.Contains(reply, "no pudimos concretar") {
		t.Errorf("expected second-chance greeting, got %q", reply)
	}
	if !env.session("u1").SecondChance {
		t.Error("session second-chance flag not set")
	}
}

func TestBookingHappyPath(t *testing.T) {
	env := newTestEnv()
	env.startConversing("u1")

	reply := env.engine.HandleTurn(context.Background(), "u1", "mañana a las 3pm")
	if !strings.Contains(reply, "quedó agendada") {
		t.Fatalf("reply = %q, want confirmation", reply)
	}
	if !strings.Contains(reply, "martes 6 de enero") || !strings.Contains(reply, "3:00pm") {
		t.Errorf("confirmation missing friendly date or time: %q", reply)
	}

	if len(env.appointments.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(env.appointments.records))
	}
	rec := env.appointments.records[0]
	if rec.Date != "2026-01-06" || rec.TimeLabel != "3:00pm" || rec.Notes != models.NoteBooked {
		t.Errorf("record wrong: %+v", rec)
	}

	if len(env.calendar.created) != 1 {
		t.Fatalf("expected 1 calendar event, got %d", len(env.calendar.created))
	}
	evt := env.calendar.created[0]
	if evt.Summary != "Asesoría - Ana Pérez" {
		t.Errorf("event summary = %q", evt.Summary)
	}
	if evt.AttendeeEmail != "ana@example.com" {
		t.Errorf("attendee = %q", evt.AttendeeEmail)
	}
	if evt.End.Sub(evt.Start) != time.Hour {
		t.Errorf("event length = %v, want 1h", evt.End.Sub(evt.Start))
	}

	if len(env.reminders.payloads) != 1 {
		t.Fatalf("expected 1 reminder, got %d", len(env.reminders.payloads))
	}
	if env.reminders.payloads[0].RecordID != rec.ID {
		t.Error("reminder not linked to the booked record")
	}
}

func TestConflictOffersAlternativesAndOrdinalSelection(t *testing.T) {
	env := newTestEnv()
	env.startConversing("u1")
	env.calendar.markBusy(time.Date(2026, 1, 6, 15, 0, 0, 0, time.UTC))
	ctx := context.Background()

	reply := env.engine.HandleTurn(ctx, "u1", "mañana a las 3pm")
	if !strings.Contains(reply, "ocupado") {
		t.Fatalf("reply = %q, want conflict notice", reply)
	}

	pending := env.session("u1").Pending
	if pending == nil {
		t.Fatal("no pending options stored")
	}
	want := []string{"8:00am", "9:00am", "10:00am", "11:00am"}
	if len(pending.Times) != len(want) {
		t.Fatalf("pending times = %v, want %v", pending.Times, want)
	}
	for i, label := range want {
		if pending.Times[i] != label {
			t.Fatalf("pending times = %v, want %v", pending.Times, want)
		}
	}

	reply = env.engine.HandleTurn(ctx, "u1", "opción 2")
	if !strings.Contains(reply, "quedó agendada") {
		t.Fatalf("selection reply = %q", reply)
	}
	rec := env.appointments.records[len(env.appointments.records)-1]
	if rec.Date != "2026-01-06" || rec.TimeLabel != "9:00am" {
		t.Errorf("booked wrong slot: %+v", rec)
	}
	if env.session("u1").Pending != nil {
		t.Error("pending options not cleared after booking")
	}
}

func TestBareNumberSelectsPendingOption(t *testing.T) {
	env := newTestEnv()
	env.startConversing("u1")
	env.calendar.markBusy(time.Date(2026, 1, 6, 15, 0, 0, 0, time.UTC))
	ctx := context.Background()

	env.engine.HandleTurn(ctx, "u1", "mañana a las 3pm")
	reply := env.engine.HandleTurn(ctx, "u1", "1")
	if !strings.Contains(reply, "quedó agendada") {
		t.Fatalf("reply = %q", reply)
	}
	rec := env.appointments.records[len(env.appointments.records)-1]
	if rec.TimeLabel != "8:00am" {
		t.Errorf("booked %q, want 8:00am", rec.TimeLabel)
	}
}

func TestOutOfRangeSelectionRepeatsOptions(t *testing.T) {
	env := newTestEnv()
	env.startConversing("u1")
	env.calendar.markBusy(time.Date(2026, 1, 6, 15, 0, 0, 0, time.UTC))
	ctx := context.Background()

	env.engine.HandleTurn(ctx, "u1", "mañana a las 3pm")
	reply := env.engine.HandleTurn(ctx, "u1", "10")
	if !strings.Contains(reply, "opciones") {
		t.Fatalf("reply = %q, want the options repeated", reply)
	}
	for _, rec := range env.appointments.records {
		if !rec.IsDecline() {
			t.Error("out-of-range selection must not book anything")
		}
	}
	if env.session("u1").Pending == nil {
		t.Error("pending options must survive an unmatched reply")
	}
}

func TestNonBusinessDayMovesOptionsToNextBusinessDay(t *testing.T) {
	env := newTestEnv()
	env.startConversing("u1")

	// 2026-01-10 is a Saturday.
	reply := env.engine.HandleTurn(context.Background(), "u1", "2026-01-10 a las 10:00")
	if !strings.Contains(reply, "día hábil") {
		t.Fatalf("reply = %q, want non-business-day notice", reply)
	}
	pending := env.session("u1").Pending
	if pending == nil {
		t.Fatal("no pending options stored")
	}
	if pending.Date != "2026-01-12" {
		t.Errorf("pending date = %q, want the following Monday", pending.Date)
	}
}

func TestSaturdayByNameRedirectsToMonday(t *testing.T) {
	env := newTestEnv()
	env.startConversing("u1")

	reply := env.engine.HandleTurn(context.Background(), "u1", "sábado a las 10am")
	if !strings.Contains(reply, "día hábil") {
		t.Fatalf("reply = %q, want non-business-day notice", reply)
	}
	pending := env.session("u1").Pending
	if pending == nil {
		t.Fatal("no pending options stored")
	}
	if pending.Date != "2026-01-12" {
		t.Errorf("pending date = %q, want the following Monday", pending.Date)
	}
}

func TestBookingRequestIntentAsksForSlot(t *testing.T) {
	env := newTestEnv()
	env.startConversing("u1")

	reply := env.engine.HandleTurn(context.Background(), "u1", "quiero agendar una cita")
	if reply != msgAskSlot {
		t.Errorf("reply = %q, want slot prompt", reply)
	}
	if !env.session("u1").AskedForSlot {
		t.Error("asked-for-slot flag not set")
	}
}

func TestDeclineRecordedOnce(t *testing.T) {
	env := newTestEnv()
	env.startConversing("u1")
	ctx := context.Background()

	reply := env.engine.HandleTurn(ctx, "u1", "no me interesa")
	if reply != msgDeclineClose {
		t.Fatalf("reply = %q, want decline close", reply)
	}
	if len(env.appointments.records) != 1 {
		t.Fatalf("expected 1 decline record, got %d", len(env.appointments.records))
	}
	rec := env.appointments.records[0]
	if !rec.IsDecline() || rec.Notes != models.NoteDeclined || rec.Date != models.NoSlot {
		t.Errorf("decline record wrong: %+v", rec)
	}
	if !env.session("u1").SecondChance {
		t.Error("second-chance flag not set after decline")
	}

	env.engine.HandleTurn(ctx, "u1", "no gracias")
	if len(env.appointments.records) != 1 {
		t.Errorf("second decline must not append another record, got %d", len(env.appointments.records))
	}
}

func TestSecondChanceRewritesDeclineInPlace(t *testing.T) {
	env := newTestEnv()
	env.startConversing("u1")
	env.appointments.records = []models.AppointmentRecord{{
		ID:       "rec-1",
		FullName: "Ana Pérez",
		Email:    "ana@example.com",
		Date:     models.NoSlot, TimeLabel: models.NoSlot,
		Notes: models.NoteDeclined,
	}}

	reply := env.engine.HandleTurn(context.Background(), "u1", "mañana a las 3pm")
	if !strings.Contains(reply, "quedó agendada") {
		t.Fatalf("reply = %q", reply)
	}

	if len(env.appointments.records) != 1 {
		t.Fatalf("second-chance booking must update in place, got %d records", len(env.appointments.records))
	}
	rec := env.appointments.records[0]
	if rec.ID != "rec-1" {
		t.Errorf("record identity changed: %q", rec.ID)
	}
	if rec.Notes != models.NoteSecondChance {
		t.Errorf("notes = %q, want second-chance annotation", rec.Notes)
	}
	if rec.Date != "2026-01-06" || rec.TimeLabel != "3:00pm" {
		t.Errorf("record slot wrong: %+v", rec)
	}
}

func TestBookingAfterPriorSuccessAppends(t *testing.T) {
	env := newTestEnv()
	env.startConversing("u1")
	env.appointments.records = []models.AppointmentRecord{
		{ID: "rec-1", Email: "ana@example.com", Date: models.NoSlot, TimeLabel: models.NoSlot, Notes: models.NoteDeclined},
		{ID: "rec-2", Email: "ana@example.com", Date: "2025-12-01", TimeLabel: "9:00am", Notes: models.NoteBooked},
	}

	env.engine.HandleTurn(context.Background(), "u1", "mañana a las 3pm")
	if len(env.appointments.records) != 3 {
		t.Fatalf("expected a new record appended, got %d", len(env.appointments.records))
	}
	if env.appointments.records[2].Notes != models.NoteBooked {
		t.Errorf("notes = %q, want plain booking", env.appointments.records[2].Notes)
	}
}

func TestSessionExpiryRestartsConversation(t *testing.T) {
	env := newTestEnv()
	env.sessions.data["u1"] = &models.Session{
		UserID:       "u1",
		State:        models.StateConversing,
		Profile:      testProfile(),
		LastActivity: testNow.Add(-time.Hour),
	}

	reply := env.engine.HandleTurn(context.Background(), "u1", "hola")
	if reply != msgAskContact {
		t.Errorf("reply = %q, want a fresh contact prompt", reply)
	}
	if got := env.session("u1").State; got != models.StateInitial {
		t.Errorf("state = %q, want initial", got)
	}
}

func TestDoubleBookingSameSlotConflicts(t *testing.T) {
	env := newTestEnv()
	env.startConversing("u1")
	ctx := context.Background()

	first := env.engine.HandleTurn(ctx, "u1", "mañana a las 3pm")
	if !strings.Contains(first, "quedó agendada") {
		t.Fatalf("first booking failed: %q", first)
	}

	env.startConversing("u2")
	second := env.engine.HandleTurn(ctx, "u2", "mañana a las 3pm")
	if !strings.Contains(second, "ocupado") {
		t.Errorf("second booking of the same slot should conflict, got %q", second)
	}
}
