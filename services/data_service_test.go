package services

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"salaomovel-backend/models"

	"github.com/google/uuid"
)

// memStore is an in-memory Store for tests, same contract as the file
// store: JSON round-trip, lazy default on first read.
type memStore struct {
	data map[string]json.RawMessage
}

func newMemStore() *memStore {
	return &memStore{data: map[string]json.RawMessage{}}
}

func (s *memStore) Get(key string, out any, factory func() any) error {
	raw, ok := s.data[key]
	if !ok {
		def, err := json.Marshal(factory())
		if err != nil {
			return err
		}
		s.data[key] = def
		raw = def
	}
	return json.Unmarshal(raw, out)
}

func (s *memStore) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.data[key] = raw
	return nil
}

func newTestData(t *testing.T) *DataService {
	t.Helper()
	return NewDataService(newMemStore())
}

func mustAddClient(t *testing.T, svc *DataService, name string) models.Client {
	t.Helper()
	c, err := svc.AddClient(name, "11 91234-5678", "", "")
	if err != nil {
		t.Fatalf("AddClient(%q): %v", name, err)
	}
	return c
}

func mustAddAppointment(t *testing.T, svc *DataService, a models.Appointment) models.Appointment {
	t.Helper()
	added, err := svc.AddAppointment(a)
	if err != nil {
		t.Fatalf("AddAppointment: %v", err)
	}
	return added
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func ptr(v float64) *float64 { return &v }

func TestClientAggregatesFollowAppointments(t *testing.T) {
	svc := newTestData(t)
	ana := mustAddClient(t, svc, "Ana")

	// completed, valued appointment moves count and last date
	a1 := mustAddAppointment(t, svc, models.Appointment{
		ClientID:     ana.ID,
		Date:         day(2024, time.January, 10),
		Location:     models.LocationSalon,
		Status:       models.StatusCompleted,
		ServiceValue: ptr(50),
	})

	got, _ := svc.GetClientByID(ana.ID)
	if got.ServiceCount != 1 {
		t.Fatalf("serviceCount = %d, want 1", got.ServiceCount)
	}
	if got.LastServiceDate == nil || !got.LastServiceDate.Equal(a1.Date) {
		t.Fatalf("lastServiceDate = %v, want %v", got.LastServiceDate, a1.Date)
	}

	// pending appointment leaves aggregates untouched
	a2 := mustAddAppointment(t, svc, models.Appointment{
		ClientID: ana.ID,
		Date:     day(2024, time.February, 5),
		Location: models.LocationHome,
		Status:   models.StatusPending,
	})
	got, _ = svc.GetClientByID(ana.ID)
	if got.ServiceCount != 1 || !got.LastServiceDate.Equal(a1.Date) {
		t.Fatalf("pending appointment changed aggregates: count=%d last=%v", got.ServiceCount, got.LastServiceDate)
	}

	// completing it with a value moves both aggregates
	a2.Status = models.StatusCompleted
	a2.ServiceValue = ptr(30)
	if _, err := svc.UpdateAppointment(a2); err != nil {
		t.Fatalf("UpdateAppointment: %v", err)
	}
	got, _ = svc.GetClientByID(ana.ID)
	if got.ServiceCount != 2 || !got.LastServiceDate.Equal(a2.Date) {
		t.Fatalf("after completion: count=%d last=%v", got.ServiceCount, got.LastServiceDate)
	}

	// deleting the most recent completed appointment falls back to the
	// next most recent date, not to nothing
	if err := svc.DeleteAppointment(a2.ID); err != nil {
		t.Fatalf("DeleteAppointment: %v", err)
	}
	got, _ = svc.GetClientByID(ana.ID)
	if got.ServiceCount != 1 {
		t.Fatalf("serviceCount after delete = %d, want 1", got.ServiceCount)
	}
	if got.LastServiceDate == nil || !got.LastServiceDate.Equal(a1.Date) {
		t.Fatalf("lastServiceDate after delete = %v, want %v", got.LastServiceDate, a1.Date)
	}

	// deleting the last one clears the history
	if err := svc.DeleteAppointment(a1.ID); err != nil {
		t.Fatalf("DeleteAppointment: %v", err)
	}
	got, _ = svc.GetClientByID(ana.ID)
	if got.ServiceCount != 0 || got.LastServiceDate != nil {
		t.Fatalf("after deleting all: count=%d last=%v", got.ServiceCount, got.LastServiceDate)
	}
}

func TestDeleteClientCascades(t *testing.T) {
	svc := newTestData(t)
	ana := mustAddClient(t, svc, "Ana")
	bia := mustAddClient(t, svc, "Bia")

	mustAddAppointment(t, svc, models.Appointment{
		ClientID: ana.ID, Date: day(2024, time.March, 1),
		Location: models.LocationSalon, Status: models.StatusCompleted, ServiceValue: ptr(40),
	})
	kept := mustAddAppointment(t, svc, models.Appointment{
		ClientID: bia.ID, Date: day(2024, time.March, 2),
		Location: models.LocationSalon, Status: models.StatusCompleted, ServiceValue: ptr(60),
	})

	if err := svc.DeleteClient(ana.ID); err != nil {
		t.Fatalf("DeleteClient: %v", err)
	}

	if _, err := svc.GetClientByID(ana.ID); !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("client survived delete: %v", err)
	}
	apps, err := svc.Appointments()
	if err != nil {
		t.Fatalf("Appointments: %v", err)
	}
	if len(apps) != 1 || apps[0].ID != kept.ID {
		t.Fatalf("cascade left wrong appointments: %v", apps)
	}
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to models.AppointmentStatus
		ok       bool
	}{
		{models.StatusPending, models.StatusConfirmed, true},
		{models.StatusPending, models.StatusCompleted, true},
		{models.StatusPending, models.StatusCancelled, true},
		{models.StatusPending, models.StatusMissed, false},
		{models.StatusConfirmed, models.StatusCompleted, true},
		{models.StatusConfirmed, models.StatusMissed, true},
		{models.StatusConfirmed, models.StatusPending, false},
		{models.StatusCompleted, models.StatusPending, true}, // explicit revert
		{models.StatusCompleted, models.StatusCancelled, false},
		{models.StatusCancelled, models.StatusPending, false},
		{models.StatusMissed, models.StatusCompleted, false},
		{models.StatusMissed, models.StatusMissed, true}, // no-op
	}
	for _, tt := range tests {
		if got := models.CanTransition(tt.from, tt.to); got != tt.ok {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.ok)
		}
	}
}

func TestSetStatusEnforcesStateMachine(t *testing.T) {
	svc := newTestData(t)
	ana := mustAddClient(t, svc, "Ana")
	a := mustAddAppointment(t, svc, models.Appointment{
		ClientID: ana.ID, Date: day(2024, time.April, 1),
		Location: models.LocationHome, Status: models.StatusPending,
	})

	if _, err := svc.SetStatus(a.ID, models.StatusMissed); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("pending -> missed accepted: %v", err)
	}

	if _, err := svc.SetStatus(a.ID, models.StatusConfirmed); err != nil {
		t.Fatalf("pending -> confirmed: %v", err)
	}
	if _, err := svc.SetStatus(a.ID, models.StatusCompleted); err != nil {
		t.Fatalf("confirmed -> completed: %v", err)
	}
	// revert path
	if _, err := svc.SetStatus(a.ID, models.StatusPending); err != nil {
		t.Fatalf("completed -> pending revert: %v", err)
	}

	got, _ := svc.GetClientByID(ana.ID)
	if got.ServiceCount != 0 {
		t.Fatalf("revert left serviceCount = %d, want 0", got.ServiceCount)
	}
}

func TestUpdateAppointmentMovesBetweenClients(t *testing.T) {
	svc := newTestData(t)
	ana := mustAddClient(t, svc, "Ana")
	bia := mustAddClient(t, svc, "Bia")

	a := mustAddAppointment(t, svc, models.Appointment{
		ClientID: ana.ID, Date: day(2024, time.May, 3),
		Location: models.LocationSalon, Status: models.StatusCompleted, ServiceValue: ptr(55),
	})

	a.ClientID = bia.ID
	if _, err := svc.UpdateAppointment(a); err != nil {
		t.Fatalf("UpdateAppointment: %v", err)
	}

	gotAna, _ := svc.GetClientByID(ana.ID)
	gotBia, _ := svc.GetClientByID(bia.ID)
	if gotAna.ServiceCount != 0 || gotAna.LastServiceDate != nil {
		t.Fatalf("previous client kept history: count=%d last=%v", gotAna.ServiceCount, gotAna.LastServiceDate)
	}
	if gotBia.ServiceCount != 1 || gotBia.LastServiceDate == nil {
		t.Fatalf("new client missing history: count=%d last=%v", gotBia.ServiceCount, gotBia.LastServiceDate)
	}
}

func TestUpdateClientIgnoresCallerAggregates(t *testing.T) {
	svc := newTestData(t)
	ana := mustAddClient(t, svc, "Ana")
	mustAddAppointment(t, svc, models.Appointment{
		ClientID: ana.ID, Date: day(2024, time.June, 1),
		Location: models.LocationSalon, Status: models.StatusCompleted, ServiceValue: ptr(45),
	})

	tampered, _ := svc.GetClientByID(ana.ID)
	tampered.Name = "Ana Clara"
	tampered.ServiceCount = 99
	tampered.LastServiceDate = nil

	updated, err := svc.UpdateClient(tampered)
	if err != nil {
		t.Fatalf("UpdateClient: %v", err)
	}
	if updated.Name != "Ana Clara" {
		t.Fatalf("name not updated: %q", updated.Name)
	}
	if updated.ServiceCount != 1 || updated.LastServiceDate == nil {
		t.Fatalf("caller-supplied aggregates were trusted: count=%d last=%v",
			updated.ServiceCount, updated.LastServiceDate)
	}
}

func TestReferenceErrors(t *testing.T) {
	svc := newTestData(t)
	missing := uuid.New()

	if _, err := svc.GetClientByID(missing); !errors.Is(err, ErrClientNotFound) {
		t.Errorf("GetClientByID: %v", err)
	}
	if err := svc.DeleteClient(missing); !errors.Is(err, ErrClientNotFound) {
		t.Errorf("DeleteClient: %v", err)
	}
	if err := svc.DeleteAppointment(missing); !errors.Is(err, ErrAppointmentNotFound) {
		t.Errorf("DeleteAppointment: %v", err)
	}
	if _, err := svc.AddAppointment(models.Appointment{
		ClientID: missing, Date: day(2024, time.July, 1),
		Location: models.LocationSalon, Status: models.StatusPending,
	}); !errors.Is(err, ErrClientNotFound) {
		t.Errorf("AddAppointment to missing client: %v", err)
	}
}

func TestValidationRejectsBeforeMutation(t *testing.T) {
	svc := newTestData(t)
	if _, err := svc.AddClient("   ", "", "", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank name accepted: %v", err)
	}

	ana := mustAddClient(t, svc, "Ana")
	neg := -1.0
	if _, err := svc.AddAppointment(models.Appointment{
		ClientID: ana.ID, Date: day(2024, time.July, 2),
		Location: models.LocationSalon, Status: models.StatusPending, ServiceValue: &neg,
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("negative value accepted: %v", err)
	}
	apps, _ := svc.Appointments()
	if len(apps) != 0 {
		t.Fatalf("rejected appointment was stored")
	}
}

func TestAppointmentOrderings(t *testing.T) {
	svc := newTestData(t)
	ana := mustAddClient(t, svc, "Ana")
	for _, d := range []time.Time{
		day(2024, time.March, 5), day(2024, time.March, 1), day(2024, time.March, 9),
	} {
		mustAddAppointment(t, svc, models.Appointment{
			ClientID: ana.ID, Date: d,
			Location: models.LocationSalon, Status: models.StatusPending,
		})
	}

	desc, _ := svc.Appointments()
	for i := 1; i < len(desc); i++ {
		if desc[i].Date.After(desc[i-1].Date) {
			t.Fatalf("Appointments not date descending: %v", desc)
		}
	}
	asc, _ := svc.Agenda()
	for i := 1; i < len(asc); i++ {
		if asc[i].Date.Before(asc[i-1].Date) {
			t.Fatalf("Agenda not date ascending: %v", asc)
		}
	}
}
