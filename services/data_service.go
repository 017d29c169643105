// services/data_service.go
package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"salaomovel-backend/config"
	"salaomovel-backend/models"

	"github.com/google/uuid"
)

var (
	ErrClientNotFound      = errors.New("client not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrInvalidTransition   = errors.New("status transition not allowed")
	ErrValidation          = errors.New("validation failed")
)

// DataService owns the client registry and the appointment ledger. It is the
// single write path into both collections: every appointment mutation
// recomputes the affected client's serviceCount and lastServiceDate from the
// resulting appointment set, so the cached aggregates can never drift from
// the projection. Financial records are not stored at all; FinanceService
// derives them from appointments on read.
//
// Mutations are serialized by a mutex. Each collection lives under its own
// store key and is replaced whole on write; there is no atomicity across
// keys, so a crash inside the client-delete cascade can leave appointments
// of a removed client behind. DeleteClient orders its writes to make that
// window harmless for the financial view.
type DataService struct {
	mu    sync.Mutex
	store config.Store
}

func NewDataService(store config.Store) *DataService {
	return &DataService{store: store}
}

func (s *DataService) loadClients() ([]models.Client, error) {
	var clients []models.Client
	err := s.store.Get(config.KeyClients, &clients, func() any { return []models.Client{} })
	return clients, err
}

func (s *DataService) loadAppointments() ([]models.Appointment, error) {
	var apps []models.Appointment
	err := s.store.Get(config.KeyAppointments, &apps, func() any { return []models.Appointment{} })
	return apps, err
}

// Clients returns all clients sorted by name.
func (s *DataService) Clients() ([]models.Client, error) {
	clients, err := s.loadClients()
	if err != nil {
		return nil, err
	}
	sort.Slice(clients, func(i, j int) bool {
		return strings.ToLower(clients[i].Name) < strings.ToLower(clients[j].Name)
	})
	return clients, nil
}

func (s *DataService) GetClientByID(id uuid.UUID) (models.Client, error) {
	clients, err := s.loadClients()
	if err != nil {
		return models.Client{}, err
	}
	for _, c := range clients {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Client{}, ErrClientNotFound
}

// AddClient registers a new client with zeroed service history.
func (s *DataService) AddClient(name, phone, email, notes string) (models.Client, error) {
	if strings.TrimSpace(name) == "" {
		return models.Client{}, fmt.Errorf("%w: name is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	clients, err := s.loadClients()
	if err != nil {
		return models.Client{}, err
	}
	client := models.Client{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Phone:     phone,
		Email:     email,
		Notes:     notes,
		CreatedAt: time.Now(),
	}
	clients = append(clients, client)
	if err := s.store.Set(config.KeyClients, clients); err != nil {
		return models.Client{}, err
	}
	return client, nil
}

// UpdateClient replaces the client's identity fields. The derived aggregates
// are kept from the stored record, never taken from the caller; only
// appointment mutations move them.
func (s *DataService) UpdateClient(updated models.Client) (models.Client, error) {
	if strings.TrimSpace(updated.Name) == "" {
		return models.Client{}, fmt.Errorf("%w: name is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	clients, err := s.loadClients()
	if err != nil {
		return models.Client{}, err
	}
	for i, c := range clients {
		if c.ID != updated.ID {
			continue
		}
		c.Name = strings.TrimSpace(updated.Name)
		c.Phone = updated.Phone
		c.Email = updated.Email
		c.Notes = updated.Notes
		clients[i] = c
		if err := s.store.Set(config.KeyClients, clients); err != nil {
			return models.Client{}, err
		}
		return c, nil
	}
	return models.Client{}, ErrClientNotFound
}

// DeleteClient removes the client and every appointment referencing it. The
// appointment write goes first so the derived financial view never sees
// billable appointments of a client that is already gone.
func (s *DataService) DeleteClient(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clients, err := s.loadClients()
	if err != nil {
		return err
	}
	idx := -1
	for i, c := range clients {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrClientNotFound
	}

	apps, err := s.loadAppointments()
	if err != nil {
		return err
	}
	kept := apps[:0]
	for _, a := range apps {
		if a.ClientID != id {
			kept = append(kept, a)
		}
	}
	if err := s.store.Set(config.KeyAppointments, kept); err != nil {
		return err
	}

	clients = append(clients[:idx], clients[idx+1:]...)
	return s.store.Set(config.KeyClients, clients)
}

// Appointments returns the ledger sorted by date descending (recency view).
func (s *DataService) Appointments() ([]models.Appointment, error) {
	apps, err := s.loadAppointments()
	if err != nil {
		return nil, err
	}
	sortByDateDesc(apps)
	return apps, nil
}

// Agenda returns the ledger sorted by date ascending (agenda view).
func (s *DataService) Agenda() ([]models.Appointment, error) {
	apps, err := s.loadAppointments()
	if err != nil {
		return nil, err
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].Date.Before(apps[j].Date) })
	return apps, nil
}

func (s *DataService) GetAppointmentByID(id uuid.UUID) (models.Appointment, error) {
	apps, err := s.loadAppointments()
	if err != nil {
		return models.Appointment{}, err
	}
	for _, a := range apps {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Appointment{}, ErrAppointmentNotFound
}

// AppointmentsByClient returns one client's appointments, date descending.
func (s *DataService) AppointmentsByClient(clientID uuid.UUID) ([]models.Appointment, error) {
	apps, err := s.loadAppointments()
	if err != nil {
		return nil, err
	}
	out := make([]models.Appointment, 0)
	for _, a := range apps {
		if a.ClientID == clientID {
			out = append(out, a)
		}
	}
	sortByDateDesc(out)
	return out, nil
}

// AddAppointment inserts a new appointment and refreshes the owning client's
// aggregates. Status defaults to pending.
func (s *DataService) AddAppointment(a models.Appointment) (models.Appointment, error) {
	if a.Status == "" {
		a.Status = models.StatusPending
	}
	if err := validateAppointment(&a); err != nil {
		return models.Appointment{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	clients, err := s.loadClients()
	if err != nil {
		return models.Appointment{}, err
	}
	if findClient(clients, a.ClientID) < 0 {
		return models.Appointment{}, ErrClientNotFound
	}

	apps, err := s.loadAppointments()
	if err != nil {
		return models.Appointment{}, err
	}
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	apps = append(apps, a)
	if err := s.store.Set(config.KeyAppointments, apps); err != nil {
		return models.Appointment{}, err
	}

	if err := s.refreshClientAggregates(clients, apps, a.ClientID); err != nil {
		return models.Appointment{}, err
	}
	return a, nil
}

// UpdateAppointment replaces the appointment by id. Status changes must
// follow the state machine. Aggregates are refreshed for the referenced
// client and, when the appointment moved between clients, for the previous
// one as well.
func (s *DataService) UpdateAppointment(updated models.Appointment) (models.Appointment, error) {
	if err := validateAppointment(&updated); err != nil {
		return models.Appointment{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	apps, err := s.loadAppointments()
	if err != nil {
		return models.Appointment{}, err
	}
	idx := -1
	for i, a := range apps {
		if a.ID == updated.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Appointment{}, ErrAppointmentNotFound
	}
	prev := apps[idx]

	if !models.CanTransition(prev.Status, updated.Status) {
		return models.Appointment{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, prev.Status, updated.Status)
	}

	clients, err := s.loadClients()
	if err != nil {
		return models.Appointment{}, err
	}
	if findClient(clients, updated.ClientID) < 0 {
		return models.Appointment{}, ErrClientNotFound
	}

	updated.CreatedAt = prev.CreatedAt
	apps[idx] = updated
	if err := s.store.Set(config.KeyAppointments, apps); err != nil {
		return models.Appointment{}, err
	}

	if err := s.refreshClientAggregates(clients, apps, updated.ClientID); err != nil {
		return models.Appointment{}, err
	}
	if prev.ClientID != updated.ClientID {
		if err := s.refreshClientAggregates(clients, apps, prev.ClientID); err != nil {
			return models.Appointment{}, err
		}
	}
	return updated, nil
}

// SetStatus moves only the appointment's status, through the same
// synchronization as a full update.
func (s *DataService) SetStatus(id uuid.UUID, status models.AppointmentStatus) (models.Appointment, error) {
	a, err := s.GetAppointmentByID(id)
	if err != nil {
		return models.Appointment{}, err
	}
	a.Status = status
	return s.UpdateAppointment(a)
}

// DeleteAppointment removes the appointment and refreshes the owning
// client's aggregates against the reduced set, so lastServiceDate falls back
// to the next most recent completed appointment rather than going empty.
func (s *DataService) DeleteAppointment(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	apps, err := s.loadAppointments()
	if err != nil {
		return err
	}
	idx := -1
	for i, a := range apps {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrAppointmentNotFound
	}
	clientID := apps[idx].ClientID
	apps = append(apps[:idx], apps[idx+1:]...)
	if err := s.store.Set(config.KeyAppointments, apps); err != nil {
		return err
	}

	clients, err := s.loadClients()
	if err != nil {
		return err
	}
	return s.refreshClientAggregates(clients, apps, clientID)
}

// refreshClientAggregates recomputes serviceCount and lastServiceDate for
// one client from the completed appointments in apps and persists the client
// list when something changed. A missing client is a no-op: the appointment
// became orphaned (display falls back to unknown) and there is nothing to
// refresh. Caller holds the mutex.
func (s *DataService) refreshClientAggregates(clients []models.Client, apps []models.Appointment, clientID uuid.UUID) error {
	idx := findClient(clients, clientID)
	if idx < 0 {
		return nil
	}

	count := 0
	var last *time.Time
	for _, a := range apps {
		if a.ClientID != clientID || a.Status != models.StatusCompleted {
			continue
		}
		count++
		if last == nil || a.Date.After(*last) {
			d := a.Date
			last = &d
		}
	}

	c := clients[idx]
	if c.ServiceCount == count && equalTimePtr(c.LastServiceDate, last) {
		return nil
	}
	c.ServiceCount = count
	c.LastServiceDate = last
	clients[idx] = c
	return s.store.Set(config.KeyClients, clients)
}

func validateAppointment(a *models.Appointment) error {
	if a.ClientID == uuid.Nil {
		return fmt.Errorf("%w: clientId is required", ErrValidation)
	}
	if a.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	if !models.ValidStatus(a.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, a.Status)
	}
	if a.Location != models.LocationHome && a.Location != models.LocationSalon {
		return fmt.Errorf("%w: unknown location %q", ErrValidation, a.Location)
	}
	if a.ServiceValue != nil && *a.ServiceValue < 0 {
		return fmt.Errorf("%w: serviceValue must not be negative", ErrValidation)
	}
	return nil
}

func findClient(clients []models.Client, id uuid.UUID) int {
	for i, c := range clients {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func sortByDateDesc(apps []models.Appointment) {
	sort.Slice(apps, func(i, j int) bool { return apps[i].Date.After(apps[j].Date) })
}
