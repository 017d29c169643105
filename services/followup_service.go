// services/followup_service.go
package services

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"salaomovel-backend/config"
	"salaomovel-backend/models"
	"salaomovel-backend/utils"
)

// FollowUpService computes which clients are overdue for a return visit and
// renders the reminder message for them.
type FollowUpService struct {
	store config.Store
	data  *DataService
}

func NewFollowUpService(store config.Store, data *DataService) *FollowUpService {
	return &FollowUpService{store: store, data: data}
}

// OverdueClient pairs a client with how long ago they were last served and
// the ready-to-send reminder. DaysSince is nil for clients that were never
// served, which are treated as overdue from day one.
type OverdueClient struct {
	models.Client
	DaysSince    *int   `json:"daysSince,omitempty"`
	Message      string `json:"message"`
	WhatsAppLink string `json:"whatsAppLink"`
}

func (s *FollowUpService) Settings() (models.FollowUpSettings, error) {
	var settings models.FollowUpSettings
	err := s.store.Get(config.KeyFollowUpSettings, &settings, func() any {
		return models.DefaultFollowUpSettings()
	})
	return settings, err
}

func (s *FollowUpService) UpdateSettings(settings models.FollowUpSettings) error {
	if settings.DaysThreshold < 1 {
		settings.DaysThreshold = 1
	}
	if strings.TrimSpace(settings.MessageTemplate) == "" {
		settings.MessageTemplate = models.DefaultFollowUpSettings().MessageTemplate
	}
	return s.store.Set(config.KeyFollowUpSettings, settings)
}

// OverdueClients applies the configured threshold and template to the
// current client set.
func (s *FollowUpService) OverdueClients(now time.Time) ([]OverdueClient, error) {
	settings, err := s.Settings()
	if err != nil {
		return nil, err
	}
	clients, err := s.data.Clients()
	if err != nil {
		return nil, err
	}
	return FindOverdueClients(clients, settings.DaysThreshold, settings.MessageTemplate, now), nil
}

// FindOverdueClients selects clients whose last completed service lies more
// than thresholdDays whole days in the past, longest overdue first. Clients
// never served are always eligible and sort before everyone else. Clients
// without a phone number are skipped since there is no way to reach them.
func FindOverdueClients(clients []models.Client, thresholdDays int, template string, now time.Time) []OverdueClient {
	out := make([]OverdueClient, 0)
	for _, c := range clients {
		if strings.TrimSpace(c.Phone) == "" {
			continue
		}
		var daysSince *int
		if c.LastServiceDate != nil {
			d := utils.DaysSince(now, *c.LastServiceDate)
			if d <= thresholdDays {
				continue
			}
			daysSince = &d
		}
		message := RenderMessage(template, c.Name)
		out = append(out, OverdueClient{
			Client:       c,
			DaysSince:    daysSince,
			Message:      message,
			WhatsAppLink: utils.WhatsAppLink(c.Phone, message),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].DaysSince, out[j].DaysSince
		switch {
		case a == nil:
			return b != nil
		case b == nil:
			return false
		default:
			return *a > *b
		}
	})
	return out
}

var (
	clientePlaceholder = regexp.MustCompile(`(?i)\{cliente\}`)
	pronomePlaceholder = regexp.MustCompile(`(?i)\{pronome\}`)
)

// RenderMessage substitutes the {cliente} and {pronome} placeholders into
// the template, matching them case-insensitively. The pronoun is guessed
// from the client's name; the guess is deliberately rough and only shapes
// the wording of a friendly message.
func RenderMessage(template, clientName string) string {
	msg := clientePlaceholder.ReplaceAllLiteralString(template, clientName)
	return pronomePlaceholder.ReplaceAllLiteralString(msg, GuessPronoun(clientName))
}

// GuessPronoun picks between "ela" and "ele" from common Brazilian name
// endings and substrings.
func GuessPronoun(name string) string {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, "a") ||
		strings.HasSuffix(lower, "e") ||
		strings.Contains(lower, "maria") ||
		strings.Contains(lower, "ana") {
		return "ela"
	}
	return "ele"
}
