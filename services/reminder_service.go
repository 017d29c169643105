// services/reminder_service.go
package services

import (
	"log"
	"time"

	"salaomovel-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// ReminderService walks the overdue-client set once a day and, when Twilio
// is configured, pushes each rendered message over WhatsApp. Without
// credentials the job still runs and logs the overdue count, which keeps the
// selection logic exercised in every deployment.
type ReminderService struct {
	followUp *FollowUpService
	client   *twilio.RestClient
	from     string
	enabled  bool
}

func NewReminderService(followUp *FollowUpService, accountSid, authToken, whatsAppNumber string) *ReminderService {
	s := &ReminderService{followUp: followUp, from: whatsAppNumber}
	if accountSid != "" && authToken != "" && whatsAppNumber != "" {
		s.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		})
		s.enabled = true
	}
	return s
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendDailyReminders)

	c.Start()
	log.Println("Reminder scheduler started")
}

func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily reminder processing...")

	overdue, err := s.followUp.OverdueClients(time.Now())
	if err != nil {
		log.Printf("Failed to compute overdue clients: %v", err)
		return
	}
	log.Printf("%d client(s) overdue for a return visit", len(overdue))

	if !s.enabled {
		log.Println("Twilio not configured, skipping WhatsApp sends")
		return
	}

	for _, c := range overdue {
		s.sendWhatsApp(c)
	}

	log.Println("Daily reminder processing completed")
}

func (s *ReminderService) sendWhatsApp(c OverdueClient) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:+" + utils.StripPhoneDigits(c.Phone))
	params.SetFrom("whatsapp:" + s.from)
	params.SetBody(c.Message)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Failed to send message to %s: %v", c.Phone, err)
		return
	}
	if resp.Sid != nil {
		log.Printf("Message sent to %s, SID: %s", c.Phone, *resp.Sid)
	} else {
		log.Printf("Message sent to %s, but no SID returned", c.Phone)
	}
}
