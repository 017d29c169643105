package models

// AppConfig is the business profile shown on the public page and used when
// building outbound messages.
type AppConfig struct {
	StylistName        string `json:"stylistName"`
	ServiceDescription string `json:"serviceDescription"`
	// HomeServiceDays holds weekday numbers (0 = Sunday) on which home
	// visits are offered. A policy hint for the agenda, not enforced.
	HomeServiceDays []int  `json:"homeServiceDays"`
	SalonAddress    string `json:"salonAddress"`
	WhatsAppNumber  string `json:"whatsAppNumber"`
}

func DefaultAppConfig() AppConfig {
	return AppConfig{
		StylistName:        "Tia Déa",
		ServiceDescription: "corte de cabelo infantil",
		HomeServiceDays:    []int{1, 2},
		SalonAddress:       "Rua das Tesourinhas Felizes, 123 - Bairro Alegria",
		WhatsAppNumber:     "5511912345678",
	}
}

// FollowUpSettings controls the overdue-client selector: how many days since
// the last completed service make a client overdue, and the message template
// rendered for them. The template accepts the {cliente} and {pronome}
// placeholders.
type FollowUpSettings struct {
	DaysThreshold   int    `json:"daysThreshold"`
	MessageTemplate string `json:"messageTemplate"`
}

func DefaultFollowUpSettings() FollowUpSettings {
	return FollowUpSettings{
		DaysThreshold: 45,
		MessageTemplate: "Olá {cliente}! 😊 Já faz um tempo desde o último corte. " +
			"Que tal agendar um novo horário para {pronome}? ✂️✨",
	}
}
