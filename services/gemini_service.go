// services/gemini_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

// GeminiService asks the Gemini API for a short, friendly WhatsApp reminder
// text. It never fails upward: with no key configured, or on any transport
// or decoding error, SuggestMessage returns a deterministic fallback so the
// caller always has something to send.
type GeminiService struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewGeminiService(apiKey, model string) *GeminiService {
	return &GeminiService{
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		Temperature float64 `json:"temperature"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// SuggestMessage generates a reminder for clientName about serviceName.
func (s *GeminiService) SuggestMessage(ctx context.Context, clientName, serviceName string) string {
	if serviceName == "" {
		serviceName = "corte de cabelo infantil"
	}
	if s.apiKey == "" {
		log.Println("Gemini API key not configured, using fallback message")
		return fallbackMessage(clientName, serviceName)
	}

	prompt := fmt.Sprintf("Crie uma mensagem curta, amigável e encantadora para WhatsApp, destinada a %s. "+
		"O objetivo é lembrá-lo(a) que já faz um tempo desde o último %s de seu filho(a) e convidá-lo(a) a "+
		"agendar um novo horário. Use emojis infantis e um tom divertido. Não inclua links ou chamadas para "+
		"clicar em botões, apenas o texto da mensagem. Seja breve, no máximo 3 frases.", clientName, serviceName)

	var reqBody geminiRequest
	reqBody.Contents = []geminiContent{{Parts: []geminiPart{{Text: prompt}}}}
	reqBody.GenerationConfig.Temperature = 0.7

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fallbackMessage(clientName, serviceName)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fallbackMessage(clientName, serviceName)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("Gemini request failed: %v", err)
		return fallbackMessage(clientName, serviceName)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Gemini returned status %d", resp.StatusCode)
		return fallbackMessage(clientName, serviceName)
	}

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Printf("Failed to decode Gemini response: %v", err)
		return fallbackMessage(clientName, serviceName)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return fallbackMessage(clientName, serviceName)
	}
	text := strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return fallbackMessage(clientName, serviceName)
	}
	return text
}

func fallbackMessage(clientName, serviceName string) string {
	return fmt.Sprintf("Olá %s! 😊 Já está na hora do próximo %s do seu pequeno(a)? "+
		"Adoraríamos revê-los! Agende um horário conosco. ✨", clientName, serviceName)
}
