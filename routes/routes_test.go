package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"salaomovel-backend/config"
	"salaomovel-backend/services"
	"salaomovel-backend/utils"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	store, err := config.OpenFileStore(filepath.Join(t.TempDir(), "salao.json"))
	if err != nil {
		t.Fatalf("OpenFileStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	hash, err := utils.HashPassword("1234")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	data := services.NewDataService(store)
	return SetupRouter(Deps{
		Data:              data,
		Finance:           services.NewFinanceService(data),
		FollowUp:          services.NewFollowUpService(store, data),
		Gemini:            services.NewGeminiService("", "gemini-2.5-flash"),
		Settings:          services.NewSettingsService(store),
		AdminPasswordHash: hash,
	})
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{"password": "1234"})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return resp.Token
}

func TestLoginGate(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{"password": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/clients", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated request status = %d", w.Code)
	}

	token := login(t, r)
	w = doJSON(t, r, http.MethodGet, "/api/clients", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("authenticated request status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestClientAppointmentFlow(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/clients", token, gin.H{
		"name":  "Ana",
		"phone": "+55 11 91234-5678",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create client status = %d, body %s", w.Code, w.Body.String())
	}
	var client struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &client); err != nil {
		t.Fatalf("decode client: %v", err)
	}

	w = doJSON(t, r, http.MethodPost, "/api/appointments", token, gin.H{
		"clientId":     client.ID,
		"date":         "2024-01-10T10:00:00Z",
		"location":     "salon",
		"status":       "completed",
		"serviceValue": 50,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create appointment status = %d, body %s", w.Code, w.Body.String())
	}

	// the client's derived history must reflect the completed service
	w = doJSON(t, r, http.MethodGet, "/api/clients/"+client.ID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get client status = %d", w.Code)
	}
	var detail struct {
		Client struct {
			ServiceCount int `json:"serviceCount"`
		} `json:"client"`
		Appointments []json.RawMessage `json:"appointments"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if detail.Client.ServiceCount != 1 || len(detail.Appointments) != 1 {
		t.Fatalf("detail = %s", w.Body.String())
	}

	// and the financial summary sees the revenue
	w = doJSON(t, r, http.MethodGet, "/api/financials/summary?year=2024", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("summary status = %d", w.Code)
	}
	var summary struct {
		Total  float64 `json:"total"`
		Months []struct {
			Total float64 `json:"total"`
		} `json:"months"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.Total != 50 || len(summary.Months) != 12 || summary.Months[0].Total != 50 {
		t.Fatalf("summary = %s", w.Body.String())
	}
}

func TestStatusEndpointRejectsBadTransition(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/clients", token, gin.H{"name": "Bia"})
	var client struct {
		ID string `json:"id"`
	}
	json.Unmarshal(w.Body.Bytes(), &client)

	w = doJSON(t, r, http.MethodPost, "/api/appointments", token, gin.H{
		"clientId": client.ID,
		"date":     "2024-02-01T09:00:00Z",
		"location": "home",
	})
	var appointment struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	json.Unmarshal(w.Body.Bytes(), &appointment)
	if appointment.Status != "pending" {
		t.Fatalf("default status = %q", appointment.Status)
	}

	path := fmt.Sprintf("/api/appointments/%s/status", appointment.ID)
	w = doJSON(t, r, http.MethodPatch, path, token, gin.H{"status": "missed"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("pending -> missed status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPatch, path, token, gin.H{"status": "confirmed"})
	if w.Code != http.StatusOK {
		t.Fatalf("pending -> confirmed status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestExportFinancialsDownload(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/clients", token, gin.H{"name": "João"})
	var client struct {
		ID string `json:"id"`
	}
	json.Unmarshal(w.Body.Bytes(), &client)

	doJSON(t, r, http.MethodPost, "/api/appointments", token, gin.H{
		"clientId":     client.ID,
		"date":         "2024-03-10T10:00:00Z",
		"location":     "salon",
		"status":       "completed",
		"serviceValue": 75.5,
	})

	w = doJSON(t, r, http.MethodGet, "/api/export/financials?year=2024&month=3", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export status = %d", w.Code)
	}
	if disp := w.Header().Get("Content-Disposition"); !strings.Contains(disp, "financeiro_2024_3.csv") {
		t.Fatalf("Content-Disposition = %q", disp)
	}
	body := w.Body.Bytes()
	if !bytes.HasPrefix(body, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatalf("export missing BOM")
	}
	if !strings.Contains(string(body), "Serviço para João") {
		t.Fatalf("export body = %q", string(body))
	}
}
