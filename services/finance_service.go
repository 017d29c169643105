// services/finance_service.go
package services

import (
	"math"
	"time"

	"salaomovel-backend/models"
	"salaomovel-backend/utils"

	"github.com/google/uuid"
)

// FinanceService is the read side of the ledger. Financial records are a
// projection over appointments (completed with a positive value), never
// stored, so the one-record-per-billable-appointment invariant cannot be
// violated by a missed write. Sums are accumulated in integer cents to keep
// rounding error from compounding across many small services.
type FinanceService struct {
	data *DataService
}

func NewFinanceService(data *DataService) *FinanceService {
	return &FinanceService{data: data}
}

// MonthlyTotal is one bucket of a year summary. Months without revenue are
// present with a zero total.
type MonthlyTotal struct {
	Month time.Month `json:"month"`
	Total float64    `json:"total"`
}

// Records projects the financial ledger from the current appointment set,
// sorted by date descending. The record id is the appointment id.
func (s *FinanceService) Records() ([]models.FinancialRecord, error) {
	apps, err := s.data.Appointments()
	if err != nil {
		return nil, err
	}
	clients, err := s.data.Clients()
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.Name
	}

	records := make([]models.FinancialRecord, 0)
	for _, a := range apps {
		if !a.IsBillable() {
			continue
		}
		name, ok := names[a.ClientID]
		if !ok {
			name = "Desconhecido"
		}
		records = append(records, models.FinancialRecord{
			ID:            a.ID,
			AppointmentID: a.ID,
			Date:          a.Date,
			Amount:        *a.ServiceValue,
			Description:   "Serviço para " + name,
		})
	}
	return records, nil
}

// MonthlySummary returns twelve buckets for the year, January first.
func (s *FinanceService) MonthlySummary(year int) ([]MonthlyTotal, error) {
	records, err := s.Records()
	if err != nil {
		return nil, err
	}
	var cents [12]int64
	for _, r := range records {
		if r.Date.Year() == year {
			cents[int(r.Date.Month())-1] += toCents(r.Amount)
		}
	}
	out := make([]MonthlyTotal, 12)
	for i := range out {
		out[i] = MonthlyTotal{Month: time.Month(i + 1), Total: fromCents(cents[i])}
	}
	return out, nil
}

// TotalForPeriod sums the records of a year or, when month is non-zero, of
// one month in that year.
func (s *FinanceService) TotalForPeriod(year int, month time.Month) (float64, error) {
	records, err := s.recordsForPeriod(year, month)
	if err != nil {
		return 0, err
	}
	var cents int64
	for _, r := range records {
		cents += toCents(r.Amount)
	}
	return fromCents(cents), nil
}

// RecentTransactions returns the period's records, date descending,
// truncated to limit.
func (s *FinanceService) RecentTransactions(year int, month time.Month, limit int) ([]models.FinancialRecord, error) {
	records, err := s.recordsForPeriod(year, month)
	if err != nil {
		return nil, err
	}
	if limit >= 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (s *FinanceService) recordsForPeriod(year int, month time.Month) ([]models.FinancialRecord, error) {
	records, err := s.Records()
	if err != nil {
		return nil, err
	}
	out := make([]models.FinancialRecord, 0)
	for _, r := range records {
		if utils.InPeriod(r.Date, year, month) {
			out = append(out, r)
		}
	}
	return out, nil
}

func toCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

func fromCents(c int64) float64 {
	return float64(c) / 100
}
