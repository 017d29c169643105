// controllers/financial.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"salaomovel-backend/services"
	"salaomovel-backend/utils"

	"github.com/gin-gonic/gin"
)

type FinancialController struct {
	Finance *services.FinanceService
}

// GetRecords returns the derived financial ledger, most recent first
func (ctl *FinancialController) GetRecords(c *gin.Context) {
	records, err := ctl.Finance.Records()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to derive financial records")
		return
	}
	c.JSON(http.StatusOK, records)
}

// GetSummary returns the twelve monthly buckets plus the year total
func (ctl *FinancialController) GetSummary(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}

	summary, err := ctl.Finance.MonthlySummary(year)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute summary")
		return
	}
	total, err := ctl.Finance.TotalForPeriod(year, 0)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute total")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":   year,
		"months": summary,
		"total":  total,
	})
}

// GetRecent returns the latest transactions of a period
func (ctl *FinancialController) GetRecent(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	month, ok := monthParam(c)
	if !ok {
		return
	}
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	records, err := ctl.Finance.RecentTransactions(year, month, limit)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to derive financial records")
		return
	}
	total, err := ctl.Finance.TotalForPeriod(year, month)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute total")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"total":   total,
	})
}

func yearParam(c *gin.Context) (int, bool) {
	raw := c.Query("year")
	if raw == "" {
		return time.Now().Year(), true
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 2000 || year > 2200 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid year")
		return 0, false
	}
	return year, true
}

// monthParam reads the optional month query, zero meaning the whole year.
func monthParam(c *gin.Context) (time.Month, bool) {
	raw := c.Query("month")
	if raw == "" {
		return 0, true
	}
	month, err := strconv.Atoi(raw)
	if err != nil || month < 1 || month > 12 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid month")
		return 0, false
	}
	return time.Month(month), true
}
