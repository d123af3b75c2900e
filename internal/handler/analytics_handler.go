package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/analytics"
	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/service"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler handles budget analytics requests
type AnalyticsHandler struct {
	service service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(s service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: s}
}

func writeAnalyticsError(c *gin.Context, err error, logContext string) {
	if errors.Is(err, service.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	log.Printf("Error during %s: %v", logContext, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + logContext})
}

// parsePeriod reads the optional month=YYYY-MM query param. A zero year
// means the whole history.
func parsePeriod(c *gin.Context) (int, time.Month, error) {
	monthParam := c.Query("month")
	if monthParam == "" {
		return 0, 0, nil
	}
	parsed, err := time.Parse("2006-01", monthParam)
	if err != nil {
		return 0, 0, errors.New("invalid month format, use YYYY-MM")
	}
	return parsed.Year(), parsed.Month(), nil
}

func (h *AnalyticsHandler) GetSpending(c *gin.Context) {
	username, err := getAuthUsername(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	year, month, err := parsePeriod(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.service.Spending(c.Request.Context(), username, year, month)
	if err != nil {
		writeAnalyticsError(c, err, "compute spending summary")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": summary})
}

func (h *AnalyticsHandler) GetIncome(c *gin.Context) {
	username, err := getAuthUsername(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	year, month, err := parsePeriod(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.service.Income(c.Request.Context(), username, year, month)
	if err != nil {
		writeAnalyticsError(c, err, "compute income summary")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": summary})
}

func (h *AnalyticsHandler) GetMonths(c *gin.Context) {
	username, err := getAuthUsername(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	report, err := h.service.Months(c.Request.Context(), username)
	if err != nil {
		writeAnalyticsError(c, err, "list months")
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetTrends returns the per-month income/spending/net series on its own,
// for chart views that do not need the month list.
func (h *AnalyticsHandler) GetTrends(c *gin.Context) {
	username, err := getAuthUsername(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	report, err := h.service.Months(c.Request.Context(), username)
	if err != nil {
		writeAnalyticsError(c, err, "compute trends")
		return
	}
	c.JSON(http.StatusOK, gin.H{"trends": report.Trends})
}

func (h *AnalyticsHandler) GetForecast(c *gin.Context) {
	username, err := getAuthUsername(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	forecast, err := h.service.Forecast(c.Request.Context(), username)
	if err != nil {
		writeAnalyticsError(c, err, "compute forecast")
		return
	}
	c.JSON(http.StatusOK, forecast)
}

func (h *AnalyticsHandler) GetGoals(c *gin.Context) {
	username, err := getAuthUsername(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	year, month, err := parsePeriod(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.service.Goals(c.Request.Context(), username, year, month)
	if err != nil {
		writeAnalyticsError(c, err, "check goals")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *AnalyticsHandler) GetSubscriptions(c *gin.Context) {
	username, err := getAuthUsername(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	subs, totals, err := h.service.Subscriptions(c.Request.Context(), username)
	if err != nil {
		writeAnalyticsError(c, err, "detect subscriptions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscriptions": subs, "totals": totals})
}

// ScoreLoan evaluates a loan request against the user's budget history.
func (h *AnalyticsHandler) ScoreLoan(c *gin.Context) {
	username, err := getAuthUsername(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req analytics.LoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	decision, err := h.service.Loan(c.Request.Context(), username, req)
	if err != nil {
		writeAnalyticsError(c, err, "score loan request")
		return
	}
	c.JSON(http.StatusOK, decision)
}

// RegisterAnalyticsRoutes registers analytics routes
func (h *AnalyticsHandler) RegisterAnalyticsRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	routes := rg.Group("/analytics")
	routes.Use(authMW)
	{
		routes.GET("/spending", h.GetSpending)
		routes.GET("/income", h.GetIncome)
		routes.GET("/months", h.GetMonths)
		routes.GET("/trends", h.GetTrends)
		routes.GET("/forecast", h.GetForecast)
		routes.GET("/goals", h.GetGoals)
		routes.GET("/subscriptions", h.GetSubscriptions)
		routes.POST("/loan", h.ScoreLoan)
	}
}
