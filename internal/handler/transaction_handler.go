package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/model"
	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/service"

	"github.com/gin-gonic/gin"
)

// MaxStatementSize caps uploaded statement files.
const MaxStatementSize = 5 * 1024 * 1024 // 5MB

// TransactionHandler handles transaction related requests
type TransactionHandler struct {
	service service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(s service.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

func writeTransactionError(c *gin.Context, err error, logContext string) {
	switch {
	case errors.Is(err, service.ErrTransactionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmptyStatement):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("Error during %s: %v", logContext, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + logContext})
	}
}

func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	username, err := getAuthUsername(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req model.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	t, err := h.service.Create(c.Request.Context(), username, req)
	if err != nil {
		writeTransactionError(c, err, "create transaction")
		return
	}
	c.JSON(http.StatusCreated, t)
}

// parseFilters reads the optional type/category/month query params.
func parseFilters(c *gin.Context) (model.TransactionFilters, error) {
	var filters model.TransactionFilters
	if typeParam := c.Query("type"); typeParam != "" {
		switch typeParam {
		case "spending":
			v := true
			filters.Spending = &v
		case "income":
			v := false
			filters.Spending = &v
		default:
			return filters, errors.New("invalid type, use 'spending' or 'income'")
		}
	}
	if categoryParam := c.Query("category"); categoryParam != "" {
		filters.Category = &categoryParam
	}
	if monthParam := c.Query("month"); monthParam != "" {
		parsed, err := time.Parse("2006-01", monthParam)
		if err != nil {
			return filters, errors.New("invalid month format, use YYYY-MM")
		}
		start := time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
		filters.StartDate = &start
		filters.EndDate = &end
	}
	return filters, nil
}

func (h *TransactionHandler) GetMyTransactions(c *gin.Context) {
	username, err := getAuthUsername(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	filters, err := parseFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txns, err := h.service.List(c.Request.Context(), username, filters)
	if err != nil {
		writeTransactionError(c, err, "retrieve transactions")
		return
	}
	c.JSON(http.StatusOK, txns)
}

func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	username, err := getAuthUsername(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	t, err := h.service.Get(c.Request.Context(), username, c.Param("id"))
	if err != nil {
		writeTransactionError(c, err, "retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	username, err := getAuthUsername(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req model.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	t, err := h.service.Update(c.Request.Context(), username, c.Param("id"), req)
	if err != nil {
		writeTransactionError(c, err, "update transaction")
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	username, err := getAuthUsername(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.Delete(c.Request.Context(), username, c.Param("id")); err != nil {
		writeTransactionError(c, err, "delete transaction")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

func (h *TransactionHandler) SetCategory(c *gin.Context) {
	username, err := getAuthUsername(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		Category string `json:"category" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	t, err := h.service.SetCategory(c.Request.Context(), username, c.Param("id"), req.Category)
	if err != nil {
		writeTransactionError(c, err, "set category")
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TransactionHandler) SetNotes(c *gin.Context) {
	username, err := getAuthUsername(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	t, err := h.service.SetNotes(c.Request.Context(), username, c.Param("id"), req.Notes)
	if err != nil {
		writeTransactionError(c, err, "set notes")
		return
	}
	c.JSON(http.StatusOK, t)
}

// ImportStatement accepts a multipart CSV upload of a bank statement.
func (h *TransactionHandler) ImportStatement(c *gin.Context) {
	username, err := getAuthUsername(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	file, err := c.FormFile("statement")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statement file is required: " + err.Error()})
		return
	}
	if file.Size > MaxStatementSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statement file exceeds size limit"})
		return
	}

	src, err := file.Open()
	if err != nil {
		writeTransactionError(c, err, "open uploaded statement")
		return
	}
	defer src.Close()

	result, err := h.service.ImportStatement(c.Request.Context(), username, file.Filename, src)
	if err != nil {
		writeTransactionError(c, err, "import statement")
		return
	}
	c.JSON(http.StatusCreated, result)
}

// Recategorize re-applies the category rules to the user's history.
func (h *TransactionHandler) Recategorize(c *gin.Context) {
	username, err := getAuthUsername(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	overwrite := false
	if v := c.Query("overwrite"); v != "" {
		overwrite, err = strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid overwrite flag"})
			return
		}
	}

	changed, err := h.service.Recategorize(c.Request.Context(), username, overwrite)
	if err != nil {
		writeTransactionError(c, err, "recategorize transactions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}

// RegisterTransactionRoutes registers transaction routes
func (h *TransactionHandler) RegisterTransactionRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	txRoutes := rg.Group("/transactions")
	txRoutes.Use(authMW)
	{
		txRoutes.POST("", h.CreateTransaction)
		txRoutes.GET("", h.GetMyTransactions)
		txRoutes.GET("/:id", h.GetTransactionByID)
		txRoutes.PUT("/:id", h.UpdateTransaction)
		txRoutes.DELETE("/:id", h.DeleteTransaction)
		txRoutes.PUT("/:id/category", h.SetCategory)
		txRoutes.PUT("/:id/notes", h.SetNotes)
		txRoutes.POST("/import", h.ImportStatement)
		txRoutes.POST("/recategorize", h.Recategorize)
	}
}
