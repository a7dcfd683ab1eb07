package expense

import (
	"net/http"
	"strings"
	"time"

	"paisa/expense-api/internal"
	"paisa/expense-api/internal/model"
	"paisa/expense-api/validators"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

const idCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

type expenseBody struct {
	Title    string  `json:"title"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Date     string  `json:"date"`
}

func (b *expenseBody) validate() (time.Time, error) {
	b.Title = strings.TrimSpace(b.Title)
	if err := validators.TitleValidator(b.Title); err != nil {
		return time.Time{}, err
	}
	if err := validators.AmountValidator(b.Amount); err != nil {
		return time.Time{}, err
	}
	if err := validators.CategoryValidator(b.Category); err != nil {
		return time.Time{}, err
	}
	if b.Date == "" {
		return time.Time{}, validators.ErrDateEmpty
	}

	date, err := time.Parse("2006-01-02", b.Date)
	if err != nil {
		// Also accept full timestamps, frontends send both
		date, err = time.Parse(time.RFC3339, b.Date)
	}
	return date, err
}

// ExpenseCreate records a new expense for the authenticated user. The
// owner always comes from the session credential, never from the body.
func ExpenseCreate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data expenseBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})
		return
	}

	date, err := data.validate()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	expenseID, err := gonanoid.Generate(idCharset, 12)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate expense ID", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	e := &model.Expense{
		ID:       expenseID,
		UserID:   userID,
		Title:    data.Title,
		Amount:   data.Amount,
		Category: data.Category,
		Date:     date,
	}

	if err := d.Expenses.Create(e); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create expense", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"expense":   e,
		"requestID": requestID,
	})
}
