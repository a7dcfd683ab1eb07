package expense

import (
	"errors"
	"net/http"

	"paisa/expense-api/internal"
	"paisa/expense-api/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ExpenseUpdate rewrites an expense the user owns. A record owned by
// someone else answers exactly like a nonexistent ID.
func ExpenseUpdate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	expenseID := c.Param("id")
	if expenseID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No expense ID provided",
			"requestID": requestID,
		})
		return
	}

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

	e, err := d.Expenses.FindOwned(userID, expenseID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Expense not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch expense", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	e.Title = data.Title
	e.Amount = data.Amount
	e.Category = data.Category
	e.Date = date

	if err := d.Expenses.Update(e); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update expense", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"expense":   e,
		"requestID": requestID,
	})
}
