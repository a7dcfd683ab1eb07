package expense

import (
	"errors"
	"net/http"

	"paisa/expense-api/internal"
	"paisa/expense-api/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ExpenseDelete removes an expense the user owns. Cross-owner attempts
// come back as not found, indistinguishable from a missing record.
func ExpenseDelete(c *gin.Context, d *internal.Deps) {
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

	if err := d.Expenses.DeleteOwned(userID, expenseID); err != nil {
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

		zap.L().Error("Failed to delete expense", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Expense deleted",
		"requestID": requestID,
	})
}
