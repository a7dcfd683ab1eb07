package expense

import (
	"net/http"

	"paisa/expense-api/internal"
	"paisa/expense-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ExpenseList returns the authenticated user's expenses, newest date
// first. Other owners' records are invisible by construction.
func ExpenseList(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	entries, err := d.Expenses.ListByOwner(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list expenses", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"expenses":  entries,
		"requestID": requestID,
	})
}

// ExpenseCategories returns the closed category set. The response is
// static, so the router caches it.
func ExpenseCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": validators.Categories,
	})
}
