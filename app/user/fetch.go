package user

import (
	"errors"
	"net/http"

	"paisa/expense-api/internal"
	"paisa/expense-api/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserFetch returns the basic info of the authenticated account.
func UserFetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	u, err := d.Users.FindByID(userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "User not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        u.ID,
		"firstname": u.FirstName,
		"lastname":  u.LastName,
		"email":     u.Email,
		"verified":  u.Verified,
	})
}
