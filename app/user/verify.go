package user

import (
	"errors"
	"net/http"
	"time"

	"paisa/expense-api/internal"
	"paisa/expense-api/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type verifyBody struct {
	Token string `json:"token"`
}

// UserVerify redeems a verification token or its 6-character code.
// An expired match is reported differently from no match at all, so the
// client can offer "resend" instead of "check the code".
func UserVerify(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data verifyBody
	if err := c.ShouldBind(&data); err != nil || data.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No verification token provided",
			"requestID": requestID,
		})
		return
	}

	u, err := d.Users.FindByVerificationToken(data.Token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid verification token",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to look up verification token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if u.VerificationTokenExpiry == nil || !u.VerificationTokenExpiry.After(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Verification token has expired. Please request a new verification email",
			"requestID": requestID,
		})
		return
	}

	if err := d.Users.MarkVerified(u.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to mark user verified", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Email verified successfully. You can now log in to your account",
		"requestID": requestID,
	})
}
