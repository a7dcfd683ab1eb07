package user

import (
	"errors"
	"net/http"

	"paisa/expense-api/internal"
	"paisa/expense-api/internal/store"
	"paisa/expense-api/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type resendBody struct {
	Email string `json:"email"`
}

// UserResendVerification issues a fresh verification token, overwriting
// the stored one. Whatever token was mailed out before stops redeeming
// the moment the overwrite lands, even if it hadn't expired yet.
func UserResendVerification(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data resendBody
	if err := c.ShouldBind(&data); err != nil || data.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No email address provided",
			"requestID": requestID,
		})
		return
	}

	u, err := d.Users.FindByEmail(data.Email)
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

		zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if u.Verified {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Email is already verified",
			"requestID": requestID,
		})
		return
	}

	verifToken, expiry, err := security.NewToken(viper.GetDuration("tokens.verify_ttl"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate verification token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := d.Users.SetVerificationToken(u.ID, verifToken, expiry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to store verification token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	emailSent := true
	if err := d.Mailer.SendVerificationMail(u.Email, u.FirstName, verifToken); err != nil {
		emailSent = false
		zap.L().Warn("Failed to send verification email", zap.Error(err), zap.String("requestID", requestID))
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Verification email sent. Please check your inbox",
		"emailSent": emailSent,
		"requestID": requestID,
	})
}
