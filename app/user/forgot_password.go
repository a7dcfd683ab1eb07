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

type forgotPasswordBody struct {
	Email string `json:"email"`
}

// UserForgotPassword always answers 200 so the response never reveals
// whether an account exists. The token work happens only when it does.
func UserForgotPassword(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data forgotPasswordBody
	if err := c.ShouldBind(&data); err != nil || data.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No email address provided",
			"requestID": requestID,
		})
		return
	}

	accepted := gin.H{
		"message":   "If an account with that email exists, a password reset link has been sent",
		"requestID": requestID,
	}

	u, err := d.Users.FindByEmail(data.Email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
		}
		c.JSON(http.StatusOK, accepted)
		return
	}

	resetToken, expiry, err := security.NewToken(viper.GetDuration("tokens.reset_ttl"))
	if err != nil {
		zap.L().Error("Failed to generate reset token", zap.Error(err), zap.String("requestID", requestID))
		c.JSON(http.StatusOK, accepted)
		return
	}

	// Overwrite semantics: a second request invalidates the first token.
	if err := d.Users.SetResetToken(u.ID, resetToken, expiry); err != nil {
		zap.L().Error("Failed to store reset token", zap.Error(err), zap.String("requestID", requestID))
		c.JSON(http.StatusOK, accepted)
		return
	}

	if err := d.Mailer.SendPasswordResetMail(u.Email, u.FirstName, resetToken); err != nil {
		zap.L().Warn("Failed to send password reset email", zap.Error(err), zap.String("requestID", requestID))
	}

	c.JSON(http.StatusOK, accepted)
}
