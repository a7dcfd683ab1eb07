package user

import (
	"errors"
	"net/http"
	"strings"

	"paisa/expense-api/internal"
	"paisa/expense-api/internal/model"
	"paisa/expense-api/internal/store"
	"paisa/expense-api/pkg/security"
	"paisa/expense-api/validators"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type registerBody struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func UserRegister(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data registerBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})
		return
	}

	firstName := strings.TrimSpace(data.FirstName)
	lastName := strings.TrimSpace(data.LastName)
	email := store.NormalizeEmail(data.Email)

	if firstName == "" || lastName == "" || email == "" || data.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "All fields must be filled",
			"requestID": requestID,
		})
		return
	}

	if err := validators.EmailValidator(email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	if err := validators.PasswordValidator(data.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	hash, err := d.Argon.GenerateFromPassword(data.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	userID, err := gonanoid.Generate(idCharset, 16)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate user ID", zap.Error(err), zap.String("requestID", requestID))
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

	newUser := &model.User{
		ID:                      userID,
		Email:                   email,
		FirstName:               firstName,
		LastName:                lastName,
		PasswordHash:            hash,
		Verified:                false,
		VerificationToken:       &verifToken,
		VerificationTokenExpiry: &expiry,
	}

	// The unique index decides the winner when two registrations race on
	// the same email.
	if err := d.Users.Create(newUser); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{
				"error":     "This email is already registered. Please login or use a different email",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// Mail dispatch is best effort. The account exists either way, the
	// client just gets told whether the mail went out.
	emailSent := true
	if err := d.Mailer.SendVerificationMail(email, firstName, verifToken); err != nil {
		emailSent = false
		zap.L().Warn("Failed to send verification email", zap.Error(err), zap.String("requestID", requestID))
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":        newUser.ID,
			"firstname": newUser.FirstName,
			"lastname":  newUser.LastName,
			"email":     newUser.Email,
		},
		"emailSent": emailSent,
		"requestID": requestID,
	})
}
