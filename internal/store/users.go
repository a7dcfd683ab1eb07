// Package store wraps all database access behind explicit, injectable
// clients so handlers never touch a global connection handle.
package store

import (
	"errors"
	"strings"
	"time"

	"paisa/expense-api/internal/model"

	"gorm.io/gorm"
)

var (
	ErrDuplicateEmail = errors.New("email is already registered")
	ErrNotFound       = errors.New("record not found")
)

// Users is the credential store. Every mutation is a single UPDATE so a
// racing resend/redeem leaves either the old or the new token winning,
// never a half-written row.
type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// NormalizeEmail is applied before every store call that takes an email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create inserts a new account. The unique index on email is the real
// duplicate guard: a concurrent registration race yields exactly one
// winner and ErrDuplicateEmail for the loser.
func (s *Users) Create(u *model.User) error {
	if err := s.db.Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (s *Users) FindByEmail(email string) (*model.User, error) {
	var u model.User
	err := s.db.Where("email = ?", NormalizeEmail(email)).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByVerificationToken resolves a full hex token or its 6-character
// code (a case-insensitive prefix of the same token). Expiry is not
// filtered here so the caller can tell an expired token apart from one
// that never existed.
func (s *Users) FindByVerificationToken(tokenOrCode string) (*model.User, error) {
	q := s.db.Model(&model.User{})
	if len(tokenOrCode) == 6 {
		// Codes are hex prefixes of the token. Anything else never
		// matches, and must not reach the LIKE pattern where % and _
		// would act as wildcards.
		code := strings.ToLower(tokenOrCode)
		if !isHex(code) {
			return nil, ErrNotFound
		}
		q = q.Where("verification_token LIKE ?", code+"%")
	} else {
		q = q.Where("verification_token = ?", strings.ToLower(tokenOrCode))
	}

	var u model.User
	if err := q.First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func isHex(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

// FindByLiveResetToken matches an exact reset token whose expiry is
// strictly in the future at now.
func (s *Users) FindByLiveResetToken(token string, now time.Time) (*model.User, error) {
	var u model.User
	err := s.db.
		Where("reset_token = ? AND reset_token_expiry > ?", token, now).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// SetVerificationToken overwrites the stored verification token, which
// invalidates any previously issued one that is still live.
func (s *Users) SetVerificationToken(userID, token string, expiry time.Time) error {
	return s.db.Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"verification_token":        token,
			"verification_token_expiry": expiry,
		}).Error
}

// MarkVerified flips the account to verified and clears the token fields
// in the same write, so a verified account never carries a token.
func (s *Users) MarkVerified(userID string) error {
	return s.db.Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"verified":                  true,
			"verification_token":        nil,
			"verification_token_expiry": nil,
		}).Error
}

// SetResetToken overwrites the stored reset token and expiry.
func (s *Users) SetResetToken(userID, token string, expiry time.Time) error {
	return s.db.Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"reset_token":        token,
			"reset_token_expiry": expiry,
		}).Error
}

// ResetPassword stores the new hash and clears the reset token fields
// atomically.
func (s *Users) ResetPassword(userID, passwordHash string) error {
	return s.db.Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"password_hash":      passwordHash,
			"reset_token":        nil,
			"reset_token_expiry": nil,
		}).Error
}

func (s *Users) FindByID(userID string) (*model.User, error) {
	var u model.User
	err := s.db.Where("id = ?", userID).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// ClearExpiredTokens wipes verification and reset token fields whose
// expiry has passed. Used by the background sweep.
func (s *Users) ClearExpiredTokens(now time.Time) error {
	err := s.db.Model(&model.User{}).
		Where("verification_token IS NOT NULL AND verification_token_expiry < ?", now).
		Updates(map[string]any{
			"verification_token":        nil,
			"verification_token_expiry": nil,
		}).Error
	if err != nil {
		return err
	}

	return s.db.Model(&model.User{}).
		Where("reset_token IS NOT NULL AND reset_token_expiry < ?", now).
		Updates(map[string]any{
			"reset_token":        nil,
			"reset_token_expiry": nil,
		}).Error
}
