package internal

import (
	"paisa/expense-api/internal/service"
	"paisa/expense-api/internal/store"
	"paisa/expense-api/pkg/security"

	"gorm.io/gorm"
)

// Deps holds every shared dependency handlers need. It is constructed
// once at startup and passed in explicitly; nothing in the request path
// reaches for a global connection handle.
type Deps struct {
	DB        *gorm.DB
	Users     *store.Users
	Expenses  *store.Expenses
	Argon     *security.ArgonHash
	Mailer    service.Mailer
	JWTSecret []byte
}
