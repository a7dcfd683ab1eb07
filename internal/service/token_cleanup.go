package service

import (
	"time"

	"paisa/expense-api/internal/store"

	"go.uber.org/zap"
)

// TokenCleanup periodically wipes expired verification and reset token
// fields. Expired tokens are already rejected at lookup time; the sweep
// just keeps dead secrets out of the table.
func TokenCleanup(t time.Duration, users *store.Users) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Token cleanup attached", zap.Duration("tick_every", t))

	go func() {
		for range ticker.C {
			if err := users.ClearExpiredTokens(time.Now()); err != nil {
				zap.L().Error("Failed to clear expired tokens", zap.Error(err))
			}
		}
	}()
}
