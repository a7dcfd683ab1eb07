package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"paisa/expense-api/internal/model"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name, err := gonanoid.Generate("abcdefghijklmnopqrstuvwxyz", 10)
	require.NoError(t, err)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Expense{}))
	return db
}

func seedUser(t *testing.T, users *Users, email string) *model.User {
	t.Helper()

	u := &model.User{
		ID:           "id-" + email,
		Email:        NormalizeEmail(email),
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
	}
	require.NoError(t, users.Create(u))
	return u
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a@x.com", NormalizeEmail("  A@X.CoM "))
}

func TestCreate_DuplicateEmail(t *testing.T) {
	t.Parallel()

	users := NewUsers(newTestDB(t))
	seedUser(t, users, "a@x.com")

	err := users.Create(&model.User{
		ID:           "other-id",
		Email:        "a@x.com",
		FirstName:    "Other",
		LastName:     "User",
		PasswordHash: "hash",
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestCreate_ConcurrentDuplicate(t *testing.T) {
	t.Parallel()

	users := NewUsers(newTestDB(t))

	// The unique index must pick exactly one winner, the pre-existence
	// check alone can't
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = users.Create(&model.User{
				ID:           fmt.Sprintf("racer-%d", i),
				Email:        "race@x.com",
				FirstName:    "Race",
				LastName:     "User",
				PasswordHash: "hash",
			})
		}()
	}
	wg.Wait()

	winners, losers := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			winners++
		case assert.ErrorIs(t, err, ErrDuplicateEmail):
			losers++
		}
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, 1, losers)
}

func TestFindByEmail_Normalizes(t *testing.T) {
	t.Parallel()

	users := NewUsers(newTestDB(t))
	seedUser(t, users, "a@x.com")

	u, err := users.FindByEmail("  A@X.com ")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)

	_, err = users.FindByEmail("nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindByVerificationToken(t *testing.T) {
	t.Parallel()

	users := NewUsers(newTestDB(t))
	u := seedUser(t, users, "a@x.com")

	token := "deadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef"
	expiry := time.Now().Add(10 * time.Minute)
	require.NoError(t, users.SetVerificationToken(u.ID, token, expiry))

	// Exact token
	found, err := users.FindByVerificationToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	// 6-char code, case-insensitive prefix of the same token
	found, err = users.FindByVerificationToken("DEADBE")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = users.FindByVerificationToken("ffffff")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindByVerificationToken_RejectsWildcards(t *testing.T) {
	t.Parallel()

	users := NewUsers(newTestDB(t))
	u := seedUser(t, users, "a@x.com")

	token := "deadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef"
	require.NoError(t, users.SetVerificationToken(u.ID, token, time.Now().Add(10*time.Minute)))

	// LIKE metacharacters must never act as wildcards against the
	// stored token
	for _, code := range []string{"%%%%%%", "______", "d%adbe", "dead_e", "%eadbe", "deadb%"} {
		_, err := users.FindByVerificationToken(code)
		assert.ErrorIs(t, err, ErrNotFound, "code %q", code)
	}
}

func TestSetVerificationToken_Overwrites(t *testing.T) {
	t.Parallel()

	users := NewUsers(newTestDB(t))
	u := seedUser(t, users, "a@x.com")

	expiry := time.Now().Add(10 * time.Minute)
	require.NoError(t, users.SetVerificationToken(u.ID, "aaaa1111aaaa1111", expiry))
	require.NoError(t, users.SetVerificationToken(u.ID, "bbbb2222bbbb2222", expiry))

	// The first token stopped existing the moment the second landed
	_, err := users.FindByVerificationToken("aaaa1111aaaa1111")
	assert.ErrorIs(t, err, ErrNotFound)

	found, err := users.FindByVerificationToken("bbbb2222bbbb2222")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
}

func TestMarkVerified_ClearsToken(t *testing.T) {
	t.Parallel()

	users := NewUsers(newTestDB(t))
	u := seedUser(t, users, "a@x.com")

	require.NoError(t, users.SetVerificationToken(u.ID, "cccc3333cccc3333", time.Now().Add(time.Minute)))
	require.NoError(t, users.MarkVerified(u.ID))

	fresh, err := users.FindByID(u.ID)
	require.NoError(t, err)
	assert.True(t, fresh.Verified)
	assert.Nil(t, fresh.VerificationToken)
	assert.Nil(t, fresh.VerificationTokenExpiry)
}

func TestFindByLiveResetToken(t *testing.T) {
	t.Parallel()

	users := NewUsers(newTestDB(t))
	u := seedUser(t, users, "a@x.com")

	require.NoError(t, users.SetResetToken(u.ID, "reset-token", time.Now().Add(time.Minute)))

	found, err := users.FindByLiveResetToken("reset-token", time.Now())
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	// Strictly-in-the-future check: an expired token is not live
	require.NoError(t, users.SetResetToken(u.ID, "reset-token", time.Now().Add(-time.Second)))
	_, err = users.FindByLiveResetToken("reset-token", time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResetPassword_ClearsToken(t *testing.T) {
	t.Parallel()

	users := NewUsers(newTestDB(t))
	u := seedUser(t, users, "a@x.com")

	require.NoError(t, users.SetResetToken(u.ID, "reset-token", time.Now().Add(time.Minute)))
	require.NoError(t, users.ResetPassword(u.ID, "new-hash"))

	fresh, err := users.FindByID(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", fresh.PasswordHash)
	assert.Nil(t, fresh.ResetToken)
	assert.Nil(t, fresh.ResetTokenExpiry)
}

func TestClearExpiredTokens(t *testing.T) {
	t.Parallel()

	users := NewUsers(newTestDB(t))
	stale := seedUser(t, users, "stale@x.com")
	live := seedUser(t, users, "live@x.com")

	require.NoError(t, users.SetVerificationToken(stale.ID, "stale-token", time.Now().Add(-time.Hour)))
	require.NoError(t, users.SetVerificationToken(live.ID, "live-token", time.Now().Add(time.Hour)))

	require.NoError(t, users.ClearExpiredTokens(time.Now()))

	fresh, err := users.FindByID(stale.ID)
	require.NoError(t, err)
	assert.Nil(t, fresh.VerificationToken)

	fresh, err = users.FindByID(live.ID)
	require.NoError(t, err)
	require.NotNil(t, fresh.VerificationToken)
	assert.Equal(t, "live-token", *fresh.VerificationToken)
}
