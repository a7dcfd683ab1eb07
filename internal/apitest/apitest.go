// Package apitest provides helpers for exercising the API surface in
// tests: an isolated in-memory database, a stub mailer that captures
// outgoing tokens, and a fully wired router.
package apitest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"paisa/expense-api/app"
	"paisa/expense-api/internal"
	"paisa/expense-api/internal/model"
	"paisa/expense-api/internal/store"
	"paisa/expense-api/pkg/security"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Secret is the session signing secret test routers run with.
const Secret = "apitest-signing-secret"

// StubMailer records outgoing mail instead of dialing SMTP.
type StubMailer struct {
	mu sync.Mutex

	// Last token handed to each address, per mail kind
	VerificationTokens map[string]string
	ResetTokens        map[string]string

	// When set, every send reports failure
	Fail bool
}

func NewStubMailer() *StubMailer {
	return &StubMailer{
		VerificationTokens: make(map[string]string),
		ResetTokens:        make(map[string]string),
	}
}

func (m *StubMailer) SendVerificationMail(to, firstName, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return errors.New("smtp unavailable")
	}
	m.VerificationTokens[to] = token
	return nil
}

func (m *StubMailer) SendPasswordResetMail(to, firstName, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return errors.New("smtp unavailable")
	}
	m.ResetTokens[to] = token
	return nil
}

// Env is a wired test instance.
type Env struct {
	Router *gin.Engine
	Deps   *internal.Deps
	Mailer *StubMailer
}

// New builds an Env backed by a fresh shared-cache in-memory sqlite
// database. Writes are funneled through a single connection so
// concurrent test traffic can't trip sqlite busy errors.
func New(t *testing.T) *Env {
	t.Helper()

	gin.SetMode(gin.TestMode)

	viper.Set("jwt.secret", Secret)
	viper.Set("tokens.verify_ttl", "15m")
	viper.Set("tokens.reset_ttl", "15m")
	viper.Set("host.ssl.enabled", false)
	viper.Set("host.cors", "http://localhost")
	viper.Set("security.rate_limit", 5000)

	name, err := gonanoid.Generate("abcdefghijklmnopqrstuvwxyz", 10)
	if err != nil {
		t.Fatalf("generate db name: %v", err)
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := conn.AutoMigrate(&model.User{}, &model.Expense{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	mailer := NewStubMailer()
	d := &internal.Deps{
		DB:        conn,
		Users:     store.NewUsers(conn),
		Expenses:  store.NewExpenses(conn),
		Argon:     security.NewArgon(),
		Mailer:    mailer,
		JWTSecret: []byte(Secret),
	}

	return &Env{
		Router: app.NewRouter(d),
		Deps:   d,
		Mailer: mailer,
	}
}

// Do performs a JSON request against the router. A non-empty session
// token is sent as a Bearer header.
func (e *Env) Do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}

// Decode unmarshals a recorded JSON response body.
func Decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	out := map[string]any{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

// Register creates an account through the API and returns the
// verification token the stub mailer captured.
func (e *Env) Register(t *testing.T, email, password string) string {
	t.Helper()

	w := e.Do(t, http.MethodPost, "/api/users", map[string]any{
		"firstname": "Test",
		"lastname":  "User",
		"email":     email,
		"password":  password,
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d body %s", email, w.Code, w.Body.String())
	}

	e.Mailer.mu.Lock()
	defer e.Mailer.mu.Unlock()
	return e.Mailer.VerificationTokens[email]
}

// RegisterVerified registers and verifies an account, then logs it in
// and returns the session token.
func (e *Env) RegisterVerified(t *testing.T, email, password string) string {
	t.Helper()

	token := e.Register(t, email, password)

	w := e.Do(t, http.MethodPost, "/api/users/verify", map[string]any{"token": token}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("verify %s: status %d body %s", email, w.Code, w.Body.String())
	}

	w = e.Do(t, http.MethodPost, "/api/users/login", map[string]any{
		"email":    email,
		"password": password,
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", email, w.Code, w.Body.String())
	}

	return Decode(t, w)["token"].(string)
}
