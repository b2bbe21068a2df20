package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"

	"linkshare/internal/auth"
	"linkshare/internal/config"
	"linkshare/internal/db"
	"linkshare/internal/models"
	"linkshare/internal/server"
	"linkshare/internal/testutil"
)

// harness runs requests against a fully wired app backed by an in-memory store.
type harness struct {
	t      *testing.T
	app    *fiber.App
	db     *db.DB
	cfg    *config.Config
	tokens *auth.TokenService
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	cfg := testutil.TestConfig()
	database := testutil.TestDB(t)

	s := server.New(cfg)
	s.RegisterRoutes(database)

	return &harness{
		t:      t,
		app:    s.App,
		db:     database,
		cfg:    cfg,
		tokens: auth.NewTokenService(cfg),
	}
}

// result is a decoded response.
type result struct {
	Status  int
	Message string
	Data    json.RawMessage
	Raw     string
	Cookies []*http.Cookie
}

func (h *harness) do(method, path, token string, body any, cookies ...*http.Cookie) result {
	h.t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := h.app.Test(req)
	require.NoError(h.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(h.t, err)

	var env struct {
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(h.t, json.Unmarshal(raw, &env), "body: %s", raw)

	return result{
		Status:  resp.StatusCode,
		Message: env.Message,
		Data:    env.Data,
		Raw:     string(raw),
		Cookies: resp.Cookies(),
	}
}

// tokenFor mints an access token for session.
func (h *harness) tokenFor(session *models.Session) string {
	h.t.Helper()
	token, err := h.tokens.IssueAccess(session)
	require.NoError(h.t, err)
	return token
}

// user creates an account and returns its session and access token.
func (h *harness) user(email string) (*models.Session, string) {
	h.t.Helper()
	session := testutil.CreateTestUser(h.t, h.db, email, "password")
	return session, h.tokenFor(session)
}

func decode[T any](t *testing.T, r result) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(r.Data, &v), "data: %s", r.Data)
	return v
}

func cookieNamed(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}
