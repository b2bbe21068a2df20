// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"linkshare/internal/config"
	"linkshare/internal/db"
	"linkshare/internal/models"
)

// TestConfig returns a configuration suitable for in-process tests.
func TestConfig() *config.Config {
	return &config.Config{
		Env:                "test",
		LogLevel:           "error",
		ServerAddr:         ":0",
		CORSOrigins:        "http://localhost:5173",
		DatabaseDriver:     config.DriverSQLite,
		DatabaseURL:        ":memory:",
		AccessTokenSecret:  "test-access-secret",
		RefreshTokenSecret: "test-refresh-secret",
		AccessTokenTTL:     time.Hour,
		RefreshTokenTTL:    24 * time.Hour,
		CookieSecret:       "test-cookie-secret",
		BcryptCost:         bcrypt.MinCost,
		RateLimitMax:       10000,
	}
}

// TestDB opens a migrated in-memory store seeded with the default
// categories. It is closed when the test finishes.
func TestDB(t *testing.T) *db.DB {
	t.Helper()

	ctx := context.Background()
	database, err := db.Open(ctx, config.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := database.RunMigrations(); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	if _, err := database.SeedCategories(ctx, config.DefaultCategories); err != nil {
		t.Fatalf("failed to seed categories: %v", err)
	}

	return database
}

// CreateTestUser creates a user with the given email and password and
// returns its session.
func CreateTestUser(t *testing.T, database *db.DB, email, password string) *models.Session {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user, err := database.CreateUser(context.Background(), email, string(hash))
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return &models.Session{UserID: user.ID, Email: user.Email}
}

// CategoryID returns the id of the seeded category with the given name.
func CategoryID(t *testing.T, database *db.DB, name string) string {
	t.Helper()

	categories, err := database.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("failed to list categories: %v", err)
	}
	for _, c := range categories {
		if c.Name == name {
			return c.ID
		}
	}
	t.Fatalf("category %q not found", name)
	return ""
}

// CreateTestLink creates a link owned by owner in the named category.
func CreateTestLink(t *testing.T, database *db.DB, owner *models.Session, category, name string) *models.Link {
	t.Helper()

	link, err := database.CreateLink(context.Background(), owner, &models.LinkRequest{
		CategoryID: CategoryID(t, database, category),
		Name:       name,
		URL:        "https://example.com/" + name,
	})
	if err != nil {
		t.Fatalf("failed to create test link: %v", err)
	}
	return link
}
