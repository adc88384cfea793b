package middleware

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/chynybekuuludastan/content_optimizer/internal/config"
	"github.com/chynybekuuludastan/content_optimizer/internal/models"
)

type fakeTokenStore struct {
	state map[string]bool
}

func (s *fakeTokenStore) Get(key string, dest interface{}) error {
	v, ok := s.state[key]
	if !ok {
		return errors.New("redis: nil")
	}
	*(dest.(*bool)) = v
	return nil
}

func newAuthTestApp(cfg *config.Config, tokens TokenStore) *fiber.App {
	app := fiber.New()
	app.Get("/protected", JWTMiddleware(cfg, tokens), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals("userID").(uuid.UUID).String(),
			"role":    c.Locals("role").(string),
		})
	})
	return app
}

func TestJWTMiddlewareAcceptsActiveToken(t *testing.T) {
	assert := assert.New(t)

	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiration: time.Hour}
	user := &models.User{ID: uuid.New()}
	token, err := GenerateJWT(user, "editor", cfg.JWTSecret, cfg.JWTExpiration)
	assert.NoError(err)

	store := &fakeTokenStore{state: map[string]bool{"token:" + token: true}}
	app := newAuthTestApp(cfg, store)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	assert.NoError(err)
	assert.Equal(fiber.StatusOK, resp.StatusCode)
}

func TestJWTMiddlewareRejectsRevokedToken(t *testing.T) {
	assert := assert.New(t)

	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiration: time.Hour}
	user := &models.User{ID: uuid.New()}
	token, err := GenerateJWT(user, "editor", cfg.JWTSecret, cfg.JWTExpiration)
	assert.NoError(err)

	// Logout flips the entry to false; the token itself is still unexpired
	store := &fakeTokenStore{state: map[string]bool{"token:" + token: false}}
	app := newAuthTestApp(cfg, store)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	assert.NoError(err)
	assert.Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTMiddlewareAllowsUntrackedToken(t *testing.T) {
	assert := assert.New(t)

	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiration: time.Hour}
	user := &models.User{ID: uuid.New()}
	token, err := GenerateJWT(user, "admin", cfg.JWTSecret, cfg.JWTExpiration)
	assert.NoError(err)

	// No store entry, e.g. after a Redis flush: a valid signature still wins
	store := &fakeTokenStore{state: map[string]bool{}}
	app := newAuthTestApp(cfg, store)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	assert.NoError(err)
	assert.Equal(fiber.StatusOK, resp.StatusCode)
}

func TestJWTMiddlewareRejectsBadTokens(t *testing.T) {
	assert := assert.New(t)

	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiration: time.Hour}
	store := &fakeTokenStore{state: map[string]bool{}}
	app := newAuthTestApp(cfg, store)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/protected", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		resp, err := app.Test(req)
		assert.NoError(err, tt.name)
		assert.Equal(fiber.StatusUnauthorized, resp.StatusCode, tt.name)
	}
}

func TestJWTMiddlewareRejectsWrongSecret(t *testing.T) {
	assert := assert.New(t)

	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiration: time.Hour}
	user := &models.User{ID: uuid.New()}
	token, err := GenerateJWT(user, "editor", "another-secret", time.Hour)
	assert.NoError(err)

	store := &fakeTokenStore{state: map[string]bool{}}
	app := newAuthTestApp(cfg, store)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	assert.NoError(err)
	assert.Equal(fiber.StatusUnauthorized, resp.StatusCode)
}
