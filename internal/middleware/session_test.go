package middleware

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSession(t *testing.T) (*redis.Client, fiber.Handler) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return rdb, SessionWithClient(rdb)
}

func TestSession_NoCookieIsAnonymous(t *testing.T) {
	_, handler := setupSession(t)
	app := fiber.New()
	app.Use(handler)
	app.Get("/whoami", func(c *fiber.Ctx) error {
		if GetUser(c) == nil {
			return c.SendString("anonymous")
		}
		return c.SendString("user")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSession_LoadsUserFromRedis(t *testing.T) {
	rdb, handler := setupSession(t)

	data, _ := json.Marshal(map[string]interface{}{
		"user": map[string]interface{}{
			"user_id":   "550e8400-e29b-41d4-a716-446655440000",
			"full_name": "Session User",
			"email":     "session@example.com",
		},
	})
	require.NoError(t, rdb.Set(context.Background(), "session:abc123", data, 0).Err())

	app := fiber.New()
	app.Use(handler)
	app.Get("/whoami", func(c *fiber.Ctx) error {
		id := CurrentUserID(c)
		return c.SendString(id.String())
	})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Cookie", "scraplink.sid=s:abc123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAuth_BlocksAnonymous(t *testing.T) {
	_, handler := setupSession(t)
	app := fiber.New()
	app.Use(handler)
	app.Get("/protected", RequireAuth(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuth_AllowsSessionUser(t *testing.T) {
	rdb, handler := setupSession(t)

	data, _ := json.Marshal(map[string]interface{}{
		"user": map[string]interface{}{"user_id": "550e8400-e29b-41d4-a716-446655440000"},
	})
	require.NoError(t, rdb.Set(context.Background(), "session:abc123", data, 0).Err())

	app := fiber.New()
	app.Use(handler)
	app.Get("/protected", RequireAuth(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Cookie", "scraplink.sid=s:abc123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCurrentUserID_Malformed(t *testing.T) {
	app := fiber.New()
	app.Get("/whoami", func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{"user_id": "not-a-uuid"})
		return c.SendString(CurrentUserID(c).String())
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
