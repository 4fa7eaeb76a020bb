package http

import (
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLimiterWithoutClientPassesThrough(t *testing.T) {
	limiter := NewRateLimiter(nil, zap.NewNop(), 15*time.Minute)

	app := fiber.New()
	app.Get("/", limiter.Limit("general", 1), func(c *fiber.Ctx) error {
		return c.SendStatus(nethttp.StatusOK)
	})

	// Without a Redis client the limiter never blocks, even past max.
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	}
}

func TestLimiterZeroBudgetPassesThrough(t *testing.T) {
	limiter := NewRateLimiter(nil, zap.NewNop(), 15*time.Minute)

	app := fiber.New()
	app.Get("/", limiter.Limit("auth", 0), func(c *fiber.Ctx) error {
		return c.SendStatus(nethttp.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
}
