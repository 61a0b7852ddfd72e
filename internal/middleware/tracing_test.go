package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func traceApp() *fiber.App {
	app := fiber.New()
	app.Use(Tracing())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(GetTraceID(c))
	})
	return app
}

func TestTracing_MintsIDWhenAbsent(t *testing.T) {
	app := traceApp()
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	got := resp.Header.Get("X-Trace-Id")
	_, parseErr := uuid.Parse(got)
	assert.NoError(t, parseErr)
}

func TestTracing_ReusesInboundID(t *testing.T) {
	app := traceApp()
	inbound := uuid.New().String()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Trace-Id", inbound)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, inbound, resp.Header.Get("X-Trace-Id"))
}

func TestTracing_RejectsMalformedInboundID(t *testing.T) {
	app := traceApp()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Trace-Id", "not-a-uuid")

	resp, err := app.Test(req)
	require.NoError(t, err)

	got := resp.Header.Get("X-Trace-Id")
	assert.NotEqual(t, "not-a-uuid", got)
	_, parseErr := uuid.Parse(got)
	assert.NoError(t, parseErr)
}
