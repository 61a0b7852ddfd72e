package bootstrap

import (
	"brewdate-backend/internal/config"
	"brewdate-backend/internal/interfaces/router"

	"github.com/gofiber/fiber/v2"
)

// New creates the Fiber app for serverless deploys (the api handler imports
// this package, not internal). The expiration sweep does not run there; a
// scheduled invocation of the local binary covers it.
func New() (*fiber.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	app, _, _, err := router.CreateApp(cfg)
	return app, err
}
