package router

import (
	"net/http"

	cafesvc "brewdate-backend/internal/application/cafes"
	emailsvc "brewdate-backend/internal/application/emails"
	invsvc "brewdate-backend/internal/application/invitations"
	"brewdate-backend/internal/config"
	"brewdate-backend/internal/infrastructure/database"
	cafehandler "brewdate-backend/internal/interfaces/handlers/cafes"
	healthhandler "brewdate-backend/internal/interfaces/handlers/health"
	invhandler "brewdate-backend/internal/interfaces/handlers/invitations"
	"brewdate-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp wires middleware, services and routes. DB and Redis are optional:
// without a DATABASE_URL the app serves only health endpoints, without a
// REDIS_URL traffic stats are skipped.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opt)
	}
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	hh := &healthhandler.Handlers{
		Rdb:            rdb,
		DB:             nil,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/reset", hh.Reset)
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var errDB error
		db, errDB = database.Open(cfg.DatabaseURL)
		if errDB != nil {
			return nil, nil, nil, errDB
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
		hh.DB = &gormDBPinger{db: db}
	}

	if db != nil {
		var emailSender emailsvc.Sender
		if cfg.SendinblueAPIKey != "" {
			emailSender = &emailsvc.BrevoClient{APIKey: cfg.SendinblueAPIKey, MailFrom: cfg.MailFrom}
		}

		// Cafes
		cs := &cafesvc.Service{DB: db}
		ch := &cafehandler.Handlers{Service: cs}
		cg := app.Group("/api/v1/cafes")
		cg.Get("/shuffle", ch.Shuffle)
		cg.Get("/:id", ch.Get)
		cg.Get("/", ch.List)

		// Invitations
		is := &invsvc.Service{DB: db, EmailSender: emailSender, InviteBaseURL: cfg.InviteBaseURL}
		ih := &invhandler.Handlers{Service: is}
		ig := app.Group("/api/v1/invitations")
		ig.Post("/", ih.Create)
		ig.Get("/:token", ih.Get)
		ig.Post("/:token/confirm", ih.Confirm)
		ig.Post("/:token/decline", ih.Decline)
		ig.Delete("/:token", ih.Cancel)
	}

	return app, db, rdb, nil
}

func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
