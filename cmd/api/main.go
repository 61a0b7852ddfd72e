package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	invsvc "brewdate-backend/internal/application/invitations"
	"brewdate-backend/internal/application/sweeper"
	"brewdate-backend/internal/config"
	"brewdate-backend/internal/infrastructure/database"
	"brewdate-backend/internal/interfaces/router"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var fiberApp *fiber.App
var appCfg *config.Config
var startupDB *gorm.DB
var startupRdb *redis.Client

func init() {
	cfg, err := config.Load()
	if err != nil {
		panic("config load: " + err.Error())
	}
	appCfg = cfg
	app, db, rdb, err := router.CreateApp(cfg)
	if err != nil {
		panic("app create: " + err.Error())
	}
	fiberApp = app
	startupDB = db
	startupRdb = rdb
}

func main() {
	// Verify connections before printing
	if startupDB != nil {
		sqlDB, err := startupDB.DB()
		if err != nil {
			panic("Postgres: get DB: " + err.Error())
		}
		if err := sqlDB.Ping(); err != nil {
			panic("Postgres connection failed: " + err.Error())
		}
		fmt.Println("Postgres connected")
		if appCfg.Env == "development" {
			if err := database.SeedCafes(startupDB); err != nil {
				log.Warn().Err(err).Msg("Cafe seed failed")
			}
		}
	}
	if startupRdb != nil {
		if err := startupRdb.Ping(context.Background()).Err(); err != nil {
			panic("Redis connection failed: " + err.Error())
		}
		fmt.Println("Redis connected")
	}
	fmt.Printf("Server running at http://localhost:%s\n", appCfg.Port)
	fmt.Printf("Health check: http://localhost:%s/health/json\n", appCfg.Port)
	fmt.Println("---")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if startupDB != nil {
		sw := &sweeper.Sweeper{
			DB:          startupDB,
			Invitations: &invsvc.Service{DB: startupDB},
			Interval:    time.Duration(appCfg.SweepIntervalMin) * time.Minute,
		}
		go sw.Run(ctx)
	}

	go func() {
		if err := fiberApp.Listen(":" + appCfg.Port); err != nil {
			log.Error().Err(err).Msg("Server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	_ = fiberApp.Shutdown()
}
