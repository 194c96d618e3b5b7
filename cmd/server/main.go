package main // Entry point package

import (
	"github.com/joho/godotenv"    // loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework
	"go.uber.org/zap"             // structured logging

	"github.com/mediatrack/media-billboard/internal/billboard"
	"github.com/mediatrack/media-billboard/internal/config"
	"github.com/mediatrack/media-billboard/internal/database"
	"github.com/mediatrack/media-billboard/internal/handler"
	"github.com/mediatrack/media-billboard/internal/middleware"
	"github.com/mediatrack/media-billboard/internal/queue"
	"github.com/mediatrack/media-billboard/internal/repository"
	"github.com/mediatrack/media-billboard/internal/router"
	"github.com/mediatrack/media-billboard/internal/service"
	"github.com/mediatrack/media-billboard/pkg/logger"
)

func main() {
	// A missing .env is fine in deployed environments where variables are
	// injected directly.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.WithComponent("server")

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	// Repositories over the shared pool.
	users := repository.NewUserRepo(db)
	media := repository.NewMediaRepo(db)
	venues := repository.NewVenueRepo(db)
	tickets := repository.NewTicketRepo(db)

	board := billboard.New(repository.NewBillboardRepo(db), cfg.BillboardTop)
	purchases := service.NewTicketService(
		repository.NewPurchaseStore(db, media, venues, tickets),
		board,
		service.PublishTicketPurchased,
	)

	// The consumer drains purchase events into an audit log. A broker
	// outage must not take the API down with it.
	go func() {
		if err := queue.StartPurchaseConsumer(); err != nil {
			log.Warn("purchase consumer stopped", zap.Error(err))
		}
	}()

	rdb := config.NewRedisClient()
	e := echo.New()
	e.HideBanner = true
	if rdb != nil {
		e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	}

	var cache echo.MiddlewareFunc
	if rdb != nil {
		cache = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users), cfg.JWTSecret)
	router.RegisterBillboard(e, handler.NewBillboardHandler(board), cache)
	router.RegisterTickets(e, handler.NewTicketHandler(purchases, tickets), cfg.JWTSecret)
	router.RegisterMedia(e, handler.NewMediaHandler(cfg, media, venues, board), cfg.JWTSecret, cache)

	// Uploaded images are served straight from disk.
	e.Static("/uploads", cfg.UploadDir)

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
