package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mvolkova/kids_shop/internal/config"
	"github.com/mvolkova/kids_shop/internal/events"
	"github.com/mvolkova/kids_shop/internal/httpserver"
	"github.com/mvolkova/kids_shop/internal/logging"
	mwlogging "github.com/mvolkova/kids_shop/internal/middleware/logging"
	"github.com/mvolkova/kids_shop/internal/repo"
	"github.com/mvolkova/kids_shop/internal/search"
	"github.com/mvolkova/kids_shop/internal/service"
)

func main() {
	cfg := config.Load()
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel, "kids-shop")

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()

	esClient, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
	if err != nil {
		// The catalog works without the index; log and continue.
		logger.Warn("search backend unavailable", "error", err)
	}

	gormRepo := &repo.GormRepo{DB: db}
	authSvc := &service.AuthService{
		Repo:      gormRepo,
		Producer:  producer,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
	}
	catalogSvc := &service.CatalogService{
		Repo:     gormRepo,
		Producer: producer,
		Search:   esClient,
	}
	wishlistSvc := &service.WishlistService{Repo: gormRepo}

	bootCtx, cancel := context.WithTimeout(logging.IntoContext(context.Background(), logger), 10*time.Second)
	err = authSvc.BootstrapAdmin(bootCtx, cfg.AdminEmail, cfg.AdminPassword)
	cancel()
	if err != nil {
		log.Fatalf("admin bootstrap error: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.Use(mwlogging.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:     &httpserver.AuthHTTP{Svc: authSvc},
		CatalogHandler:  &httpserver.CatalogHTTP{Svc: catalogSvc},
		WishlistHandler: &httpserver.WishlistHTTP{Svc: wishlistSvc},
		JWTSecret:       cfg.JWTSecret,
		RateLimitRPS:    cfg.RateLimitRPS,
	})

	go func() {
		if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("echo shutdown: %v", err)
	}
}
