package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sixoracle/sentinel/accountstore"
	"github.com/sixoracle/sentinel/activitystore"
	"github.com/sixoracle/sentinel/cooldown"
	"github.com/sixoracle/sentinel/engine"
	"github.com/sixoracle/sentinel/flagstore"
	"github.com/sixoracle/sentinel/quota"
	"github.com/sixoracle/sentinel/rules"
	"github.com/sixoracle/sentinel/scorestore"
	"github.com/sixoracle/sentinel/violationstore"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	slogecho "github.com/samber/slog-echo"
	"gorm.io/gorm"
)

// one hour between owner alerts for the same user
var notificationCooldown = time.Hour

type Server struct {
	logger *slog.Logger
	engine *engine.Engine
	quota  *quota.Limiter
	echo   *echo.Echo
	httpd  *http.Server
}

type Config struct {
	Logger          *slog.Logger
	RedisURL        string
	OwnerWebhookURL string
	Bind            string
	QuotaPerMinute  int
}

func NewServer(db *gorm.DB, config Config) (*Server, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	accounts, err := accountstore.NewGormAccountStore(db)
	if err != nil {
		return nil, fmt.Errorf("initializing account store: %w", err)
	}

	var activity activitystore.ActivityStore
	var scores scorestore.ScoreStore
	var violations violationstore.ViolationStore
	var cooldowns cooldown.Store
	var flags flagstore.FlagStore
	if config.RedisURL != "" {
		act, err := activitystore.NewRedisActivityStore(config.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("initializing redis activity store: %w", err)
		}
		activity = act

		scr, err := scorestore.NewRedisScoreStore(config.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("initializing redis score store: %w", err)
		}
		scores = scr

		vio, err := violationstore.NewRedisViolationStore(config.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("initializing redis violation store: %w", err)
		}
		violations = vio

		cld, err := cooldown.NewRedisStore(config.RedisURL, notificationCooldown)
		if err != nil {
			return nil, fmt.Errorf("initializing redis cooldown store: %w", err)
		}
		cooldowns = cld

		flg, err := flagstore.NewRedisFlagStore(config.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("initializing redis flag store: %w", err)
		}
		flags = flg
	} else {
		activity = activitystore.NewMemActivityStore()
		scores = scorestore.NewMemScoreStore()
		violations = violationstore.NewMemViolationStore()
		cooldowns = cooldown.NewMemStore(10_000, notificationCooldown)
		flags = flagstore.NewMemFlagStore()
	}

	var notifier engine.Notifier
	if config.OwnerWebhookURL != "" {
		notifier = &engine.WebhookNotifier{
			WebhookURL: config.OwnerWebhookURL,
			Client:     &http.Client{Timeout: 10 * time.Second},
		}
	}

	eng := &engine.Engine{
		Logger:     logger,
		Rules:      rules.DefaultRules(),
		Activity:   activity,
		Scores:     scores,
		Violations: violations,
		Cooldowns:  cooldowns,
		Flags:      flags,
		Accounts:   accounts,
		Notifier:   notifier,
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(slogecho.New(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("64K"))

	srv := &Server{
		logger: logger,
		engine: eng,
		quota:  quota.NewLimiter(config.QuotaPerMinute),
		echo:   e,
	}
	srv.httpd = &http.Server{
		Handler:        e,
		Addr:           config.Bind,
		WriteTimeout:   time.Minute,
		ReadTimeout:    time.Minute,
		MaxHeaderBytes: 1 * (1024 * 1024),
	}

	e.GET("/_health", srv.handleHealthCheck)
	e.POST("/moderation/message", srv.handleCheckMessage)
	e.POST("/moderation/violation", srv.handleReportViolation)
	e.GET("/moderation/accounts/:id", srv.handleGetAccount)
	e.GET("/moderation/events", srv.handleListEvents)

	return srv, nil
}

func (srv *Server) Run(ctx context.Context) error {
	srv.logger.Info("starting moderation API", "bind", srv.httpd.Addr)
	go func() {
		if err := srv.httpd.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				srv.logger.Error("HTTP server shutting down unexpectedly", "err", err)
			}
		}
	}()

	exitSignals := make(chan os.Signal, 1)
	signal.Notify(exitSignals, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-exitSignals:
		srv.logger.Info("received OS exit signal", "signal", sig)
	case <-ctx.Done():
	}

	// let any in-flight owner alerts drain before exit
	srv.engine.WaitForAlerts()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.httpd.Shutdown(shutdownCtx)
}

func (srv *Server) RunMetrics(listen string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(listen, mux)
}
