package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/agentdeck/agentdeck/internal/middleware"
	"github.com/agentdeck/agentdeck/internal/tracing"
	"github.com/agentdeck/agentdeck/pkg/config"
	"github.com/agentdeck/agentdeck/pkg/dashboard"

	"github.com/gin-gonic/gin"
)

type Application struct {
	Config          *config.Config
	Engine          *gin.Engine
	Dashboard       *dashboard.Client
	Logger          *slog.Logger
	TracingShutdown func(context.Context) error
}

func NewApplication(cfg *config.Config) (*Application, error) {
	level := new(slog.LevelVar)
	switch cfg.LogLevel {
	case "debug":
		level.Set(slog.LevelDebug)
	case "warn":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	default:
		level.Set(slog.LevelInfo)
	}
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	logger := slog.New(handler).With("service", "deckd", "env", cfg.Env)
	slog.SetDefault(logger)

	tracingShutdown, err := tracing.Setup(context.Background(), tracing.Config{
		Enabled:      cfg.TracingEnabled,
		ServiceName:  cfg.TracingServiceName,
		OTLPEndpoint: cfg.OTLPEndpoint,
		OTLPInsecure: cfg.OTLPInsecure,
		SampleRatio:  cfg.TracingSampleRatio,
	}, logger)
	if err != nil {
		return nil, err
	}

	var clientOpts []dashboard.Option
	if cfg.TracingEnabled {
		clientOpts = append(clientOpts, dashboard.WithHTTPClient(&http.Client{
			Transport: &tracing.Transport{},
		}))
	}
	clientOpts = append(clientOpts, dashboard.WithTimeout(cfg.RequestTimeout()))
	client := dashboard.NewClient(cfg.DashboardBaseURL, clientOpts...)

	engine := gin.New()
	engine.Use(gin.Recovery(), middleware.RequestIDMiddleware(), middleware.LoggerMiddleware(logger))
	if cfg.TracingEnabled {
		engine.Use(middleware.TracingMiddleware(cfg.TracingServiceName))
	}

	return &Application{
		Config:          cfg,
		Engine:          engine,
		Dashboard:       client,
		Logger:          logger,
		TracingShutdown: tracingShutdown,
	}, nil
}
