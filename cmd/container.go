// cmd/container.go
//
// Root composition root. Owns infrastructure (DB, Redis, external providers)
// and composes the generation engine. This is the only place that knows
// about ALL modules.
package main

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Abraxas-365/packwright/pkg/config"
	"github.com/Abraxas-365/packwright/pkg/forecast"
	"github.com/Abraxas-365/packwright/pkg/forecast/forecastwapi"
	"github.com/Abraxas-365/packwright/pkg/genjob"
	"github.com/Abraxas-365/packwright/pkg/genjob/genjobhttp"
	"github.com/Abraxas-365/packwright/pkg/genjob/genjobredis"
	"github.com/Abraxas-365/packwright/pkg/llm"
	"github.com/Abraxas-365/packwright/pkg/llm/providers/llmanthropic"
	"github.com/Abraxas-365/packwright/pkg/llm/providers/llmopenai"
	"github.com/Abraxas-365/packwright/pkg/logx"
	"github.com/Abraxas-365/packwright/pkg/plan"
	"github.com/Abraxas-365/packwright/pkg/plan/planpg"
	"github.com/Abraxas-365/packwright/pkg/plangen"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// Container holds shared infrastructure and composed module components.
type Container struct {
	Config *config.Config

	// Infrastructure (shared across all modules)
	DB    *sqlx.DB
	Redis *redis.Client

	// Generation engine
	JobStore    genjob.RecordStore
	Artifacts   plan.Store
	Generator   *plangen.Generator
	JobService  *genjob.Service
	JobRunner   *genjob.Runner
	JobSweeper  *genjob.Sweeper
	JobHandlers *genjobhttp.Handlers

	bg sync.WaitGroup
}

func NewContainer(cfg *config.Config) *Container {
	logx.Info("🔧 Initializing application container...")

	c := &Container{Config: cfg}

	c.initInfrastructure()
	c.initModules()

	logx.Info("✅ Application container initialized")
	return c
}

// ---------------------------------------------------------------------------
// Infrastructure - DB, Redis
// ---------------------------------------------------------------------------

func (c *Container) initInfrastructure() {
	logx.Info("🏗️ Initializing infrastructure...")

	// 1. Database
	db, err := sqlx.Connect("postgres", c.Config.Database.DSN())
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(c.Config.Database.MaxOpenConns)
	db.SetMaxIdleConns(c.Config.Database.MaxIdleConns)
	db.SetConnMaxLifetime(c.Config.Database.ConnMaxLifetime)
	c.DB = db
	logx.Info("  ✅ Database connected")

	// 2. Redis
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Address(),
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Fatalf("Failed to connect to Redis: %v (Redis is required)", err)
	}
	logx.Info("  ✅ Redis connected")

	logx.Info("✅ Infrastructure initialized")
}

// ---------------------------------------------------------------------------
// Module composition
// ---------------------------------------------------------------------------

func (c *Container) initModules() {
	logx.Info("📦 Initializing modules...")

	c.JobStore = genjobredis.NewRedisStore(c.Redis)
	c.Artifacts = planpg.NewPostgresStore(c.DB)

	c.Generator = plangen.New(c.initLLMClient(), c.initForecastProvider(), c.chatOptions()...)

	cfg := c.Config.GenJob
	c.JobService = genjob.NewService(c.JobStore, c.Artifacts, cfg.MaxRetries, cfg.Deadline)
	c.JobRunner = genjob.NewRunner(c.JobStore, c.Generator, c.Artifacts,
		genjob.WithWorkers(cfg.Workers),
		genjob.WithDeadline(cfg.Deadline),
		genjob.WithWarnAfter(cfg.WarnAfter),
		genjob.WithClaimTimeout(cfg.ClaimTimeout),
		genjob.WithPromoteInterval(cfg.PromoteInterval),
		genjob.WithShutdownTimeout(cfg.ShutdownTimeout),
	)
	c.JobSweeper = genjob.NewSweeper(c.JobStore, cfg.CleanupInterval, cfg.MaxAge)
	c.JobHandlers = genjobhttp.NewHandlers(c.JobService)

	logx.Info("  ✅ Plan generation engine initialized")
}

func (c *Container) initLLMClient() llm.Client {
	cfg := c.Config.LLM
	switch strings.ToLower(cfg.Provider) {
	case "anthropic":
		logx.Info("  ✅ Anthropic chat provider configured")
		return llmanthropic.NewAnthropicProvider(cfg.APIKey)
	case "openai":
		logx.Info("  ✅ OpenAI chat provider configured")
		return llmopenai.NewOpenAIProvider(cfg.APIKey)
	default:
		logx.Fatalf("Unknown LLM_PROVIDER: %s (use 'openai' or 'anthropic')", cfg.Provider)
		return nil
	}
}

func (c *Container) initForecastProvider() forecast.Provider {
	cfg := c.Config.Forecast
	if cfg.APIKey == "" {
		logx.Warn("  ⚠️ WEATHER_API_KEY not set, plans will be generated without forecasts")
		return nil
	}
	httpClient := &http.Client{Timeout: cfg.Timeout}
	logx.Info("  ✅ WeatherAPI forecast provider configured")
	return forecastwapi.NewWeatherAPIProvider(cfg.APIKey, cfg.BaseURL, httpClient)
}

func (c *Container) chatOptions() []llm.Option {
	cfg := c.Config.LLM
	opts := []llm.Option{llm.WithTemperature(cfg.Temperature)}
	if cfg.Model != "" {
		opts = append(opts, llm.WithModel(cfg.Model))
	}
	return opts
}

// ---------------------------------------------------------------------------
// Lifecycle
// ---------------------------------------------------------------------------

// StartBackgroundServices launches the job runner and the cleanup sweeper.
// Both stop when ctx is canceled; the runner drains in-flight jobs first.
func (c *Container) StartBackgroundServices(ctx context.Context) {
	logx.Info("🔄 Starting background services...")

	c.bg.Add(1)
	go func() {
		defer c.bg.Done()
		if err := c.JobRunner.Start(ctx); err != nil {
			logx.Errorf("Job runner stopped: %v", err)
		}
	}()
	logx.Infof("  ✅ Job runner started (%d workers)", c.Config.GenJob.Workers)

	c.bg.Add(1)
	go func() {
		defer c.bg.Done()
		c.JobSweeper.Start(ctx)
	}()
	logx.Infof("  ✅ Cleanup sweeper started (every %s)", c.Config.GenJob.CleanupInterval)
}

// WaitBackground blocks until background services exit or timeout elapses.
func (c *Container) WaitBackground(timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		c.bg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		logx.Warn("Background services did not stop before timeout")
	}
}

func (c *Container) Cleanup() {
	logx.Info("🧹 Cleaning up resources...")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Errorf("Error closing database: %v", err)
		} else {
			logx.Info("  ✅ Database connection closed")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Errorf("Error closing Redis: %v", err)
		} else {
			logx.Info("  ✅ Redis connection closed")
		}
	}

	logx.Info("✅ Cleanup complete")
}

// drainTimeout gives background services a beat to finish after ctx cancel.
func drainTimeout(cfg *config.Config) time.Duration {
	return cfg.GenJob.ShutdownTimeout + time.Second
}
