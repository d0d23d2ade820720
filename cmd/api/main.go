package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"event-prep-engine/config"
	"event-prep-engine/internal/event"
	gcalSource "event-prep-engine/internal/event/repository/gcal"
	"event-prep-engine/internal/event/repository/icsfeed"
	eventMemory "event-prep-engine/internal/event/repository/memory"
	"event-prep-engine/internal/httpserver"
	"event-prep-engine/internal/learning"
	learningFS "event-prep-engine/internal/learning/repository/localfs"
	"event-prep-engine/internal/model"
	"event-prep-engine/internal/pattern"
	prepHTTP "event-prep-engine/internal/prep/delivery/http"
	prepUC "event-prep-engine/internal/prep/usecase"
	syncpkg "event-prep-engine/internal/sync"
	syncHTTP "event-prep-engine/internal/sync/delivery/http"
	"event-prep-engine/internal/sync/delivery/ws"
	"event-prep-engine/internal/template/cache"
	templateRepo "event-prep-engine/internal/template/repository"
	"event-prep-engine/internal/template/repository/authority"
	templateFS "event-prep-engine/internal/template/repository/localfs"
	"event-prep-engine/internal/timeline"
	"event-prep-engine/pkg/gcalendar"
	"event-prep-engine/pkg/log"
)

// @title       Event Preparation Engine API
// @description Adaptive event preparation: pattern classification, prep timelines, offline-first templates, and learning from task outcomes.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Event Preparation Engine...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	sc := model.Scope{HouseholdID: cfg.Household.ID}

	// 3. Connectivity and remote authority
	var remote templateRepo.RemoteAuthority
	initiallyOnline := cfg.Sync.InitiallyOnline
	if cfg.Authority.BaseURL != "" {
		remote = authority.NewClient(cfg.Authority.BaseURL, cfg.Authority.APIKey,
			time.Duration(cfg.Authority.TimeoutSeconds)*time.Second)
	} else {
		logger.Warn(ctx, "no authority configured, running local-only")
		initiallyOnline = false
	}
	monitor := syncpkg.NewMonitor(logger, initiallyOnline)

	// 4. Template cache
	templateStore, err := templateFS.New(logger, cfg.Storage.DataDir)
	if err != nil {
		logger.Error(ctx, "Failed to open template store: ", err)
		return
	}
	templates, err := cache.New(logger, templateStore, remote, monitor, cfg.Prep.MinTemplateConfidence)
	if err != nil {
		logger.Error(ctx, "Failed to initialize template cache: ", err)
		return
	}

	// 5. Learning engine
	actionLog, err := learningFS.New(logger, cfg.Storage.DataDir)
	if err != nil {
		logger.Error(ctx, "Failed to open action log: ", err)
		return
	}
	engine := learning.New(logger, templates, actionLog, remote, monitor)

	// 6. Sync coordinator
	coordinator := syncpkg.NewCoordinator(logger, monitor, templates, engine)
	go coordinator.Run(ctx, sc)

	// 7. Realtime hub
	hub := ws.NewHub(logger)
	go hub.Run(ctx)

	// 8. Event sources
	eventStore := eventMemory.New()
	var sources []event.Source

	if cfg.GoogleCalendar.CredentialsPath != "" {
		calendarClient, calErr := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
		if calErr != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", calErr)
		} else {
			sources = append(sources, gcalSource.New(calendarClient, cfg.GoogleCalendar.CalendarID))
			logger.Info(ctx, "Google Calendar source initialized")
		}
	}
	if cfg.ICS.FeedURL != "" {
		sources = append(sources, icsfeed.New(logger, cfg.ICS.FeedURL, 30*time.Second))
		logger.Infof(ctx, "ICS feed source initialized: %s", cfg.ICS.FeedURL)
	}

	refreshWindow := time.Duration(cfg.Refresh.WindowDays) * 24 * time.Hour
	refresher := event.NewRefresher(logger, eventStore, refreshWindow, sources...)
	if len(sources) > 0 {
		if _, refErr := refresher.Refresh(ctx); refErr != nil {
			logger.Warnf(ctx, "initial calendar refresh: %v", refErr)
		}
	}

	// 9. Prep use case
	classifier := pattern.NewClassifier(pattern.Defaults())
	scheduler := timeline.New(classifier, timeline.HouseholdConfig{
		HasDog:               cfg.Household.HasDog,
		DogCareMinutes:       cfg.Household.DogCareMinutes,
		MealPrepMinutes:      cfg.Household.MealPrepMinutes,
		GeneralPrepMinutes:   cfg.Household.GeneralPrepMinutes,
		CommuteBufferMinutes: cfg.Household.CommuteBufferMinutes,
		Children:             cfg.Household.Children,
	})
	uc := prepUC.New(logger, classifier, scheduler, templates, engine, eventStore, hub,
		time.Duration(cfg.Prep.WindowMinutes)*time.Minute)

	// 10. Background jobs
	jobs := cron.New()
	if len(sources) > 0 && cfg.Refresh.Cron != "" {
		if _, jobErr := jobs.AddFunc(cfg.Refresh.Cron, func() {
			if _, err := refresher.Refresh(ctx); err != nil {
				logger.Warnf(ctx, "calendar refresh: %v", err)
			}
		}); jobErr != nil {
			logger.Warnf(ctx, "invalid refresh cron %q: %v", cfg.Refresh.Cron, jobErr)
		}
	}
	if cfg.Sync.FlushCron != "" {
		if _, jobErr := jobs.AddFunc(cfg.Sync.FlushCron, func() {
			if err := coordinator.Flush(ctx, sc); err != nil {
				logger.Warnf(ctx, "periodic flush: %v", err)
			}
		}); jobErr != nil {
			logger.Warnf(ctx, "invalid flush cron %q: %v", cfg.Sync.FlushCron, jobErr)
		}
	}
	if cfg.Learning.DecayCron != "" {
		if _, jobErr := jobs.AddFunc(cfg.Learning.DecayCron, func() {
			n, err := engine.Decay(ctx, sc)
			if err != nil {
				logger.Warnf(ctx, "confidence decay: %v", err)
				return
			}
			if n > 0 {
				logger.Infof(ctx, "decayed confidence on %d stale templates", n)
			}
		}); jobErr != nil {
			logger.Warnf(ctx, "invalid decay cron %q: %v", cfg.Learning.DecayCron, jobErr)
		}
	}
	jobs.Start()
	defer jobs.Stop()

	// 11. HTTP server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:             logger,
		Port:               cfg.HTTPServer.Port,
		Mode:               cfg.HTTPServer.Mode,
		Environment:        cfg.Environment.Name,
		DefaultHouseholdID: cfg.Household.ID,
		RateLimitPerMin:    cfg.HTTPServer.RateLimitPerMin,
		PrepHandler:        prepHTTP.New(logger, uc),
		SyncHandler:        syncHTTP.New(logger, monitor, coordinator),
		WSHandler:          ws.NewHandler(logger, hub),
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 12. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
