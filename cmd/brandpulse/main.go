package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brandpulse/internal/auth"
	"brandpulse/internal/brand"
	"brandpulse/internal/config"
	"brandpulse/internal/db"
	"brandpulse/internal/goals"
	httpx "brandpulse/internal/http"
	"brandpulse/internal/http/handler"
	"brandpulse/internal/insights"
	"brandpulse/internal/jobs"
	"brandpulse/internal/linkedin"
	"brandpulse/internal/mentor"
	"brandpulse/internal/monitor"
	"brandpulse/internal/profile"
	"brandpulse/internal/scheduler"
	"brandpulse/internal/tasks"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("db connect: %v", err)
	}
	if err := db.AutoMigrateAndIndexes(gdb); err != nil {
		logrus.Fatalf("db migrate: %v", err)
	}

	jwtSvc := auth.NewJWT(cfg.JWTSecret)

	// domain services
	profiles := &profile.Service{DB: gdb}
	analyses := &brand.Service{DB: gdb}
	insightSvc := &insights.Service{DB: gdb}
	goalSvc := &goals.Service{DB: gdb}
	monitorSvc := &monitor.Service{DB: gdb}
	liSvc := &linkedin.Service{DB: gdb}

	liClient := linkedin.NewClient(linkedin.ClientOptions{
		BaseURL:      cfg.LinkedInAPIBase,
		ClientID:     cfg.LinkedInClientID,
		ClientSecret: cfg.LinkedInClientSecret,
		RedirectURI:  cfg.LinkedInRedirectURI,
	})
	scanner := monitor.NewScanner(cfg.SearchAPIURL)

	generator := insights.NewGenerator(time.Now().UnixNano())
	builder := &mentor.Builder{Store: &mentor.GormStore{
		Profiles: profiles,
		Analyses: analyses,
		Goals:    goalSvc,
	}}

	// job pipeline
	repo := &jobs.Repo{DB: gdb}
	worker := &jobs.Worker{
		ID:    "worker-" + uuid.NewString(),
		Store: repo,
		Handlers: tasks.Handlers(tasks.Deps{
			Profiles:    profiles,
			Analyses:    analyses,
			Insights:    insightSvc,
			Goals:       goalSvc,
			Connections: liSvc,
			LinkedIn:    liClient,
			Monitor:     monitorSvc,
			Scanner:     scanner,
			Mentor:      builder,
			Generator:   generator,
		}),
	}

	ctx, cancel := context.WithCancel(context.Background())
	go worker.Run(ctx)

	sched := scheduler.NewService(gdb, repo, liSvc, goalSvc, monitorSvc)
	if err := sched.Start(); err != nil {
		logrus.Fatalf("scheduler: %v", err)
	}
	defer sched.Stop()

	r := httpx.NewRouter(cfg, jwtSvc, httpx.Deps{
		Auth:     &handler.AuthHandler{DB: gdb, JWT: jwtSvc},
		Brand:    &handler.BrandHandler{Queue: repo, Analyses: analyses},
		Insights: &handler.InsightHandler{Store: insightSvc},
		Goals:    &handler.GoalHandler{Store: goalSvc},
		Monitor:  &handler.MonitorHandler{Store: monitorSvc},
		LinkedIn: &handler.LinkedInHandler{Client: liClient, Connections: liSvc, Queue: repo},
		Health:   &handler.HealthHandler{DB: gdb, Worker: worker, External: scanner},
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logrus.Infof("listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("http server: %v", err)
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	logrus.Info("shutting down")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
