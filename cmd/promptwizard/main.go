package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"prompt-wizard/internal/config"
	"prompt-wizard/internal/httpapi"
	"prompt-wizard/internal/logger"
	"prompt-wizard/internal/repository"
	"prompt-wizard/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	var (
		categoryRepo service.CategoryStore
		promptRepo   service.PromptStore
	)
	switch cfg.Store {
	case config.StoreMemory:
		categoryRepo = repository.NewMemoryCategoryRepository()
		promptRepo = repository.NewMemoryPromptRepository()
	default:
		db, err := repository.NewDB(cfg.DatabaseURL)
		if err != nil {
			zlog.Fatal("open database", zap.Error(err))
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		categoryRepo = repository.NewCategoryRepository(db)
		promptRepo = repository.NewPromptRepository(db)
	}

	categorySvc := service.NewCategoryService(categoryRepo)
	promptSvc := service.NewPromptService(promptRepo, categoryRepo, cfg.StrictCategoryRefs)
	reportSvc := service.NewReportService(promptRepo, categoryRepo)

	scheduler := service.NewSchedulerService(time.Local, zlog)
	reportJob := service.NewReportJob(reportSvc, zlog, 30*time.Second)
	if cfg.ReportInterval > 0 {
		if _, err := scheduler.ScheduleInterval(cfg.ReportInterval, reportJob); err != nil {
			zlog.Fatal("schedule report", zap.Error(err))
		}
	}
	if cfg.ReportAt != "" {
		if _, err := scheduler.ScheduleDaily(cfg.ReportAt, reportJob); err != nil {
			zlog.Fatal("schedule daily report", zap.Error(err))
		}
	}
	if scheduler.Entries() > 0 {
		scheduler.Start()
		defer scheduler.Stop()
	}

	gin.SetMode(cfg.GinMode)
	handler := httpapi.NewHandler(categorySvc, promptSvc, reportSvc)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(handler, zlog),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zlog.Info("prompt wizard listening", zap.String("addr", cfg.HTTPAddr), zap.String("store", cfg.Store))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zlog.Error("server stopped with error", zap.Error(err))
		return
	}
	zlog.Info("shutdown complete")
}
