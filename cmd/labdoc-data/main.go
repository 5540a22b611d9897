package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"labdoc-data/internal/config"
	"labdoc-data/internal/docsync"
	"labdoc-data/internal/editor"
	httpapi "labdoc-data/internal/http"
	"labdoc-data/internal/repository"
	"labdoc-data/internal/service"
	"labdoc-data/internal/store"
)

func main() {
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	if cfg.Log.Format == "console" {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	kv := store.NewRedisKV(redisClient)

	var (
		db        *sql.DB
		cases     repository.CaseRecordsRepository
		dosages   repository.DosageAssignmentsRepository
		screens   repository.ToxicologyAssignmentsRepository
		dosMemos  repository.DosageMemorandaRepository
		toxMemos  repository.ToxicologyMemorandaRepository
		employees repository.EmployeesRepository
	)
	if cfg.DBEnabled {
		d, err := store.NewPostgresDB(store.PostgresConfig{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			Database: cfg.Database.Database,
			SSLMode:  cfg.Database.SSLMode,
			MaxConns: 10,
			MaxIdle:  5,
		})
		if err != nil {
			logger.Warn("DB enabled but connection failed, falling back to memory repositories", zap.Error(err))
		} else {
			db = d
			logger.Info("DB enabled for labdoc-data")
		}
	}
	if db != nil {
		cases = repository.NewPostgresCaseRecordsRepository(db)
		dosages = repository.NewPostgresDosageAssignmentsRepository(db)
		screens = repository.NewPostgresToxicologyAssignmentsRepository(db)
		dosMemos = repository.NewPostgresDosageMemorandaRepository(db)
		toxMemos = repository.NewPostgresToxicologyMemorandaRepository(db)
		employees = repository.NewPostgresEmployeesRepository(db)
	} else {
		cases = repository.NewMemoryCaseRecordsRepo()
		dosages = repository.NewMemoryDosageAssignmentsRepo()
		screens = repository.NewMemoryToxicologyAssignmentsRepo()
		dosMemos = repository.NewMemoryDosageMemorandaRepo()
		toxMemos = repository.NewMemoryToxicologyMemorandaRepo()
		employees = repository.NewMemoryEmployeesRepo()
	}

	syncer := docsync.NewSyncer(logger)
	fetcher := editor.NewClient(cfg.Editor.InternalHost, logger)
	configs := editor.NewConfigBuilder(kv, cfg.Editor.PublicBaseURL, logger)

	caseSvc := service.NewCaseRecordService(cases, syncer, fetcher, configs, cfg.Editor.ExtractOnSave, logger)
	dosageSvc := service.NewDosageAssignmentService(dosages, cases, caseSvc, logger)
	screenSvc := service.NewToxicologyAssignmentService(screens, cases, caseSvc, logger)
	dosMemoSvc := service.NewDosageMemorandumService(dosMemos, cases, syncer, fetcher, configs, logger)
	toxMemoSvc := service.NewToxicologyMemorandumService(toxMemos, cases, syncer, fetcher, configs, logger)

	router := httpapi.NewRouter(logger)
	router.RegisterHealthRoute()
	router.RegisterCaseRecordRoutes(httpapi.NewCaseRecordHandler(caseSvc, logger))
	router.RegisterAssignmentRoutes(
		httpapi.NewDosageAssignmentHandler(dosageSvc, employees, logger),
		httpapi.NewToxicologyAssignmentHandler(screenSvc, employees, logger),
	)
	router.RegisterMemorandumRoutes(
		httpapi.NewDosageMemorandumHandler(dosMemoSvc, logger),
		httpapi.NewToxicologyMemorandumHandler(toxMemoSvc, logger),
	)
	router.RegisterEmployeeRoutes(httpapi.NewEmployeeHandler(employees, logger))

	srv := service.NewServer(cfg.HTTP.Addr, router, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			logger.Error("HTTP server stopped", zap.Error(err))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	_ = redisClient.Close()
	if db != nil {
		_ = db.Close()
	}
}
