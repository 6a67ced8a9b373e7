package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tgju-tracker/internal/cache"
	"tgju-tracker/internal/config"
	"tgju-tracker/internal/handler"
	"tgju-tracker/internal/job"
	"tgju-tracker/internal/provider"
	"tgju-tracker/internal/report"
	"tgju-tracker/internal/service"
	"tgju-tracker/internal/store"
	"tgju-tracker/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
)

var (
	loadEnvFunc    = godotenv.Load
	loadConfigFunc = config.Load
	initRedisFunc  = cache.InitRedis
	initTracerFunc = tracing.InitTracer
	newFetcherFunc = func(tracer trace.Tracer, cfg *config.Config) service.PageFetcher {
		return provider.NewTGJUProvider(tracer, cfg.PageURL, cfg.UserAgent, time.Duration(cfg.FetchTimeoutSecs)*time.Second)
	}
	newStoreFunc = func(path string) service.SnapshotStore {
		return store.NewFileStore(path)
	}
	runJobFunc             = func(j *job.TrackerJob, ctx context.Context) { j.Start(ctx) }
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

var stdout io.Writer = os.Stdout

func main() {
	if err := loadEnvFunc(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	initRedisFunc(ctx, cfg.RedisURL)

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	interval := time.Duration(cfg.PollIntervalSecs) * time.Second
	backoff := time.Duration(cfg.BackoffSecs) * time.Second

	// A nil *redis.Client must not reach the service as a non-nil interface.
	var mirror service.RedisClient
	if cache.Client != nil {
		mirror = cache.Client
	}

	tracker := service.NewTrackerService(
		tracer,
		newFetcherFunc(tracer, cfg),
		provider.NewSnapshotExtractor(tracer, cfg.StateMarker, nil),
		newStoreFunc(cfg.StateFile),
		mirror,
		2*interval,
	)

	reporter := report.NewConsoleReporter(stdout)
	reporter.Banner(cfg.PageURL, interval)
	if err := tracker.LoadState(); err != nil {
		reporter.StateLoadFailed(err)
	}

	var srv *http.Server
	if cfg.StatusHTTPAddr != "" {
		r := newRouterFunc()
		r.Use(otelgin.Middleware("tgju-tracker"))
		handler.New(tracer, tracker.View()).RegisterRoutes(r, cfg.StatusAPIKey)

		srv = &http.Server{
			Addr:    cfg.StatusHTTPAddr,
			Handler: r,
		}
		go func() {
			if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
				log.Printf("status api stopped: %v", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		waitForSignalFunc(quit)
		cancel()
	}()

	trackerJob := job.NewTrackerJob(tracer, tracker, reporter, interval, backoff)
	runJobFunc(trackerJob, ctx)

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
			log.Printf("status api forced to shutdown: %v", err)
		}
	}
}
