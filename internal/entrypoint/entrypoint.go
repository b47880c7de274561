// Package entrypoint wires the service together and runs it.
package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/scribe/internal/config"
	"github.com/mrlokans/scribe/internal/database"
	"github.com/mrlokans/scribe/internal/database/cache"
	"github.com/mrlokans/scribe/internal/database/dictionary"
	"github.com/mrlokans/scribe/internal/events"
	"github.com/mrlokans/scribe/internal/events/handlers"
	http_controllers "github.com/mrlokans/scribe/internal/http"
	"github.com/mrlokans/scribe/internal/prediction"
	"github.com/mrlokans/scribe/internal/scheduler"
	"github.com/mrlokans/scribe/internal/services"
	"github.com/mrlokans/scribe/internal/spellcheck/providers"
	"github.com/mrlokans/scribe/internal/tasks"
	"github.com/mrlokans/scribe/internal/ws"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts down
// within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run builds the full dependency graph and starts serving.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting Scribe v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	cacheRepo := cache.NewRepository(db.DB)
	dictionaryRepo := dictionary.NewRepository(db.DB)

	registry := providers.NewRegistry(cfg.Spellcheck.NeuralEndpoint, cfg.Spellcheck.DefaultLanguage)
	initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	results := registry.InitializeAll(initCtx)
	cancelInit()
	ready := 0
	for _, ok := range results {
		if ok {
			ready++
		}
	}
	log.Printf("Spell check engines ready: %d/%d", ready, len(results))

	predictionEngines := prediction.NewRegistry()
	if name := cfg.Prediction.DefaultEngine; name != "" && !predictionEngines.SetDefault(name) {
		log.Printf("Unknown prediction engine %q configured, keeping %q", name, prediction.DefaultEngine)
	}
	checker := services.NewChecker(registry, cacheRepo, dictionaryRepo)

	router := events.NewRouter()
	router.RegisterHandler(handlers.NewSpellcheckHandler(checker))
	router.RegisterHandler(handlers.NewPredictionHandler(predictionEngines))
	router.RegisterHandler(handlers.NewDictionaryHandler(checker))
	router.RegisterHandler(handlers.NewHealthHandler(registry, predictionEngines, func() error {
		sqlDB, err := db.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Ping()
	}))

	learner, _ := predictionEngines.Get("frequency").(*prediction.FrequencyEngine)
	wsController := ws.NewController(router, learner)

	pruner := scheduler.NewCachePruneScheduler(cacheRepo, cfg.CachePrune)
	if err := pruner.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start cache prune scheduler: %v", err)
	}

	queue, err := tasks.NewClient(cfg.Database.Path, tasks.DefaultConfig())
	if err != nil {
		log.Fatalf("Failed to initialize task queue: %v", err)
	}
	queue.Register(
		tasks.NewWarmCacheQueue(checker),
		tasks.NewLearnDocumentQueue(learner),
	)
	go queue.Start(context.Background())

	engine := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:     db,
		Registry:     registry,
		Checker:      checker,
		DocumentsDir: cfg.Documents.Dir,
		Version:      version,
		Queue:        queue,
	}, wsController)

	Serve(engine, cfg, func(ctx context.Context) {
		pruner.Stop()
		queue.Stop(ctx)
		queue.Close()
		registry.CloseAll()
	})
}
