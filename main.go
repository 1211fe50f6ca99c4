package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreybb/newsflash/actions"
	"github.com/coreybb/newsflash/ai"
	"github.com/coreybb/newsflash/api"
	"github.com/coreybb/newsflash/conversion"
	"github.com/coreybb/newsflash/datastore"
	"github.com/coreybb/newsflash/ebook"
	rh "github.com/coreybb/newsflash/route-handlers"
	"github.com/coreybb/newsflash/webhooks"
	"github.com/coreybb/newsflash/webutil"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

const (
	defaultPort        = "8080"
	defaultDatabaseURL = "user=postgres password=password dbname=newsflash host=localhost port=5432 sslmode=disable"
	dbPingTimeout      = 5 * time.Second
	shutdownTimeout    = 15 * time.Second
	dbMaxOpenConns     = 25
	dbMaxIdleConns     = 25
	dbConnMaxLifetime  = 5 * time.Minute
)

type config struct {
	port         string
	databaseURL  string
	geminiAPIKey string
	geminiModel  string
	ingestAPIKey string
}

func main() {
	cfg := loadConfig()

	db, err := setupDatabase(cfg.databaseURL)
	if err != nil {
		log.Fatalf("Database setup failed: %v", err)
	}
	defer db.Close()

	sourceRepo := datastore.NewSourceRepository(db)

	// The feed listens on the same connection string the repository notifies
	// through, so appends from any process surface to every subscriber.
	feed := datastore.NewFeed(cfg.databaseURL, sourceRepo)
	feedCtx, stopFeed := context.WithCancel(context.Background())
	defer stopFeed()
	go func() {
		if err := feed.Run(feedCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("ERROR: Source feed stopped: %v", err)
		}
	}()

	invoker, err := ai.NewGeminiInvoker(context.Background(), cfg.geminiAPIKey, cfg.geminiModel)
	if err != nil {
		log.Fatalf("Gemini setup failed: %v", err)
	}
	defer invoker.Close()

	aggregationActions := actions.New(invoker, sourceRepo)

	sourceHandler := rh.NewSourceHandler(sourceRepo, feed)
	aiHandler := rh.NewAIHandler(aggregationActions)
	uploadHandler := rh.NewUploadHandler(aggregationActions)
	newsletterHandler := rh.NewNewsletterHandler(conversion.NewConverter(), ebook.NewNewsletterGenerator())
	ingestHandler := rh.NewIngestHandler(aggregationActions, cfg.ingestAPIKey)

	inboundEmailHandler := webhooks.NewInboundEmailHandler(aggregationActions)

	apiRouter := api.SetupRoutes(sourceHandler, aiHandler, uploadHandler, newsletterHandler)

	mainRouter := chi.NewRouter()
	mainRouter.Mount("/", apiRouter)

	mainRouter.Post("/ingest", webutil.MakeHandler(ingestHandler.HandleIngest))
	mainRouter.Post("/webhooks/inbound-email", inboundEmailHandler.HandleInbound)

	startServer(cfg.port, mainRouter)
}

func loadConfig() config {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	dbURL := os.Getenv("DB_CONNECTION_STRING")
	if dbURL == "" {
		dbURL = defaultDatabaseURL
		log.Println("WARNING: DB_CONNECTION_STRING not set, using default local connection string.")
	}

	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		log.Fatal("GEMINI_API_KEY not set. The service cannot run without its model provider.")
	}

	geminiModel := os.Getenv("GEMINI_MODEL")

	ingestAPIKey := os.Getenv("INGEST_API_KEY")
	if ingestAPIKey == "" {
		log.Println("WARNING: INGEST_API_KEY not set. The /ingest endpoint is disabled and will answer 500.")
	}

	return config{
		port:         port,
		databaseURL:  dbURL,
		geminiAPIKey: geminiAPIKey,
		geminiModel:  geminiModel,
		ingestAPIKey: ingestAPIKey,
	}
}

func setupDatabase(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(dbMaxOpenConns)
	db.SetMaxIdleConns(dbMaxIdleConns)
	db.SetConnMaxLifetime(dbConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), dbPingTimeout)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection successful")
	return db, nil
}

func startServer(port string, router http.Handler) {
	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	shutdownSignal := make(chan os.Signal, 1)
	signal.Notify(shutdownSignal, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-shutdownSignal
	log.Println("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}

	log.Println("Server gracefully stopped")
}
