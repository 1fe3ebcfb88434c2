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

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Eliahhango/Civil-web/internal/bootstrap"
	"github.com/Eliahhango/Civil-web/internal/config"
	"github.com/Eliahhango/Civil-web/internal/es"
	"github.com/Eliahhango/Civil-web/internal/handlers"
	"github.com/Eliahhango/Civil-web/internal/logging"
	"github.com/Eliahhango/Civil-web/internal/mailer"
	authmw "github.com/Eliahhango/Civil-web/internal/middleware/auth"
	loggingmw "github.com/Eliahhango/Civil-web/internal/middleware/logging"
	"github.com/Eliahhango/Civil-web/internal/mykafka"
	"github.com/Eliahhango/Civil-web/internal/service/search"
	"github.com/Eliahhango/Civil-web/internal/service/token"
	httpserver "github.com/Eliahhango/Civil-web/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	ctx := logging.IntoContext(context.Background(), logger)
	if err := bootstrap.EnsureDefaults(ctx, db, configuration.UPLOAD_DIR); err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}

	// Kafka and Elasticsearch are optional side channels. The site runs
	// without them.
	var prod *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		brokers := []string{configuration.KAFKA_ADDRESS}
		topics := []string{"user_events", "project_events", "contact_events"}
		prod, err = mykafka.NewProducer(brokers, topics)
		if err != nil {
			logger.Error("kafka unavailable, events disabled", "error", err)
			prod = nil
		}
	}

	var esClient *elasticsearch.Client
	if configuration.ES_URL != "" {
		esClient, err = es.NewClient(configuration)
		if err != nil {
			logger.Error("elasticsearch unavailable, search disabled", "error", err)
			esClient = nil
		}
	}

	tokens := &token.Service{Secret: []byte(configuration.JWT_SECRET)}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORS(), middleware.BodyLimit("10M"))
	e.Use(loggingmw.RequestLogger(logger))

	ml := mailer.New(configuration)

	deps := httpserver.Deps{
		DB:             db,
		Auth:           &authmw.Middleware{Tokens: tokens},
		AuthHandler:    &handlers.AuthHandler{DB: db, Tokens: tokens, Producer: prod},
		ProjectHandler: &handlers.ProjectHandler{DB: db, Producer: prod, ES: esClient},
		ContactHandler: &handlers.ContactHandler{DB: db, Producer: prod, Mailer: ml},
		UserHandler:    &handlers.UserHandler{DB: db},
		ServiceHandler: &handlers.ServiceHandler{},
		UploadHandler:  &handlers.UploadHandler{Dir: configuration.UPLOAD_DIR},
		SearchHandler:  &handlers.SearchHandler{ES: esClient, Index: search.Index},
		UploadDir:      configuration.UPLOAD_DIR,
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
