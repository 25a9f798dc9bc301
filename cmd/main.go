package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bloglist/internal/handlers"
	"bloglist/internal/logger"
	"bloglist/internal/repository"
	"bloglist/internal/server"
	"bloglist/internal/service"

	"github.com/spf13/viper"
)

const defaultSweepTick = 1 * time.Minute

func main() {
	// load config.yml first so the logger level can come from it
	if err := loadConfig(); err != nil {
		logger.Get("info").Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(logLevel())

	// open DB
	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(db)
	services := service.NewService(repos, serviceConfig(), log)
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start expired-session sweeper (via composed service)
	go services.Sweeper.Run(ctx, sweepTick())

	// start HTTP server
	srv := server.New(viper.GetString("port"), apiHandler.InitRoutes())
	go func() {
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// logLevel reads the configured log level, defaulting to info.
func logLevel() string {
	if lvl := viper.GetString("log.level"); lvl != "" {
		return lvl
	}
	return "info"
}

// serviceConfig reads the auth knobs from the loaded config.
func serviceConfig() service.Config {
	return service.Config{
		SigningKey: viper.GetString("auth.signing_key"),
		SessionTTL: viper.GetDuration("auth.session_ttl"),
	}
}

// sweepTick returns the sweeper interval, defaulting when unset.
func sweepTick() time.Duration {
	if d := viper.GetDuration("auth.sweep_interval"); d > 0 {
		return d
	}
	return defaultSweepTick
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "bloglist.db")
		dbPath = "bloglist.db"
	}
	return repository.InitDB(dbPath)
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
