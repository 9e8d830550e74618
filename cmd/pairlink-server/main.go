// Package main provides the entry point for pairlink-server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/yndnr/pairlink-go/internal/core/service"
	"github.com/yndnr/pairlink-go/internal/infra/buildinfo"
	"github.com/yndnr/pairlink-go/internal/infra/confloader"
	"github.com/yndnr/pairlink-go/internal/infra/shutdown"
	"github.com/yndnr/pairlink-go/internal/server/config"
	"github.com/yndnr/pairlink-go/internal/server/httpserver"
	"github.com/yndnr/pairlink-go/internal/telemetry/logger"
	"github.com/yndnr/pairlink-go/internal/telemetry/metric"
	"github.com/yndnr/pairlink-go/pkg/artifact"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("pairlink-server %s\n", buildinfo.String())
		return nil
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	safe := config.Sanitize(cfg)
	log.Info("starting pairlink-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"config", *configFile,
		"addr", safe.Server.HTTP.Addr,
		"scan_timeout", safe.Pairing.ScanTimeout,
		"pair_timeout", safe.Pairing.PairTimeout,
	)

	metrics := metric.NewRegistry()

	gen := artifact.New(
		artifact.WithCodeLength(cfg.Pairing.CodeLength),
		artifact.WithAlphabet(cfg.Pairing.CodeAlphabet),
		artifact.WithGroupSize(cfg.Pairing.CodeGroupSize),
	)

	registry := service.NewRegistry(
		service.WithGenerator(gen),
		service.WithLogger(log),
		service.WithMetrics(metrics),
	)
	manager := service.NewManager(registry, service.ManagerConfig{
		ScanTimeout:    cfg.Pairing.ScanTimeout,
		PairTimeout:    cfg.Pairing.PairTimeout,
		ProvisionDelay: cfg.Pairing.ProvisionDelay,
	})

	router := httpserver.NewRouter(&httpserver.RouterConfig{
		Manager:     manager,
		Metrics:     metrics,
		Logger:      log,
		RateLimit:   cfg.Server.HTTP.RateLimit,
		RateBurst:   cfg.Server.HTTP.RateBurst,
		CORSOrigins: cfg.Server.HTTP.CORSOrigins,
	})
	httpServer := httpserver.New(cfg.Server.HTTP.Addr, router,
		cfg.Server.HTTP.ReadTimeout, cfg.Server.HTTP.WriteTimeout)

	shutdownHandler := shutdown.NewHandler(30 * time.Second)

	// Register shutdown hooks (reverse order of startup).
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return httpServer.Shutdown(ctx)
	})
	shutdownHandler.OnShutdown(func(context.Context) error {
		log.Info("stopping session timers")
		manager.Close()
		return nil
	})

	// Watch the config file to apply log-level changes at runtime.
	if *configFile != "" {
		watcher, err := startConfigWatcher(*configFile, log)
		if err != nil {
			log.Warn("config watcher disabled", "error", err)
		} else {
			shutdownHandler.OnShutdown(func(context.Context) error {
				return watcher.Stop()
			})
		}
	}

	go func() {
		log.Info("HTTP server listening", "addr", cfg.Server.HTTP.Addr)

		var err error
		if cfg.Server.HTTP.TLSCertFile != "" && cfg.Server.HTTP.TLSKeyFile != "" {
			err = httpServer.ListenAndServeTLS(cfg.Server.HTTP.TLSCertFile, cfg.Server.HTTP.TLSKeyFile)
		} else {
			err = httpServer.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
			shutdownHandler.Trigger()
		}
	}()

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig loads configuration from file and environment.
func loadConfig(configFile string) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	loader := confloader.NewLoader(opts...)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initLogger initializes the structured logger and installs it as the
// process default.
func initLogger(cfg *config.ServerConfig) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return nil, err
	}

	logger.SetDefault(log)
	return log, nil
}

// startConfigWatcher reloads the log level when the config file changes.
func startConfigWatcher(configFile string, log logger.Logger) (*confloader.Watcher, error) {
	watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}

	watcher.OnChange(func(string) {
		cfg := config.Default()
		loader := confloader.NewLoader(confloader.WithConfigFile(configFile))
		if err := loader.Load(cfg); err != nil {
			log.Warn("config reload failed", "error", err)
			return
		}
		if cfg.Log.Level != logger.GetLevel() {
			log.Info("applying new log level", "level", cfg.Log.Level)
			logger.SetLevel(cfg.Log.Level)
		}
	})

	if err := watcher.Watch(configFile); err != nil {
		watcher.Stop()
		return nil, err
	}
	watcher.StartAsync()

	return watcher, nil
}
