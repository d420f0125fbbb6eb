package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/apiclient"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/config"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/handlers"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/render"
	"github.com/Lixing-Zhang/kart-challenge/storefront/pkg/logger"
)

var (
	configFile string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "storefront",
	Short:         "Server-rendered storefront over the shop REST API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the storefront pages",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file (overrides STOREFRONT_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")

	serveCmd.Flags().String("port", "", "listen port")
	serveCmd.Flags().String("api-base-url", "", "base URL of the REST API")

	rootCmd.AddCommand(serveCmd, mockAPICmd)
}

func main() {
	// A missing .env file is fine; the environment may already be set
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads file and environment configuration, then applies flags
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := configFile
	if path == "" {
		path = os.Getenv("STOREFRONT_CONFIG")
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if f := cmd.Flags().Lookup("port"); f != nil && f.Changed {
		cfg.Server.Port = f.Value.String()
	}
	if f := cmd.Flags().Lookup("api-base-url"); f != nil && f.Changed {
		cfg.API.BaseURL = f.Value.String()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting storefront server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"api_base_url", cfg.API.BaseURL,
		"log_level", cfg.LogLevel,
	)

	renderer, err := render.New(log)
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	storefront := handlers.NewStorefront(handlers.Options{
		API:            apiclient.NewClient(cfg.API.BaseURL, time.Duration(cfg.API.Timeout)*time.Second),
		Renderer:       renderer,
		MenuPageSize:   cfg.Menu.PageSize,
		SessionTTL:     cfg.Menu.SessionTTL,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         log,
	})
	defer storefront.Close()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      storefront,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	return serveUntilSignal(srv, time.Duration(cfg.Server.ShutdownTimeout)*time.Second, log)
}

// serveUntilSignal runs srv until SIGINT or SIGTERM, then shuts it down
// gracefully within timeout
func serveUntilSignal(srv *http.Server, timeout time.Duration, log *slog.Logger) error {
	errCh := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed to start: %w", err)
	case <-quit:
	}

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("server stopped gracefully")
	return nil
}
