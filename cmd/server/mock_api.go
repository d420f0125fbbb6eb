package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/middleware"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/mockapi"
	"github.com/Lixing-Zhang/kart-challenge/storefront/pkg/logger"
)

var mockAPICmd = &cobra.Command{
	Use:   "mock-api",
	Short: "Serve an in-memory stand-in for the REST API",
	Long: `Serves the REST endpoints the storefront consumes from memory, seeded
with a small menu. Nothing is persisted. For local development only.`,
	RunE: runMockAPI,
}

func init() {
	mockAPICmd.Flags().String("port", "", "listen port (default MOCK_API_PORT)")
	mockAPICmd.Flags().String("token", "", "bearer token required to list orders (default MOCK_API_TOKEN)")
}

func runMockAPI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if f := cmd.Flags().Lookup("port"); f.Changed {
		cfg.MockAPI.Port = f.Value.String()
	}
	if f := cmd.Flags().Lookup("token"); f.Changed {
		cfg.MockAPI.Token = f.Value.String()
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	api := mockapi.NewServer(mockapi.NewStore(), mockapi.Options{Token: cfg.MockAPI.Token}, log)

	handler := chimiddleware.RequestID(middleware.Logger(log)(chimiddleware.Recoverer(api.Routes())))

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.MockAPI.Port),
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	log.Info("starting mock api", "address", srv.Addr, "token_required", cfg.MockAPI.Token != "")
	return serveUntilSignal(srv, time.Duration(cfg.Server.ShutdownTimeout)*time.Second, log)
}
