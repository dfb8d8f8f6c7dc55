package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"liendesk/internal/backend"
	"liendesk/internal/logging"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		addr     string
		seedPath string
		tokenTTL time.Duration
		level    string
	)
	cmd := &cobra.Command{
		Use:          "devbackend",
		Short:        "In-memory lien backend for local development",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := logging.NewWriterLogger(os.Stderr, level)

			cfg := backend.Config{
				Secret:   []byte(os.Getenv("LIENDESK_DEV_SECRET")),
				TokenTTL: tokenTTL,
				Logger:   logger,
			}
			if seedPath != "" {
				raw, err := os.ReadFile(seedPath)
				if err != nil {
					return fmt.Errorf("read seed: %w", err)
				}
				if cfg.Seed, err = backend.ParseSeed(string(raw)); err != nil {
					return err
				}
			}
			srv, err := backend.New(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, &http.Server{
				Addr:              addr,
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}, logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&seedPath, "seed", "", "TOML master data file (default: embedded)")
	cmd.Flags().DurationVar(&tokenTTL, "token-ttl", 12*time.Hour, "bearer token lifetime")
	cmd.Flags().StringVar(&level, "log-level", logging.LevelInfo, "log level")
	return cmd
}

func serve(ctx context.Context, hs *http.Server, logger *logging.Logger) error {
	errc := make(chan error, 1)
	go func() {
		logger.Info("devbackend listening", "addr", hs.Addr)
		errc <- hs.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("devbackend stopped")
	return nil
}
