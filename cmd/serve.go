package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/fitch/check"
	"github.com/gnolang/fitch/internal/server"
)

const defaultAddr = ":8080"

var addrFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the checker over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()

		addr, cacheSize, err := serveSettings(addrFlag)
		if err != nil {
			logger.Fatal("Invalid server settings", zap.Error(err))
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := runServe(ctx, logger, newEngine(), addr, cacheSize); err != nil {
			logger.Error("Server error", zap.Error(err))
			os.Exit(1)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&addrFlag, "addr", "", "Listen address (default $FITCH_ADDR or :8080)")
}

// serveSettings resolves the listen address and cache size from the flag
// and the FITCH_ADDR and FITCH_CACHE_SIZE environment variables.
func serveSettings(addr string) (string, int, error) {
	if addr == "" {
		addr = os.Getenv("FITCH_ADDR")
	}
	if addr == "" {
		addr = defaultAddr
	}

	cacheSize := server.DefaultCacheSize
	if v := os.Getenv("FITCH_CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return "", 0, fmt.Errorf("FITCH_CACHE_SIZE must be a positive integer, got %q", v)
		}
		cacheSize = n
	}
	return addr, cacheSize, nil
}

// runServe serves until ctx is done, then shuts the server down.
func runServe(ctx context.Context, logger *zap.Logger, engine check.Engine, addr string, cacheSize int) error {
	srv, err := server.New(engine, logger, cacheSize)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      timeout,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting fitch server", zap.String("addr", addr), zap.Int("cache_size", cacheSize))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
