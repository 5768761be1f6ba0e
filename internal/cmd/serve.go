package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Sadisms/stack-radar/internal/adapter/repository"
	httpserver "github.com/Sadisms/stack-radar/internal/infrastructure/http"
	"github.com/Sadisms/stack-radar/internal/security"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()
		defer db.Close(log)

		tokens, err := security.NewTokenManager(settings.Auth)
		if err != nil {
			return err
		}
		repos := repository.NewRepositories(db, log)
		server := httpserver.NewServer(settings, log, repos, tokens)

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start(serveHost, servePort)
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-quit:
			log.Info("shutting down", zap.String("signal", sig.String()))
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error("forced shutdown", zap.Error(err))
			return err
		}
		log.Info("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "0.0.0.0", "Host to bind")
	serveCmd.Flags().IntVar(&servePort, "port", 8000, "Port to bind")
	rootCmd.AddCommand(serveCmd)
}
