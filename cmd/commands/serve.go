package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/motoshop/motoshop/internal/app"
	"github.com/spf13/cobra"
)

var shutdownTimeout time.Duration

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		application, err := app.New(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to create app: %w", err)
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- application.Run()
		}()

		// Graceful shutdown
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

		select {
		case <-stop:
		case err := <-errCh:
			if err != nil {
				application.Close()
				return err
			}
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		return application.Stop(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 30*time.Second, "Time allowed for in-flight requests on shutdown")
	rootCmd.AddCommand(serveCmd)
}
