package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"linkshare/internal/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run migrations, seed categories and start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, database, err := openStore(ctx, true)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := seedCategories(ctx, cfg, database); err != nil {
				return err
			}

			srv := server.New(cfg)
			srv.RegisterRoutes(database)

			// Graceful shutdown
			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case <-quit:
			}

			log.Println("Shutting down server...")
			if err := srv.Shutdown(); err != nil {
				return err
			}
			log.Println("Server exited")
			return nil
		},
	}
}
