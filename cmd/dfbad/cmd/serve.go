package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"

	"github.com/dfba-labs/dfba-core/api"
	"github.com/dfba-labs/dfba-core/app"
)

// NewServeCmd starts one Engine behind HTTP, websocket, and Prometheus
// endpoints. Grounded on cmd/api/main.go's flag parsing and
// signal-driven graceful shutdown.
func NewServeCmd() *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the DFBA Core engine behind HTTP, websocket, and metrics endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.NewLogger(os.Stdout)
			engine := app.NewEngine(logger)
			server := api.NewServer(engine, &api.Config{
				Host:         host,
				Port:         port,
				ReadTimeout:  30 * time.Second,
				WriteTimeout: 30 * time.Second,
			})

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start()
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case <-quit:
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Stop(ctx)
		},
	}
	cmd.Flags().StringVar(&host, "host", "0.0.0.0", "listen host")
	cmd.Flags().IntVar(&port, "port", 8080, "listen port")
	return cmd
}
