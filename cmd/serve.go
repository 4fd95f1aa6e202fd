package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prtracker/internal/handlers"
	"prtracker/internal/logger"
	"prtracker/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(configPath *string) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := a.Close(); cerr != nil {
					a.log.Errorw("failed to close sqlite", "err", cerr)
				}
			}()

			if a.cfg.UsesDevSigningKey() {
				a.log.Warnw("auth.signing_key is the built-in development key; set PRTRACKER_AUTH_SIGNING_KEY")
			}
			if port == "" {
				port = a.cfg.Port
			}
			if a.cfg.Log.Level != logger.DebugLevel {
				gin.SetMode(gin.ReleaseMode)
			}

			apiHandler := handlers.NewHandler(a.services, a.log)
			srv := &server.Server{}
			errc := runHTTPServer(srv, port, apiHandler, a.log)
			return waitForShutdown(errc, srv, a.log)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides config)")
	return cmd
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) <-chan error {
	errc := make(chan error, 1)
	go func() {
		log.Infow("http server listening", "port", port)
		errc <- srv.Run(port, handler.InitRoutes())
	}()
	return errc
}

// waitForShutdown blocks until a termination signal or a server failure,
// then drains in-flight requests.
func waitForShutdown(errc <-chan error, srv *server.Server, log *logger.Logger) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errc:
		if err != nil {
			log.Errorw("error starting server", "err", err)
		}
		return err
	case <-quit:
	}

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
		return err
	}
	return <-errc
}
