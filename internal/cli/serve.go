package cli

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

	"github.com/salesdeck/salesdeck/internal/app"
	"github.com/salesdeck/salesdeck/internal/httpapi"
)

// shutdownTimeout bounds how long in-flight requests may run after a signal.
const shutdownTimeout = 10 * time.Second

// newServeCommand creates the serve command.
func newServeCommand(c *app.Container) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board and pages over HTTP",
		Long: `Serve the board and page use cases as a JSON HTTP API.

The listen address defaults to [server].addr.

Endpoints:
  GET    /health
  GET    /board
  GET    /board/history
  GET    /board/moves
  POST   /board/moves
  POST   /board/columns
  DELETE /board/columns/{columnID}
  POST   /board/columns/{columnID}/cards
  GET    /pages
  POST   /pages
  GET    /pages/{slug}
  PATCH  /pages/{slug}
  DELETE /pages/{slug}
  GET    /pages/{slug}/export`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = c.AppConfig.Server.Addr
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           httpapi.NewRouter(c),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Listening on http://%s\n", addr)

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: [server].addr)")

	return cmd
}
