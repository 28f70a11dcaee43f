package cli

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/andreasstove999/storefront-client-go/internal/stubapi"
)

// NewStubCommand serves the in-memory backend stub for local
// development, so the client can be exercised without the real API.
func NewStubCommand(rootOpts *RootOptions) *cobra.Command {
	addr := ":8090"
	seedEmail := "dev@example.com"
	seedPassword := "dev"

	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Run the in-memory backend stub",
		RunE: func(cmd *cobra.Command, args []string) error {
			stub := stubapi.New()
			stub.Register("Dev User", seedEmail, seedPassword)

			srv := &http.Server{
				Addr:         addr,
				Handler:      stub.Handler(),
				ReadTimeout:  5 * time.Second,
				WriteTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				fmt.Fprintf(cmd.OutOrStdout(), "stub api listening on %s (login: %s / %s)\n", addr, seedEmail, seedPassword)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			select {
			case <-ctx.Done():
			case err := <-errCh:
				return err
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", addr, "listen address")
	cmd.Flags().StringVar(&seedEmail, "seed-email", seedEmail, "seeded account email")
	cmd.Flags().StringVar(&seedPassword, "seed-password", seedPassword, "seeded account password")

	return cmd
}
