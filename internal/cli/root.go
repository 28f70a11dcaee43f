// Package cli is the terminal surface of the storefront client.
package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	APIURL   string
	StateDir string
	Quiet    bool
}

// NewRootCommand creates the storefront root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "storefront",
		Short:         "Headless storefront client",
		Long:          "Browse products, manage a cart that follows you from guest to logged-in, and check out over WhatsApp.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.APIURL, "api-url", "", "backend base URL (overrides STOREFRONT_API_URL)")
	cmd.PersistentFlags().StringVar(&opts.StateDir, "state-dir", "", "directory for cart and session state")
	cmd.PersistentFlags().BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress notification output")

	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewLogoutCommand(opts))
	cmd.AddCommand(NewRegisterCommand(opts))
	cmd.AddCommand(NewProductsCommand(opts))
	cmd.AddCommand(NewCartCommand(opts))
	cmd.AddCommand(NewCheckoutCommand(opts))
	cmd.AddCommand(NewProfileCommand(opts))
	cmd.AddCommand(NewStubCommand(opts))

	return cmd
}
