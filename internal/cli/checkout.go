package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andreasstove999/storefront-client-go/internal/checkout"
)

// CheckoutOptions holds flags for the checkout command.
type CheckoutOptions struct {
	*RootOptions
	Name    string
	Phone   string
	Address string
}

// NewCheckoutCommand renders the order as a WhatsApp link and empties
// the cart.
func NewCheckoutCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckoutOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Check out the cart over WhatsApp",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts.RootOptions)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if !app.cfg.WhatsAppEnabled {
				return fmt.Errorf("WhatsApp checkout is disabled")
			}

			c, err := app.engine.Fetch(ctx)
			if err != nil {
				return err
			}
			if c.Empty() {
				fmt.Fprintln(cmd.OutOrStdout(), "Your cart is empty; nothing to check out.")
				return nil
			}

			link := checkout.WhatsAppLink(app.cfg.WhatsAppNumber, checkout.Order{
				BusinessName:  app.cfg.WhatsAppName,
				CustomerName:  opts.Name,
				CustomerPhone: opts.Phone,
				Address:       opts.Address,
				Cart:          c,
			})
			fmt.Fprintln(cmd.OutOrStdout(), "Open this link to send your order:")
			fmt.Fprintln(cmd.OutOrStdout(), link)

			if _, err := app.cart.ProceedToCheckout(ctx); err != nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "customer name for the order message")
	cmd.Flags().StringVar(&opts.Phone, "phone", "", "customer phone for the order message")
	cmd.Flags().StringVar(&opts.Address, "address", "", "delivery address for the order message")

	return cmd
}
