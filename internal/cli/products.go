package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewProductsCommand lists the catalog.
func NewProductsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "Browse the product catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			products, err := app.catalog.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(products) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No products available.")
				return nil
			}
			for _, p := range products {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s  %-30s  %8.2f  %s\n", p.ID, p.Title, p.Price, p.Category)
			}
			return nil
		},
	}
}
