package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cartpkg "github.com/andreasstove999/storefront-client-go/internal/cart"
)

// NewCartCommand groups the cart operations.
func NewCartCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show and edit your cart",
	}

	cmd.AddCommand(newCartShowCommand(rootOpts))
	cmd.AddCommand(newCartAddCommand(rootOpts))
	cmd.AddCommand(newCartRemoveCommand(rootOpts))
	cmd.AddCommand(newCartSetCommand(rootOpts))
	cmd.AddCommand(newCartClearCommand(rootOpts))

	return cmd
}

func newCartShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List cart contents and subtotal",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			c, err := app.cart.FetchCart(cmd.Context())
			if err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), c)
			return nil
		},
	}
}

func newCartAddCommand(rootOpts *RootOptions) *cobra.Command {
	quantity := 1

	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			// The cart stores a display snapshot, so adding needs the
			// catalog entry first.
			product, err := app.catalog.Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("look up product: %w", err)
			}
			c, err := app.cart.AddItem(ctx, product, quantity)
			if err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), c)
			return nil
		},
	}

	cmd.Flags().IntVar(&quantity, "quantity", 1, "units to add")
	return cmd
}

func newCartRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			p, err := findInCart(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.cart.RemoveItem(ctx, p)
			if err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), c)
			return nil
		},
	}
}

func newCartSetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <product-id> <quantity>",
		Short: "Set the quantity of a cart line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			quantity, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity must be an integer: %w", err)
			}
			p, err := findInCart(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.cart.UpdateQuantity(ctx, p, quantity)
			if err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), c)
			return nil
		},
	}
}

func newCartClearCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			if _, err := app.cart.ClearCart(cmd.Context()); err != nil {
				return err
			}
			return nil
		},
	}
}

// findInCart resolves a product ID to the snapshot held in the current
// cart, refreshing quietly first (no notification).
func findInCart(ctx context.Context, app *app, productID string) (cartpkg.Product, error) {
	c, err := app.engine.Fetch(ctx)
	if err != nil {
		return cartpkg.Product{}, err
	}
	l, ok := c.Find(productID)
	if !ok {
		return cartpkg.Product{}, fmt.Errorf("product %s is not in your cart", productID)
	}
	return l.Product, nil
}
