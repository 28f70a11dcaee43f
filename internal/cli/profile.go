package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andreasstove999/storefront-client-go/internal/clients"
	"github.com/andreasstove999/storefront-client-go/internal/session"
)

// NewProfileCommand groups the account-management operations.
func NewProfileCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View and edit your account",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			p, err := app.profile.Get(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Name:  %s\nEmail: %s\n", p.User.Name, p.User.Email)
			if p.Phone != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Phone: %s\n", p.Phone)
			}
			for _, a := range p.SavedAddresses {
				fmt.Fprintf(cmd.OutOrStdout(), "Address: %s\n", a)
			}
			return nil
		},
	}

	cmd.AddCommand(newProfileSetNameCommand(rootOpts))
	cmd.AddCommand(newProfileChangePasswordCommand(rootOpts))

	return cmd
}

func newProfileSetNameCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set-name <name>",
		Short: "Change your display name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			p, err := app.profile.Update(cmd.Context(), clients.Profile{User: session.User{Name: args[0]}})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Name updated to %s\n", p.User.Name)
			return nil
		},
	}
}

func newProfileChangePasswordCommand(rootOpts *RootOptions) *cobra.Command {
	var current, next string

	cmd := &cobra.Command{
		Use:   "change-password",
		Short: "Change your password",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			if err := app.profile.ChangePassword(cmd.Context(), current, next); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password changed.")
			return nil
		},
	}

	cmd.Flags().StringVar(&current, "current", "", "current password")
	cmd.Flags().StringVar(&next, "new", "", "new password")
	_ = cmd.MarkFlagRequired("current")
	_ = cmd.MarkFlagRequired("new")

	return cmd
}
