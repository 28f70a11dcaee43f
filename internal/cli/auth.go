package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andreasstove999/storefront-client-go/internal/clients"
)

// LoginOptions holds flags for the login command.
type LoginOptions struct {
	*RootOptions
	Email    string
	Password string
}

// NewLoginCommand logs in and merges any guest cart into the server
// cart, the one place the merge runs.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoginOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and merge your guest cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts.RootOptions)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			user, token, err := app.auth.Login(ctx, opts.Email, opts.Password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			if err := app.sessions.Login(user, token); err != nil {
				return fmt.Errorf("persist session: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s>\n", user.Name, user.Email)

			// Fold the pre-login guest cart into the server cart. A
			// failed merge keeps the guest slot for a later retry.
			if _, err := app.cart.MergeAfterLogin(ctx); err != nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Email, "email", "", "account email")
	cmd.Flags().StringVar(&opts.Password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

// NewLogoutCommand drops the session; the cart engine resets to guest
// mode through the session subscription.
func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			if err := app.sessions.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

// RegisterOptions holds flags for the register command.
type RegisterOptions struct {
	*RootOptions
	Name     string
	Email    string
	Password string
	OTP      string
}

// NewRegisterCommand runs the OTP registration flow in two
// invocations: first without --otp to request a code, then with it.
func NewRegisterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RegisterOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account (OTP flow)",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts.RootOptions)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if opts.OTP == "" {
				if err := app.auth.RequestOTP(ctx, opts.Email); err != nil {
					return fmt.Errorf("request otp: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "OTP sent. Re-run with --otp <code> to finish.")
				return nil
			}

			if err := app.auth.VerifyOTP(ctx, opts.Email, opts.OTP); err != nil {
				return fmt.Errorf("verify otp: %w", err)
			}
			user, err := app.auth.Register(ctx, clients.RegisterRequest{
				Name:     opts.Name,
				Email:    opts.Email,
				Password: opts.Password,
			})
			if err != nil {
				return fmt.Errorf("register: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account created for %s. Run `storefront login` next.\n", user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "display name")
	cmd.Flags().StringVar(&opts.Email, "email", "", "account email")
	cmd.Flags().StringVar(&opts.Password, "password", "", "account password")
	cmd.Flags().StringVar(&opts.OTP, "otp", "", "one-time code from the first invocation")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
