package cmd

import (
	"context"
	"fmt"
	"strings"

	shoprender "github.com/bnema/shopscript-cli/internal/adapters/render/shop"
	"github.com/bnema/shopscript-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *app) *cobra.Command {
	var (
		email      string
		rememberMe bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the shop",
		RunE: func(cmd *cobra.Command, _ []string) error {
			shop, err := app.open(cmd.Context())
			if err != nil {
				return err
			}

			password, err := promptPassword(cmd, "Password")
			if err != nil {
				return err
			}

			var customer domain.Customer
			err = withSpinner(cmd.Context(), cmd.ErrOrStderr(), "Signing in...", func(ctx context.Context) error {
				signedIn, loginErr := shop.auth.Login(ctx, strings.TrimSpace(email), password, rememberMe)
				customer = signedIn
				return loginErr
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", customer.DisplayName())
			return err
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().BoolVar(&rememberMe, "remember-me", true, "Ask the server for a long-lived session")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newRegisterCmd(app *app) *cobra.Command {
	var registration domain.Registration

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a customer account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			shop, err := app.open(cmd.Context())
			if err != nil {
				return err
			}

			registration.Password, err = promptPassword(cmd, "Choose a password")
			if err != nil {
				return err
			}

			customer, err := shop.auth.Register(cmd.Context(), registration)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Registered %s. Sign in with `ss login --email %s`.\n", customer.DisplayName(), customer.Email)
			return err
		},
	}

	cmd.Flags().StringVar(&registration.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&registration.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&registration.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&registration.Phone, "phone", "", "Phone number")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget stored tokens",
		RunE: func(cmd *cobra.Command, _ []string) error {
			shop, err := app.open(cmd.Context())
			if err != nil {
				return err
			}

			if err := shop.auth.Logout(cmd.Context()); err != nil {
				return err
			}
			shop.cart.Reset()

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return err
		},
	}
}

func newWhoamiCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in customer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			shop, err := app.open(cmd.Context())
			if err != nil {
				return err
			}

			state := shop.auth.CheckAuthStatus(cmd.Context())
			if state.Customer == nil {
				if state.LastError != nil {
					return state.LastError
				}
				return domain.ErrAuthentication
			}

			output, err := shoprender.RenderCustomer(*state.Customer)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
			return err
		},
	}
}

func newSessionCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Show the stored session without contacting the shop",
		RunE: func(cmd *cobra.Command, _ []string) error {
			shop, err := app.open(cmd.Context())
			if err != nil {
				return err
			}

			now := app.clock.Now()
			output, err := shoprender.RenderSession(shop.profile.Name, shop.client.Session().Status(now), now)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
			return err
		},
	}
}
