package cmd

import (
	"context"
	"fmt"
	"strconv"

	shoprender "github.com/bnema/shopscript-cli/internal/adapters/render/shop"
	"github.com/bnema/shopscript-cli/internal/application"
	"github.com/bnema/shopscript-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newCartCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "View and change the cart",
	}

	coupon := &cobra.Command{
		Use:   "coupon",
		Short: "Apply or remove a coupon",
	}
	coupon.AddCommand(
		cartAction(app, "apply <code>", "Apply a coupon code", cobra.ExactArgs(1),
			func(ctx context.Context, cart *application.CartService, args []string) (domain.Cart, error) {
				return cart.ApplyCoupon(ctx, args[0])
			}),
		cartAction(app, "remove", "Remove the applied coupon", cobra.NoArgs,
			func(ctx context.Context, cart *application.CartService, _ []string) (domain.Cart, error) {
				return cart.RemoveCoupon(ctx)
			}),
	)

	cmd.AddCommand(
		cartAction(app, "show", "Show the cart", cobra.NoArgs,
			func(ctx context.Context, cart *application.CartService, _ []string) (domain.Cart, error) {
				return cart.Load(ctx)
			}),
		newCartAddCmd(app),
		cartAction(app, "update <item-id> <quantity>", "Change the quantity of a cart line", cobra.ExactArgs(2),
			func(ctx context.Context, cart *application.CartService, args []string) (domain.Cart, error) {
				quantity, err := strconv.Atoi(args[1])
				if err != nil {
					return domain.Cart{}, fmt.Errorf("invalid quantity %q", args[1])
				}
				return cart.UpdateItemQuantity(ctx, args[0], quantity)
			}),
		cartAction(app, "remove <item-id>", "Remove a cart line", cobra.ExactArgs(1),
			func(ctx context.Context, cart *application.CartService, args []string) (domain.Cart, error) {
				return cart.RemoveItem(ctx, args[0])
			}),
		coupon,
		newCartClearCmd(app),
	)

	return cmd
}

type cartCall func(ctx context.Context, cart *application.CartService, args []string) (domain.Cart, error)

// cartAction builds a subcommand that runs call and prints the new cart.
func cartAction(app *app, use, short string, args cobra.PositionalArgs, call cartCall) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, positional []string) error {
			shop, err := app.open(cmd.Context())
			if err != nil {
				return err
			}

			if _, err := call(cmd.Context(), shop.cart, positional); err != nil {
				return err
			}
			return printCart(cmd, shop.cart.State())
		},
	}
}

func newCartAddCmd(app *app) *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := parseID(args[0], "product")
			if err != nil {
				return err
			}

			shop, err := app.open(cmd.Context())
			if err != nil {
				return err
			}

			if _, err := shop.cart.AddToCart(cmd.Context(), domain.ProductID(productID), quantity); err != nil {
				return err
			}
			return printCart(cmd, shop.cart.State())
		},
	}

	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "Quantity to add")

	return cmd
}

func newCartClearCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			shop, err := app.open(cmd.Context())
			if err != nil {
				return err
			}

			if err := shop.cart.ClearCart(cmd.Context()); err != nil {
				return err
			}
			return printCart(cmd, shop.cart.State())
		},
	}
}

func printCart(cmd *cobra.Command, state application.CartState) error {
	output, err := shoprender.RenderCart(state.Cart)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
	return err
}

func parseID(raw, what string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, raw)
	}
	return id, nil
}
