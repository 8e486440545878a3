package cmd

import (
	"context"
	"fmt"

	shoprender "github.com/bnema/shopscript-cli/internal/adapters/render/shop"
	"github.com/bnema/shopscript-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newProductsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse the catalog",
	}

	cmd.AddCommand(newProductsListCmd(app), newProductsGetCmd(app))

	return cmd
}

func newProductsListCmd(app *app) *cobra.Command {
	var query domain.ProductQuery

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, _ []string) error {
			shop, err := app.open(cmd.Context())
			if err != nil {
				return err
			}

			var page domain.ProductPage
			err = withSpinner(cmd.Context(), cmd.ErrOrStderr(), "Fetching products...", func(ctx context.Context) error {
				result, listErr := shop.products.List(ctx, query)
				page = result
				return listErr
			})
			if err != nil {
				return err
			}

			return printView(cmd, func() (string, error) { return shoprender.RenderProducts(page) })
		},
	}

	cmd.Flags().StringVar(&query.Search, "search", "", "Search term")
	cmd.Flags().Int64Var(&query.CategoryID, "category", 0, "Category id")
	cmd.Flags().IntVar(&query.Page, "page", 0, "Page number")
	cmd.Flags().IntVar(&query.PerPage, "per-page", 0, "Products per page")

	return cmd
}

func newProductsGetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <product-id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "product")
			if err != nil {
				return err
			}

			shop, err := app.open(cmd.Context())
			if err != nil {
				return err
			}

			product, err := shop.products.Get(cmd.Context(), domain.ProductID(id))
			if err != nil {
				return err
			}

			return printView(cmd, func() (string, error) { return shoprender.RenderProduct(product) })
		},
	}
}

func newOrdersCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "View your orders",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List orders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			shop, err := app.open(cmd.Context())
			if err != nil {
				return err
			}

			orders, err := shop.orders.List(cmd.Context())
			if err != nil {
				return err
			}

			return printView(cmd, func() (string, error) { return shoprender.RenderOrders(orders) })
		},
	}

	get := &cobra.Command{
		Use:   "get <order-id>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "order")
			if err != nil {
				return err
			}

			shop, err := app.open(cmd.Context())
			if err != nil {
				return err
			}

			order, err := shop.orders.Get(cmd.Context(), domain.OrderID(id))
			if err != nil {
				return err
			}

			return printView(cmd, func() (string, error) { return shoprender.RenderOrder(order) })
		},
	}

	cmd.AddCommand(list, get)

	return cmd
}

func newCheckoutCmd(app *app) *cobra.Command {
	var (
		request   domain.CheckoutRequest
		orderOnly bool
	)

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Turn the cart into an order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			shop, err := app.open(cmd.Context())
			if err != nil {
				return err
			}

			var result domain.CheckoutResult
			if orderOnly {
				order, err := shop.orders.Create(cmd.Context(), request)
				if err != nil {
					return err
				}
				result = domain.CheckoutResult{Order: order}
			} else {
				result, err = shop.checkout.Submit(cmd.Context(), request)
				if err != nil {
					return err
				}
			}
			shop.cart.Reset()

			return printView(cmd, func() (string, error) { return shoprender.RenderCheckout(result) })
		},
	}

	cmd.Flags().StringVar(&request.ShippingMethod, "shipping", "", "Shipping method")
	cmd.Flags().StringVar(&request.PaymentMethod, "payment", "", "Payment method")
	cmd.Flags().StringVar(&request.Comment, "comment", "", "Note for the shop")
	cmd.Flags().BoolVar(&orderOnly, "order-only", false, "Place the order without starting payment")
	_ = cmd.MarkFlagRequired("shipping")
	_ = cmd.MarkFlagRequired("payment")

	return cmd
}

func printView(cmd *cobra.Command, view func() (string, error)) error {
	output, err := view()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
	return err
}
