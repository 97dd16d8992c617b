package cli

import (
	"fmt"

	"github.com/alexanderramin/estimator/internal/cli/formatter"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newProductCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage the product catalog",
	}
	cmd.AddCommand(newProductAddCmd(app), newProductListCmd(app))
	return cmd
}

func newProductAddCmd(app *App) *cobra.Command {
	var name string
	var price, cost decimal.Decimal

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a catalog product",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Catalog.Create(cmd.Context(), name, price, cost)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created product %s (%s) at %s\n",
				p.Name, formatter.TruncID(p.ID), formatter.Money(p.SalePrice))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Product name")
	decimalFlag(cmd.Flags(), &price, "price", "Sale price per unit")
	decimalFlag(cmd.Flags(), &cost, "cost", "Purchase cost per unit")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("cost")

	return cmd
}

func newProductListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog products",
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := app.Catalog.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProductList(products))
			return nil
		},
	}
}

func newCustomerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Manage customers",
	}
	cmd.AddCommand(newCustomerAddCmd(app), newCustomerListCmd(app))
	return cmd
}

func newCustomerAddCmd(app *App) *cobra.Command {
	var name, phone, email string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Customers.Create(cmd.Context(), name, phone, email)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created customer %s (%s)\n", c.Name, c.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Customer name")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newCustomerListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List customers",
		RunE: func(cmd *cobra.Command, args []string) error {
			customers, err := app.Customers.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCustomerList(customers))
			return nil
		},
	}
}
