package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/estimator/internal/cli/formatter"
	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/service"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Attach catalog products to scope nodes",
	}

	cmd.PersistentFlags().String("project", "", "Project code or ID")
	cmd.PersistentFlags().String("node", "", "Node ID or prefix (default: the project root)")
	_ = cmd.MarkPersistentFlagRequired("project")

	cmd.AddCommand(
		newItemAddCmd(app),
		newItemRemoveCmd(app),
		newItemListCmd(app),
	)

	return cmd
}

// itemNode resolves the --node flag inside q, defaulting to the root.
func itemNode(cmd *cobra.Command, q *service.Quote) (*domain.ScopeNode, error) {
	ref, _ := cmd.Flags().GetString("node")
	if strings.TrimSpace(ref) == "" {
		return q.Root(), nil
	}
	return resolveNode(q.Root(), ref)
}

// resolveProductID accepts a full product id or a unique id prefix.
func resolveProductID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("product ID is required")
	}
	if _, err := app.Catalog.Product(ctx, input); err == nil {
		return input, nil
	} else if !errors.Is(err, service.ErrProductNotFound) {
		return "", err
	}

	products, err := app.Catalog.List(ctx)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, p := range products {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", service.ErrProductNotFound, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("product ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newItemAddCmd(app *App) *cobra.Command {
	var productRef string
	var quantity int
	var price decimal.Decimal

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Attach a product to a node",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if quantity < 1 {
				return fmt.Errorf("%w (got %d)", domain.ErrInvalidQuantity, quantity)
			}
			productID, err := resolveProductID(ctx, app, productRef)
			if err != nil {
				return err
			}

			var override *decimal.Decimal
			if cmd.Flags().Changed("price") {
				override = &price
			}

			var item *domain.LineItem
			var node *domain.ScopeNode
			_, err = editQuote(ctx, app, projectFlag(cmd), func(q *service.Quote) error {
				n, err := itemNode(cmd, q)
				if err != nil {
					return err
				}
				node = n
				item, err = app.Quotes.AttachProduct(ctx, n, productID, quantity, override)
				return err
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %d x %s at %s to %s (%s)\n",
				item.Quantity, item.ProductName, formatter.Money(item.UnitPrice), node.Name, formatter.TruncID(item.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&productRef, "product", "", "Product ID or prefix")
	cmd.Flags().IntVar(&quantity, "qty", 1, "Quantity (at least 1)")
	decimalFlag(cmd.Flags(), &price, "price", "Unit price override (default: catalog sale price)")
	_ = cmd.MarkFlagRequired("product")

	return cmd
}

func newItemRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ITEM",
		Short: "Remove a line item from a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var removed *domain.LineItem
			_, err := editQuote(cmd.Context(), app, projectFlag(cmd), func(q *service.Quote) error {
				n, err := itemNode(cmd, q)
				if err != nil {
					return err
				}
				if removed, err = resolveItem(n, args[0]); err != nil {
					return err
				}
				n.DetachItem(removed)
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", removed.ProductName)
			return nil
		},
	}
}

func newItemListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the line items attached directly to a node",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := loadQuote(cmd.Context(), app, projectFlag(cmd))
			if err != nil {
				return err
			}
			n, err := itemNode(cmd, q)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatNodeItems(n))
			return nil
		},
	}
}
