package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/estimator/internal/cli/formatter"
	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/service"
	"github.com/spf13/cobra"
)

func newNodeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Edit the scope tree of a project",
	}

	cmd.PersistentFlags().String("project", "", "Project code or ID")
	_ = cmd.MarkPersistentFlagRequired("project")

	cmd.AddCommand(
		newNodeAddCmd(app),
		newNodeRenameCmd(app),
		newNodeRemoveCmd(app),
		newNodeCloneCmd(app),
		newNodeMoveCmd(app),
		newNodeApplySiblingsCmd(app),
	)

	return cmd
}

func projectFlag(cmd *cobra.Command) string {
	v, _ := cmd.Flags().GetString("project")
	return v
}

func parseKind(s string) (domain.NodeKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !domain.ValidNodeKinds[s] {
		return "", fmt.Errorf("invalid node kind %q (project|block|floor|flat|zone)", s)
	}
	return domain.NodeKind(s), nil
}

func newNodeAddCmd(app *App) *cobra.Command {
	var name, kindStr, parentRef string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a node under --parent (the project root by default)",
		Long: "Add a node. Adding a flat while a flat is selected as parent\n" +
			"places the new flat next to it instead of inside it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(kindStr)
			if err != nil {
				return err
			}
			name = strings.TrimSpace(name)
			if name == "" {
				return fmt.Errorf("node name is required")
			}

			var added *domain.ScopeNode
			_, err = editQuote(cmd.Context(), app, projectFlag(cmd), func(q *service.Quote) error {
				selected := q.Root()
				if parentRef != "" {
					n, err := resolveNode(q.Root(), parentRef)
					if err != nil {
						return err
					}
					selected = n
				}
				target := domain.InsertionTarget(selected, kind)
				added = target.AddChild(name, kind)
				return nil
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s (%s)\n", kind, added.Name, formatter.TruncID(added.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Node name")
	cmd.Flags().StringVar(&kindStr, "kind", string(domain.NodeZone), "Node kind (block|floor|flat|zone|project)")
	cmd.Flags().StringVar(&parentRef, "parent", "", "Parent node ID or prefix")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newNodeRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename NODE NAME",
		Short: "Rename a node",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[1])
			if name == "" {
				return fmt.Errorf("node name is required")
			}
			_, err := editQuote(cmd.Context(), app, projectFlag(cmd), func(q *service.Quote) error {
				n, err := resolveNode(q.Root(), args[0])
				if err != nil {
					return err
				}
				n.Rename(name)
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed node to %s\n", name)
			return nil
		},
	}
}

func newNodeRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NODE",
		Short: "Remove a node with its subtree and line items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var removed *domain.ScopeNode
			_, err := editQuote(cmd.Context(), app, projectFlag(cmd), func(q *service.Quote) error {
				n, err := resolveNode(q.Root(), args[0])
				if err != nil {
					return err
				}
				removed = n
				return n.Remove()
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %s\n", removed.Kind, removed.Name)
			return nil
		},
	}
}

func newNodeCloneCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "clone NODE",
		Short: "Deep-copy a node and place the copy right after it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var clone *domain.ScopeNode
			_, err := editQuote(cmd.Context(), app, projectFlag(cmd), func(q *service.Quote) error {
				n, err := resolveNode(q.Root(), args[0])
				if err != nil {
					return err
				}
				parent := n.Parent()
				if parent == nil {
					return fmt.Errorf("cannot clone the project root: %w", domain.ErrNoParent)
				}
				clone = n.Clone(domain.CoalesceStr(strings.TrimSpace(name), n.Name+" (copy)"))
				return parent.InsertChild(clone, n.IndexInParent()+1)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cloned into %s (%s)\n", clone.Name, formatter.TruncID(clone.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name of the copy (default: \"<name> (copy)\")")
	return cmd
}

func newNodeMoveCmd(app *App) *cobra.Command {
	var targetRef string
	var index int

	cmd := &cobra.Command{
		Use:   "move NODE",
		Short: "Move a node under --to at --index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var moved, target *domain.ScopeNode
			_, err := editQuote(cmd.Context(), app, projectFlag(cmd), func(q *service.Quote) error {
				var err error
				if moved, err = resolveNode(q.Root(), args[0]); err != nil {
					return err
				}
				if target, err = resolveNode(q.Root(), targetRef); err != nil {
					return err
				}
				at := index
				if !cmd.Flags().Changed("index") {
					at = target.ChildCount()
				}
				return moved.MoveTo(target, at)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s under %s at position %d\n",
				moved.Name, target.Name, moved.IndexInParent())
			return nil
		},
	}

	cmd.Flags().StringVar(&targetRef, "to", "", "New parent node ID or prefix")
	cmd.Flags().IntVar(&index, "index", 0, "Position among the new parent's children (default: last)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newNodeApplySiblingsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "apply-siblings NODE",
		Short: "Copy a node's line items onto every sibling of the same kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var source *domain.ScopeNode
			var updated int
			_, err := editQuote(cmd.Context(), app, projectFlag(cmd), func(q *service.Quote) error {
				n, err := resolveNode(q.Root(), args[0])
				if err != nil {
					return err
				}
				source = n
				updated, err = n.ApplyToSiblings()
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Copied %d items from %s to %d siblings\n",
				len(source.Items()), source.Name, updated)
			return nil
		},
	}
}
