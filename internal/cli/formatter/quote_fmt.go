package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/estimator/internal/costing"
	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// QuoteView holds everything needed to render a project card.
type QuoteView struct {
	Project  *domain.Project
	Customer *domain.Customer // nil when the project has none
	Root     *domain.ScopeNode
}

// FormatProjectList renders the projects table inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	if len(projects) == 0 {
		return RenderBox("Projects", Dim("No projects yet"))
	}
	headers := []string{"CODE", "TITLE", "STATUS", "CREATED"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			p.DisplayID(),
			Bold(p.Title),
			StatusPill(p.Status),
			HumanDate(p.CreatedAt),
		})
	}
	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatQuote renders project metadata beside the scope tree, followed by
// the financial summary.
func FormatQuote(v QuoteView) string {
	left := buildMetadataPanel(v)
	right := StyleDim.Render("No scope")
	if v.Root != nil {
		right = RenderTree(TreeItems(v.Root, nodeTotalBadge))
	}
	combined := lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)

	var b strings.Builder
	b.WriteString(combined)
	if v.Root != nil {
		b.WriteString("\n\n")
		b.WriteString(formatSummary(costing.Summarize(v.Root)))
	}
	return RenderBox("", b.String())
}

func buildMetadataPanel(v QuoteView) string {
	p := v.Project
	var b strings.Builder
	b.WriteString(StyleBold.Render(p.Title) + "\n\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("STATUS  "), StatusPill(p.Status)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("CODE    "), p.DisplayID()))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("UUID    "), TruncID(p.ID)))
	if v.Customer != nil {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("CUSTOMER"), StyleFg.Render(v.Customer.Name)))
	}
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("CREATED "), StyleFg.Render(HumanDate(p.CreatedAt))))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("UPDATED "), StyleFg.Render(HumanDate(p.UpdatedAt))))
	return lipgloss.NewStyle().Width(40).Render(b.String())
}

func nodeTotalBadge(n *domain.ScopeNode) string {
	total := n.RecursiveTotal()
	if total.IsZero() {
		return ""
	}
	return Money(total)
}

func formatSummary(s costing.Summary) string {
	rows := []struct {
		label string
		value string
	}{
		{"REVENUE", MoneyStyled(s.Revenue)},
		{"COST", MoneyStyled(s.Cost)},
		{"PROFIT", MoneyStyled(s.Profit)},
		{"MARGIN", Percent(s.MarginPercent)},
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, Dim(fmt.Sprintf("%-8s", r.label))+"  "+r.value)
	}
	return strings.Join(lines, "\n")
}

// FormatTotals renders the per-node breakdown table and the quote summary.
func FormatTotals(project *domain.Project, root *domain.ScopeNode) string {
	headers := []string{"NODE", "KIND", "ITEMS", "OWN", "REVENUE", "COST", "PROFIT"}
	figures := costing.Breakdown(root)
	items := TreeItems(root, nil)
	rows := make([][]string, 0, len(figures))
	for i, f := range figures {
		name := RenderTree(items[i : i+1])
		rows = append(rows, []string{
			strings.TrimRight(name, "\n"),
			KindBadge(f.Node.Kind),
			fmt.Sprintf("%d", f.ItemCount),
			Money(f.Subtotal),
			Money(f.Revenue),
			Money(f.Cost),
			MoneyStyled(f.Profit),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTableRight(headers, rows, 2, 3, 4, 5, 6))
	b.WriteString("\n")
	b.WriteString(formatSummary(costing.Summarize(root)))
	return RenderBox("Totals "+project.DisplayID(), b.String())
}

// FormatNodeItems lists the line items attached directly to n.
func FormatNodeItems(n *domain.ScopeNode) string {
	items := n.Items()
	if len(items) == 0 {
		return RenderBox(n.Name, Dim("No line items"))
	}
	headers := []string{"ID", "PRODUCT", "QTY", "UNIT PRICE", "UNIT COST", "LINE TOTAL"}
	rows := make([][]string, 0, len(items))
	for _, li := range items {
		rows = append(rows, []string{
			TruncID(li.ID),
			li.ProductName,
			fmt.Sprintf("%d", li.Quantity),
			Money(li.UnitPrice),
			Money(li.UnitCost),
			Money(li.LineRevenue()),
		})
	}
	return RenderBox(n.Name, RenderTableRight(headers, rows, 2, 3, 4, 5))
}

// FormatProductList renders the catalog table.
func FormatProductList(products []*domain.Product) string {
	if len(products) == 0 {
		return RenderBox("Catalog", Dim("No products yet"))
	}
	headers := []string{"ID", "NAME", "PRICE", "COST"}
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{TruncID(p.ID), p.Name, Money(p.SalePrice), Money(p.PurchaseCost)})
	}
	return RenderBox("Catalog", RenderTableRight(headers, rows, 2, 3))
}

// FormatCustomerList renders the customers table.
func FormatCustomerList(customers []*domain.Customer) string {
	if len(customers) == 0 {
		return RenderBox("Customers", Dim("No customers yet"))
	}
	headers := []string{"ID", "NAME", "PHONE", "EMAIL"}
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{TruncID(c.ID), c.Name, dashIfEmpty(c.Phone), dashIfEmpty(c.Email)})
	}
	return RenderBox("Customers", RenderTable(headers, rows))
}

func dashIfEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("--")
	}
	return s
}
