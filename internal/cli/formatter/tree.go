package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Title string
	Kind  domain.NodeKind
	// Guides has one entry per ancestor level below the root: true when
	// that ancestor still has siblings after it, so its pipe continues.
	Guides []bool
	IsLast bool
	Level  int
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// TreeItems flattens the subtree under root into display rows. detail is
// called per node for the right-hand badge; nil leaves badges empty.
func TreeItems(root *domain.ScopeNode, detail func(*domain.ScopeNode) string) []TreeItem {
	var items []TreeItem
	var visit func(n *domain.ScopeNode, level int, guides []bool, isLast bool)
	visit = func(n *domain.ScopeNode, level int, guides []bool, isLast bool) {
		item := TreeItem{
			Title:  n.Name,
			Kind:   n.Kind,
			Guides: guides,
			IsLast: isLast,
			Level:  level,
		}
		if detail != nil {
			item.Detail = detail(n)
		}
		items = append(items, item)

		children := n.Children()
		var next []bool
		if level > 0 {
			next = append(append([]bool{}, guides...), !isLast)
		}
		for i, c := range children {
			visit(c, level+1, next, i == len(children)-1)
		}
	}
	visit(root, 0, nil, true)
	return items
}

// RenderTree renders TreeItems as an indented tree using box-drawing
// connectors, with detail badges right-aligned in one column.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	for idx, item := range items {
		var prefix strings.Builder
		if item.Level > 0 {
			for _, cont := range item.Guides {
				if cont {
					prefix.WriteString(treePipe)
				} else {
					prefix.WriteString(treeBlank)
				}
			}
			if item.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}

		content := StyleDim.Render(prefix.String()) + KindStyle(item.Kind).Render(item.Title)
		lines[idx].content = content
		if item.Detail != "" {
			lines[idx].badge = StyleBlue.Render(fmt.Sprintf("[ %s ]", item.Detail))
		}
		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	var b strings.Builder
	for _, li := range lines {
		if li.badge != "" {
			pad := maxContentWidth - lipgloss.Width(li.content)
			if pad < 0 {
				pad = 0
			}
			b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
		} else {
			b.WriteString(li.content + "\n")
		}
	}

	return b.String()
}
