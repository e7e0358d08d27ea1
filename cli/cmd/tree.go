package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/ardnew/sitenav/nav"
)

// Tree prints the navigation tree of a site root without writing files.
type Tree struct {
	Hidden bool `default:"true" help:"Include hidden items." negatable:""`
	Links  bool `default:"true" help:"Show item links."      negatable:""`

	Root string `arg:"" help:"Site root directory." name:"root"`
}

// Run executes the tree command.
func (t *Tree) Run(ctx context.Context) error {
	nt, err := buildTree(ctx, t.Root)
	if err != nil {
		return ErrBuild.Wrap(err)
	}

	w := stdout(ctx)
	r := lipgloss.NewRenderer(w)

	style := treeStyle{
		enum:   r.NewStyle().Foreground(lipgloss.Color("8")).MarginRight(1),
		link:   r.NewStyle().Foreground(lipgloss.Color("6")),
		hidden: r.NewStyle().Foreground(lipgloss.Color("3")),
	}

	root := tree.New().
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(style.enum)
	root.Child(t.children(nt.Items, style)...)

	_, err = fmt.Fprintln(w, root.String())

	return err
}

type treeStyle struct {
	enum, link, hidden lipgloss.Style
}

func (t *Tree) children(s nav.Items, style treeStyle) []any {
	nodes := make([]any, 0, len(s))

	for _, it := range s {
		if it.Hidden && !t.Hidden {
			continue
		}

		label := t.label(it, style)

		if len(it.Children) == 0 {
			nodes = append(nodes, label)

			continue
		}

		nodes = append(nodes, tree.Root(label).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(style.enum).
			Child(t.children(it.Children, style)...))
	}

	return nodes
}

func (t *Tree) label(it *nav.Item, style treeStyle) string {
	label := it.NameEN
	if it.NameDE != it.NameEN {
		label += " / " + it.NameDE
	}

	if t.Links {
		label += " " + style.link.Render("["+it.Link+"]")
	}

	if it.Hidden {
		label += " " + style.hidden.Render("(hidden)")
	}

	return label
}
