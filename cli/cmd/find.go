package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/sitenav/nav"
)

// Find fuzzy-matches a pattern against the names of every item below a site
// root and prints the best matches.
type Find struct {
	Limit int `default:"10" help:"Maximum number of matches (0 for all)." short:"n"`

	Root    string `arg:"" help:"Site root directory." name:"root"`
	Pattern string `arg:"" help:"Name pattern."        name:"pattern"`
}

// Run executes the find command.
func (f *Find) Run(ctx context.Context) error {
	nt, err := buildTree(ctx, f.Root)
	if err != nil {
		return ErrBuild.Wrap(err)
	}

	found := nav.Search(nt.Items, f.Pattern, f.Limit)
	if len(found) == 0 {
		return ErrNoMatch.With(slog.String("pattern", f.Pattern))
	}

	w := stdout(ctx)

	for _, m := range found {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", m.Item.Link, m.Name); err != nil {
			return err
		}
	}

	return nil
}
