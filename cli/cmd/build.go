package cmd

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/ardnew/sitenav/log"
	"github.com/ardnew/sitenav/nav"
)

// Build writes the menu structure file for a site root and renders the
// group files of every template below it.
type Build struct {
	Plain    bool `help:"Write plain JSON instead of the quote-escaped structure."`
	NoGroups bool `help:"Do not render group files from templates."                name:"no-groups"`

	Root   string `arg:"" help:"Site root directory."      name:"root"`
	Output string `arg:"" help:"Menu structure output file." name:"output" type:"path"`
}

// Run executes the build command.
func (b *Build) Run(ctx context.Context) error {
	tree, err := buildTree(ctx, b.Root)
	if err != nil {
		return ErrBuild.Wrap(err).With(slog.String("root", b.Root))
	}

	log.InfoContext(ctx, "writing menu structure file",
		slog.String("path", b.Output),
		slog.Bool("plain", b.Plain),
	)

	if err := nav.WriteStructureFile(b.Output, tree.Items, b.Plain); err != nil {
		return ErrBuild.Wrap(err).With(slog.String("root", b.Root))
	}

	groups := 0

	if !b.NoGroups {
		for _, ref := range tree.Templates {
			log.DebugContext(ctx, "found template",
				slog.String("path", filepath.Join(tree.Root, filepath.FromSlash(ref.Path))),
				slog.Any("owner", ref.Owner),
			)
		}

		groups = tree.WriteGroups(ctx)
	}

	log.InfoContext(ctx, "done",
		slog.Int("templates", len(tree.Templates)),
		slog.Int("groups", groups),
	)

	return nil
}
