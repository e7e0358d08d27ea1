package nav

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ardnew/sitenav/log"
)

// TemplatePrefix starts the name of every group template file.
const TemplatePrefix = ".template."

// WriteFunc writes data to the slash-separated path name relative to the
// root directory.
type WriteFunc func(name string, data []byte) error

// TemplateRef is a template file found during the walk.
type TemplateRef struct {
	Path  string // slash-separated, relative to the root
	Owner *Item  // main entry of the directory containing the template
}

// Tree is the result of a walk over a root directory.
type Tree struct {
	Root      string
	Items     Items // top-level items; empty if the root menu failed
	Templates []TemplateRef

	fsys  fs.FS
	write WriteFunc
}

// Builder walks a root directory and builds its navigation [Tree].
type Builder struct {
	root  string
	fsys  fs.FS
	write WriteFunc
}

// Option configures a [Builder].
type Option func(Builder) Builder

// WithFS reads menus and templates from fsys instead of the root directory
// on disk.
func WithFS(fsys fs.FS) Option {
	return func(b Builder) Builder {
		b.fsys = fsys

		return b
	}
}

// WithWriteFunc sends group fragments to fn instead of files below the root
// directory.
func WithWriteFunc(fn WriteFunc) Option {
	return func(b Builder) Builder {
		b.write = fn

		return b
	}
}

// NewBuilder returns a Builder for the directory root. It returns an error
// wrapping [ErrRootNotFound] if root is not a readable directory.
func NewBuilder(root string, opts ...Option) (*Builder, error) {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	b := Builder{root: root}

	for _, opt := range opts {
		if opt != nil {
			b = opt(b)
		}
	}

	if b.fsys == nil {
		b.fsys = os.DirFS(root)
	}

	if b.write == nil {
		b.write = fileWriter(root)
	}

	info, err := fs.Stat(b.fsys, ".")
	if err == nil && !info.IsDir() {
		err = fs.ErrInvalid
	}

	if err != nil {
		return nil, ErrRootNotFound.Wrap(err).With(slog.String("path", root))
	}

	return &b, nil
}

// Root returns the absolute root directory.
func (b *Builder) Root() string { return b.root }

// Build walks the root directory and returns the collected tree.
//
// Directories whose menu cannot be used are skipped together with their
// subtrees and reported as warnings; a failing root menu yields a tree
// without items. Build only fails if ctx is canceled.
func (b *Builder) Build(ctx context.Context) (*Tree, error) {
	t := &Tree{
		Root:  b.root,
		Items: Items{},
		fsys:  b.fsys,
		write: b.write,
	}

	if err := b.walk(ctx, ".", &t.Items, t, nil); err != nil {
		return nil, err
	}

	return t, nil
}

// walk adds the main entry of dir to into and descends into its
// subdirectories. parents holds the directories on the current path, used to
// stop at symbolic links leading back into one of them.
func (b *Builder) walk(
	ctx context.Context,
	dir string,
	into *Items,
	t *Tree,
	parents []fs.FileInfo,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if info, err := fs.Stat(b.fsys, dir); err == nil {
		for _, p := range parents {
			if os.SameFile(p, info) {
				log.WarnContext(ctx, "skipping path", slog.Any("error",
					ErrDirCycle.With(slog.String("path", dir))))

				return nil
			}
		}

		parents = append(parents, info)
	}

	menu, err := ParseMenu(b.fsys, dir)
	if menu != nil {
		for _, skip := range menu.Skipped {
			log.WarnContext(ctx, "skipping item", slog.Any("error", skip))
		}
	}

	if err != nil {
		log.WarnContext(ctx, "skipping path", slog.Any("error", err))

		return nil
	}

	log.TraceContext(ctx, "parsed menu",
		slog.String("dir", dir), slog.Any("item", menu.Self))

	menu.Self.Children.Insert(menu.Subs...)
	into.Insert(menu.Self)

	entries, err := fs.ReadDir(b.fsys, dir)
	if err != nil {
		log.WarnContext(ctx, "skipping path", slog.Any("error",
			ErrMenuRead.Wrap(err).With(slog.String("path", dir))))

		return nil
	}

	for _, e := range entries {
		name := path.Join(dir, e.Name())

		typ := e.Type()
		if typ&fs.ModeSymlink != 0 {
			info, err := fs.Stat(b.fsys, name)
			if err != nil {
				log.DebugContext(ctx, "ignoring broken link",
					slog.String("path", name), slog.Any("error", err))

				continue
			}

			typ = info.Mode().Type()
		}

		switch {
		case typ.IsDir():
			err := b.walk(ctx, name, &menu.Self.Children, t, parents)
			if err != nil {
				return err
			}
		case typ.IsRegular() && strings.HasPrefix(e.Name(), TemplatePrefix):
			t.Templates = append(t.Templates, TemplateRef{
				Path:  name,
				Owner: menu.Self,
			})
		}
	}

	return nil
}

func fileWriter(root string) WriteFunc {
	return func(name string, data []byte) error {
		//nolint:gosec // fragments are public web content
		return os.WriteFile(filepath.Join(root, filepath.FromSlash(name)), data, 0o644)
	}
}
