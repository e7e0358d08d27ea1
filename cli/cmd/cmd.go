package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/sitenav/log"
	"github.com/ardnew/sitenav/nav"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdout returns the writer for command output, which is the writer
// configured in kong if ctx carries a kong.Context.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Kong != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// buildTree walks root and returns its navigation tree.
func buildTree(ctx context.Context, root string) (*nav.Tree, error) {
	b, err := nav.NewBuilder(root)
	if err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "parsing menu files", slog.String("root", b.Root()))

	return b.Build(ctx)
}
