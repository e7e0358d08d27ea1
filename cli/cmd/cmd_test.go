package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"
)

// testContext returns a context whose kong output is captured in the
// returned buffer.
func testContext(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer

	k, err := kong.New(&struct{}{}, kong.Writers(&out, io.Discard))
	require.NoError(t, err)

	return WithContext(context.Background(), &kong.Context{Kong: k}), &out
}

// writeSite creates files below a new temporary directory and returns it.
func writeSite(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()

	for name, data := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	}

	return root
}

var homeAbout = map[string]string{
	".menu": `[{"name_en": "Home", "order": 0},
		{"link": "nav.html", "name_en": "Secret", "hidden": true, "group": "nav"}]`,
	"about/.menu": `[{"name_en": "About", "name_de": "Über uns", "order": 1, "group": "nav"}]`,
	".template.nav": `{"item_template": "<a href=\"{{link}}\">{{name_en}}</a>", "item_spacer": "|"}`,
}

func TestStdoutFallback(t *testing.T) {
	require.Equal(t, io.Writer(os.Stdout), stdout(context.Background()))

	ctx, out := testContext(t)
	require.Same(t, out, stdout(ctx))
}
