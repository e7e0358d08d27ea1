package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/sitenav/nav"
)

func TestBuildRun(t *testing.T) {
	root := writeSite(t, homeAbout)
	output := filepath.Join(t.TempDir(), "menu.json")

	b := Build{Root: root, Output: output}
	require.NoError(t, b.Run(context.Background()))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t,
		`[{\"name_de\":\"Home\",\"name_en\":\"Home\",\"link\":\"\",\"hidden\":false,\"items\":[`+
			`{\"name_de\":\"Über uns\",\"name_en\":\"About\",\"link\":\"about/\",\"hidden\":false,\"items\":[]},`+
			`{\"name_de\":\"Secret\",\"name_en\":\"Secret\",\"link\":\"/nav.html\",\"hidden\":true,\"items\":[]}]}]`,
		string(data))

	group, err := os.ReadFile(filepath.Join(root, ".nav.html"))
	require.NoError(t, err)
	assert.Equal(t, `<a href="about/">About</a>|<a href="/nav.html">Secret</a>`, string(group))
}

func TestBuildRunPlainNoGroups(t *testing.T) {
	root := writeSite(t, homeAbout)
	output := filepath.Join(t.TempDir(), "menu.json")

	b := Build{Root: root, Output: output, Plain: true, NoGroups: true}
	require.NoError(t, b.Run(context.Background()))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name_en":"About"`)

	assert.NoFileExists(t, filepath.Join(root, ".nav.html"))
}

func TestBuildRunRootNotFound(t *testing.T) {
	output := filepath.Join(t.TempDir(), "menu.json")

	b := Build{Root: filepath.Join(t.TempDir(), "missing"), Output: output}
	err := b.Run(context.Background())

	require.ErrorIs(t, err, ErrBuild)
	require.ErrorIs(t, err, nav.ErrRootNotFound)
	assert.NoFileExists(t, output)
}

func TestBuildRunUnwritableOutput(t *testing.T) {
	root := writeSite(t, homeAbout)

	b := Build{Root: root, Output: filepath.Join(root, "missing", "menu.json")}
	err := b.Run(context.Background())

	require.ErrorIs(t, err, nav.ErrWriteStructure)
	assert.NoFileExists(t, filepath.Join(root, ".nav.html"))
}

func TestBuildRunEmptyRoot(t *testing.T) {
	root := t.TempDir()
	output := filepath.Join(t.TempDir(), "menu.json")

	b := Build{Root: root, Output: output}
	require.NoError(t, b.Run(context.Background()))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
