package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRun(t *testing.T) {
	root := writeSite(t, homeAbout)

	ctx, out := testContext(t)

	cmd := Find{Root: root, Pattern: "about", Limit: 10}
	require.NoError(t, cmd.Run(ctx))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "about/\tAbout", lines[0])
}

func TestFindRunNoMatch(t *testing.T) {
	root := writeSite(t, homeAbout)

	ctx, out := testContext(t)

	cmd := Find{Root: root, Pattern: "zzz", Limit: 10}
	require.ErrorIs(t, cmd.Run(ctx), ErrNoMatch)
	assert.Empty(t, out.String())
}
