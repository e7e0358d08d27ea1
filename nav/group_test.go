package nav

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildWriting(t *testing.T, fsys fstest.MapFS) (*Tree, map[string]string) {
	t.Helper()

	out := map[string]string{}

	b, err := NewBuilder(t.TempDir(), WithFS(fsys),
		WithWriteFunc(func(name string, data []byte) error {
			out[name] = string(data)

			return nil
		}))
	require.NoError(t, err)

	tree, err := b.Build(context.Background())
	require.NoError(t, err)

	return tree, out
}

func TestInstantiate(t *testing.T) {
	props := map[string]string{"name_en": "Home", "link": "/", "a b": "spaced"}

	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"plain", "plain"},
		{"<a href='{{link}}'>{{name_en}}</a>", "<a href='/'>Home</a>"},
		{"{{missing}}x", "x"},
		{"{{a b}}", "spaced"},
		{"{{name_en}}{{name_en}}", "HomeHome"},
		{"{{}}", ""},
		{"{{ name_en }}", ""},
		{"{name_en}", "{name_en}"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Instantiate(tt.in, props))
		})
	}
}

func TestGroupName(t *testing.T) {
	assert.Equal(t, "nav", GroupName(".template.nav"))
	assert.Equal(t, "nav.top", GroupName("docs/.template.nav.top"))
	assert.Equal(t, "", GroupName("docs/.template."))
}

func TestParseTemplate(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    Template
		wantErr error
	}{
		{"item only", `{"item_template": "<b>{{name_en}}</b>"}`,
			Template{Item: "<b>{{name_en}}</b>"}, nil},
		{"spacer", `{"item_template": "x", "item_spacer": ", ", "other": 1}`,
			Template{Item: "x", Spacer: ", "}, nil},
		{"null spacer", `{"item_template": "x", "item_spacer": null}`,
			Template{Item: "x"}, nil},
		{"missing item", `{"item_spacer": ", "}`, Template{}, ErrTemplateMissingKey},
		{"non-string item", `{"item_template": 1}`, Template{}, ErrTemplateMissingKey},
		{"non-string spacer", `{"item_template": "x", "item_spacer": 1}`, Template{}, ErrTemplateSyntax},
		{"array", `["item_template"]`, Template{}, ErrTemplateSyntax},
		{"null", `null`, Template{}, ErrTemplateSyntax},
		{"syntax", `{"item_template": }`, Template{}, ErrTemplateSyntax},
		{"trailing object", `{"item_template": "x"} {}`, Template{}, ErrTemplateSyntax},
		{"trailing text", `{"item_template": "x"} x`, Template{}, ErrTemplateSyntax},
		{"trailing space", "{\"item_template\": \"x\"}\n\t ", Template{Item: "x"}, nil},
		{"bad filter", `{"item_template": "x", "item_filter": "order >"}`, Template{}, ErrTemplateFilter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTemplate([]byte(tt.data))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want.Item, got.Item)
			assert.Equal(t, tt.want.Spacer, got.Spacer)
		})
	}
}

func TestTemplateMatch(t *testing.T) {
	it, err := NewItem("/a", "A", "Alpha", "nav", 4, true,
		map[string]string{"icon": "star"})
	require.NoError(t, err)

	tests := []struct {
		filter string
		want   bool
	}{
		{"", true},
		{"order < 5", true},
		{"order >= 5", false},
		{"hidden", true},
		{"!hidden", false},
		{`icon == "star"`, true},
		{`name_en startsWith "Al" && group == "nav"`, true},
		{`undefined == nil`, true},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			tmpl, err := ParseTemplate([]byte(
				`{"item_template": "", "item_filter": ` + quote(tt.filter) + `}`))
			require.NoError(t, err)

			got, err := tmpl.Match(it)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func quote(s string) string {
	b := []byte{'"'}
	for _, c := range []byte(s) {
		if c == '"' {
			b = append(b, '\\')
		}

		b = append(b, c)
	}

	return string(append(b, '"'))
}

func TestCollectGroups(t *testing.T) {
	tree := build(t, menuFS(map[string]string{
		".menu": `[
			{"name_de": "Start"},
			{"link": "b", "name_de": "B", "group": "nav"},
			{"link": "a", "name_de": "A", "group": "nav"},
			{"link": "t", "name_de": "T", "group": "NAV.top"},
			{"link": "n", "name_de": "N", "group": "navigation"},
			{"link": "f", "name_de": "F", "group": "footer"},
			{"link": "e", "name_de": "E", "group": ""}
		]`,
		"sub/.menu": `[{"name_de": "Sub", "group": "nav.sub"},
			{"link": "deep", "name_de": "Deep", "group": "nav"}]`,
	}))

	groups := CollectGroups(tree.Items[0], "Nav")

	got := map[string][]string{}
	for g, s := range groups {
		got[g] = names(s)
	}

	assert.Equal(t, map[string][]string{
		"nav":        {"A", "B", "Deep"},
		"NAV.top":    {"T"},
		"navigation": {"N"},
		"nav.sub":    {"Sub"},
	}, got)

	all := CollectGroups(tree.Items[0], "")
	assert.Len(t, all, 5)
	assert.NotContains(t, all, "")
}

func TestWriteGroupsSpacer(t *testing.T) {
	tree, out := buildWriting(t, menuFS(map[string]string{
		".menu": `[
			{"name_de": "Start"},
			{"link": "b", "name_en": "B", "group": "nav"},
			{"link": "a", "name_en": "A", "group": "nav"}
		]`,
		".template.nav": `{"item_template": "<b>{{name_en}}</b>", "item_spacer": ", "}`,
	}))

	assert.Equal(t, 1, tree.WriteGroups(context.Background()))
	assert.Equal(t, map[string]string{".nav.html": "<b>A</b>, <b>B</b>"}, out)
}

func TestWriteGroupsPrefixBuckets(t *testing.T) {
	tree, out := buildWriting(t, menuFS(map[string]string{
		".menu":      `[{"name_de": "Start"}]`,
		"site/.menu": `[{"name_de": "Site"}, {"link": "x", "name_de": "X", "group": "nav"}]`,
		"site/a/.menu": `[{"name_de": "A", "group": "nav.top", "order": 1},
			{"link": "p", "name_de": "P", "group": "nav.top", "prop": 7}]`,
		"site/.template.nav": `{"item_template": "[{{link}}|{{prop}}]"}`,
	}))

	assert.Equal(t, 2, tree.WriteGroups(context.Background()))
	assert.Equal(t, map[string]string{
		"site/.nav.html":     "[site/x|]",
		"site/.nav.top.html": "[site/a/|][site/a/p|7]",
	}, out)
}

func TestWriteGroupsFilter(t *testing.T) {
	tree, out := buildWriting(t, menuFS(map[string]string{
		".menu": `[
			{"name_de": "Start"},
			{"link": "a", "name_de": "A", "group": "nav"},
			{"link": "h", "name_de": "H", "group": "nav", "hidden": true},
			{"link": "g", "name_de": "G", "group": "nav.hidden", "hidden": true}
		]`,
		".template.nav": `{"item_template": "{{name_de}}", "item_filter": "!hidden"}`,
	}))

	assert.Equal(t, 1, tree.WriteGroups(context.Background()))
	assert.Equal(t, map[string]string{".nav.html": "A"}, out)
}

func TestWriteGroupsErrorsAreScoped(t *testing.T) {
	tree, out := buildWriting(t, menuFS(map[string]string{
		".menu": `[
			{"name_de": "Start"},
			{"link": "a", "name_de": "A", "group": "nav"},
			{"link": "s", "name_de": "S", "group": "nav/../../x"},
			{"link": "f", "name_de": "F", "group": "footer"},
			{"link": "o", "name_de": "O", "group": "other"}
		]`,
		".template.nav":    `{"item_template": "{{name_de}}"}`,
		".template.footer": `{"item_spacer": ""}`,
		".template.other":  `{"item_template": "{{name_de}}", "item_filter": "1 / link"}`,
		".template.broken": `{`,
	}))

	assert.Equal(t, 1, tree.WriteGroups(context.Background()))
	assert.Equal(t, map[string]string{".nav.html": "A"}, out)
}

func TestRenderTemplateFragments(t *testing.T) {
	tree := build(t, menuFS(map[string]string{
		".menu": `[
			{"name_de": "Start"},
			{"link": "b", "name_de": "B", "group": "nav.b"},
			{"link": "a", "name_de": "A", "group": "nav.a"},
			{"link": "s", "name_de": "S", "group": "nav\\evil"}
		]`,
		".template.nav": `{"item_template": "{{name_de}}"}`,
	}))

	require.Len(t, tree.Templates, 1)

	frags, err := tree.RenderTemplate(tree.Templates[0])
	require.NoError(t, err)
	require.Len(t, frags, 3)

	assert.Equal(t, "nav.a", frags[0].Group)
	assert.Equal(t, ".nav.a.html", frags[0].Path)
	assert.Equal(t, "A", frags[0].Text)
	assert.Equal(t, "nav.b", frags[1].Group)
	assert.ErrorIs(t, frags[2].Err, ErrWriteGroup)
}

func TestWriteGroupsDisk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0o755))

	files := map[string]string{
		".menu":              `[{"name_de": "Start"}]`,
		"docs/.menu":         `[{"name_de": "Docs"}, {"link": "i", "name_de": "Intro", "group": "toc"}]`,
		"docs/.template.toc": `{"item_template": "<li>{{name_de}}</li>"}`,
	}
	for name, data := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, filepath.FromSlash(name)), []byte(data), 0o600))
	}

	b, err := NewBuilder(dir)
	require.NoError(t, err)

	tree, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, tree.WriteGroups(context.Background()))

	data, err := os.ReadFile(filepath.Join(dir, "docs", ".toc.html"))
	require.NoError(t, err)
	assert.Equal(t, "<li>Intro</li>", string(data))
}

func TestWriteGroupsWriteFailure(t *testing.T) {
	calls := 0

	b, err := NewBuilder(t.TempDir(), WithFS(menuFS(map[string]string{
		".menu": `[
			{"name_de": "Start"},
			{"link": "a", "name_de": "A", "group": "nav.a"},
			{"link": "b", "name_de": "B", "group": "nav.b"}
		]`,
		".template.nav": `{"item_template": "{{name_de}}"}`,
	})), WithWriteFunc(func(string, []byte) error {
		calls++
		if calls == 1 {
			return errors.New("disk full")
		}

		return nil
	}))
	require.NoError(t, err)

	tree, err := b.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, tree.WriteGroups(context.Background()))
	assert.Equal(t, 2, calls)
}
