package nav

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/sitenav/log"
)

// Template keys.
const (
	KeyItemTemplate = "item_template"
	KeyItemSpacer   = "item_spacer"
	KeyItemFilter   = "item_filter"
)

var placeholder = regexp.MustCompile(`\{\{(.*?)\}\}`)

// Template renders the items of one group.
type Template struct {
	Item   string // instantiated once per item
	Spacer string // written between instantiated items
	Filter string // optional boolean expression selecting items

	program *vm.Program
}

// ParseTemplate parses a template definition from JSON data.
func ParseTemplate(data []byte) (*Template, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil || obj == nil {
		if err == nil {
			err = errors.New("null template")
		}

		return nil, ErrTemplateSyntax.Wrap(positionError(data, err))
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrTemplateSyntax.Wrap(
			errors.New("unexpected data after top-level value"))
	}

	item, ok := obj[KeyItemTemplate].(string)
	if !ok {
		return nil, ErrTemplateMissingKey
	}

	t := &Template{Item: item}

	for key, dst := range map[string]*string{
		KeyItemSpacer: &t.Spacer,
		KeyItemFilter: &t.Filter,
	} {
		switch v := obj[key].(type) {
		case nil:
		case string:
			*dst = v
		default:
			return nil, ErrTemplateSyntax.With(
				slog.String("field", key), slog.String("want", "string"))
		}
	}

	if strings.TrimSpace(t.Filter) != "" {
		program, err := expr.Compile(t.Filter,
			expr.Env(map[string]any{}),
			expr.AllowUndefinedVariables(),
			expr.AsBool(),
		)
		if err != nil {
			return nil, ErrTemplateFilter.Wrap(err).
				With(slog.String(KeyItemFilter, t.Filter))
		}

		t.program = program
	}

	return t, nil
}

// LoadTemplate reads and parses the template file name from fsys.
func LoadTemplate(fsys fs.FS, name string) (*Template, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, ErrTemplateRead.Wrap(err).With(slog.String("path", name))
	}

	t, err := ParseTemplate(data)
	if err != nil {
		return nil, WrapError(err).With(slog.String("path", name))
	}

	return t, nil
}

// Match reports whether it passes the template's filter. Templates without
// a filter match every item.
func (t *Template) Match(it *Item) (bool, error) {
	if t.program == nil {
		return true, nil
	}

	out, err := expr.Run(t.program, filterEnv(it))
	if err != nil {
		return false, ErrTemplateFilter.Wrap(err).With(slog.Any("item", it))
	}

	ok, _ := out.(bool)

	return ok, nil
}

// Select returns the items of s that pass the template's filter.
func (t *Template) Select(s Items) (Items, error) {
	if t.program == nil {
		return s, nil
	}

	sel := make(Items, 0, len(s))

	for _, it := range s {
		ok, err := t.Match(it)
		if err != nil {
			return nil, err
		}

		if ok {
			sel = append(sel, it)
		}
	}

	return sel, nil
}

// Render instantiates the template for every item in s, separated by the
// spacer.
func (t *Template) Render(s Items) string {
	var sb strings.Builder

	for i, it := range s {
		if i > 0 {
			sb.WriteString(t.Spacer)
		}

		sb.WriteString(Instantiate(t.Item, it.Properties))
	}

	return sb.String()
}

// Instantiate replaces every {{key}} in text with props[key], or with the
// empty string if key is not in props.
func Instantiate(text string, props map[string]string) string {
	return placeholder.ReplaceAllStringFunc(text, func(m string) string {
		return props[m[2:len(m)-2]]
	})
}

// GroupName returns the group a template file is bound to, which is its
// base name without [TemplatePrefix].
func GroupName(name string) string {
	return strings.TrimPrefix(path.Base(name), TemplatePrefix)
}

// CollectGroups returns every descendant of owner whose group starts with
// prefix, compared case-insensitively, keyed by its exact group.
// Items with an empty group never match.
func CollectGroups(owner *Item, prefix string) map[string]Items {
	prefix = strings.ToLower(prefix)
	groups := make(map[string]Items)

	for it := range owner.Children.All() {
		if it.Group == "" || !strings.HasPrefix(strings.ToLower(it.Group), prefix) {
			continue
		}

		s := groups[it.Group]
		s.Insert(it)
		groups[it.Group] = s
	}

	return groups
}

// Fragment is the rendered output of one group bucket.
type Fragment struct {
	Group string
	Path  string // slash-separated, relative to the root
	Text  string
	Err   error // set if the bucket could not be rendered
}

// RenderTemplate renders one fragment per group bucket matched by the
// template ref, in lexical order of group. An error is returned if the
// template itself cannot be used; failures of a single bucket are reported
// in [Fragment.Err].
func (t *Tree) RenderTemplate(ref TemplateRef) ([]Fragment, error) {
	tmpl, err := LoadTemplate(t.fsys, ref.Path)
	if err != nil {
		return nil, err
	}

	groups := CollectGroups(ref.Owner, GroupName(ref.Path))
	dir := path.Dir(ref.Path)
	frags := make([]Fragment, 0, len(groups))

	for _, group := range slices.Sorted(maps.Keys(groups)) {
		frag := Fragment{Group: group, Path: path.Join(dir, "."+group+".html")}

		if strings.ContainsAny(group, `/\`) {
			frag.Err = ErrWriteGroup.Wrap(errors.New("group contains a path separator"))
			frags = append(frags, frag)

			continue
		}

		sel, err := tmpl.Select(groups[group])
		if err != nil {
			frag.Err = err
			frags = append(frags, frag)

			continue
		}

		if len(sel) == 0 {
			continue
		}

		frag.Text = tmpl.Render(sel)
		frags = append(frags, frag)
	}

	return frags, nil
}

// WriteGroups renders every template found during the walk and writes its
// fragments. Failures are logged and skip only the affected template or
// fragment. It returns the number of fragments written.
func (t *Tree) WriteGroups(ctx context.Context) int {
	written := 0

	for _, ref := range t.Templates {
		log.InfoContext(ctx, "writing group files from templates",
			slog.String("template", ref.Path))

		frags, err := t.RenderTemplate(ref)
		if err != nil {
			log.ErrorContext(ctx, "skipping template", slog.Any("error", err))

			continue
		}

		for _, frag := range frags {
			attr := slog.String("path", frag.Path)

			if frag.Err != nil {
				log.ErrorContext(ctx, "skipping group",
					slog.Any("error", WrapError(frag.Err).With(attr)))

				continue
			}

			if err := t.write(frag.Path, []byte(frag.Text)); err != nil {
				log.ErrorContext(ctx, "skipping group",
					slog.Any("error", ErrWriteGroup.Wrap(err).With(attr)))

				continue
			}

			log.DebugContext(ctx, "wrote group", attr,
				slog.String("group", frag.Group))

			written++
		}
	}

	return written
}

func filterEnv(it *Item) map[string]any {
	env := make(map[string]any, len(it.Properties)+6)
	for k, v := range it.Properties {
		env[k] = v
	}

	env[KeyOrder] = it.Order
	env[KeyHidden] = it.Hidden
	env[KeyGroup] = it.Group
	env[KeyLink] = it.Link
	env[KeyNameDE] = it.NameDE
	env[KeyNameEN] = it.NameEN

	return env
}
