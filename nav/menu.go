package nav

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"path"
	"strconv"
)

// MenuFileName is the name of the menu file expected in every directory.
const MenuFileName = ".menu"

// Menu is the parsed content of one menu file.
type Menu struct {
	Dir     string  // slash-separated directory relative to the root, "" at root
	Self    *Item   // the directory's own entry
	Subs    Items   // entries for sub-pages
	Skipped []error // entries that were ignored, one error each
}

// ParseMenu reads and parses the menu file in directory dir of fsys.
//
// Errors affecting the whole file are returned as the error, wrapping one of
// [ErrMenuMissing], [ErrMenuRead], [ErrMenuSyntax], [ErrMenuNotArray] or
// [ErrNoMainEntry]. In the last case the returned Menu is non-nil so that
// its skipped entries can still be reported. Errors affecting a single
// entry are collected in [Menu.Skipped].
func ParseMenu(fsys fs.FS, dir string) (*Menu, error) {
	dir = path.Clean(dir)
	name := path.Join(dir, MenuFileName)
	attr := slog.String("path", name)

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrMenuMissing.With(attr)
		}

		return nil, ErrMenuRead.Wrap(err).With(attr)
	}

	entries, err := decodeMenu(data)
	if err != nil {
		return nil, WrapError(err).With(attr)
	}

	rel := dir
	if rel == "." {
		rel = ""
	}

	menu := &Menu{Dir: rel}

	for i, obj := range entries {
		it, self, err := parseEntry(rel, obj)
		if err != nil {
			menu.Skipped = append(menu.Skipped,
				WrapError(err).With(attr, slog.Int("entry", i)))

			continue
		}

		if !self {
			menu.Subs.Insert(it)

			continue
		}

		if menu.Self != nil {
			menu.Skipped = append(menu.Skipped, ErrInvalidEntry.
				Wrap(errors.New("duplicate main entry replaced")).
				With(attr, slog.Any("item", menu.Self)))
		}

		menu.Self = it
	}

	if menu.Self == nil {
		return menu, ErrNoMainEntry.With(attr)
	}

	return menu, nil
}

// decodeMenu decodes data as a JSON array. Elements that are not objects
// are returned as nil maps.
func decodeMenu(data []byte) ([]map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}

		return nil, ErrMenuSyntax.Wrap(positionError(data, err))
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrMenuSyntax.Wrap(
			errors.New("unexpected data after top-level value"))
	}

	arr, ok := v.([]any)
	if !ok {
		return nil, ErrMenuNotArray
	}

	entries := make([]map[string]any, len(arr))
	for i, e := range arr {
		entries[i], _ = e.(map[string]any)
	}

	return entries, nil
}

// parseEntry builds an item from one menu entry of the directory rel.
// self reports whether the entry is the directory's main entry.
func parseEntry(rel string, obj map[string]any) (it *Item, self bool, err error) {
	if obj == nil {
		return nil, false, ErrInvalidEntry.Wrap(
			errors.New("entry is not a JSON object"))
	}

	link, hasLink, err := optString(obj, KeyLink)
	if err != nil {
		return nil, false, err
	}

	self = !hasLink

	switch {
	case self && rel == "":
		link = ""
	case self:
		link = rel + "/"
	default:
		link = rel + "/" + link
	}

	nameDE, hasDE, err := optString(obj, KeyNameDE)
	if err != nil {
		return nil, false, err
	}

	nameEN, hasEN, err := optString(obj, KeyNameEN)
	if err != nil {
		return nil, false, err
	}

	// Only absent names are replaced; an empty string is a name.
	switch {
	case !hasDE && !hasEN:
		return nil, false, ErrMissingName.With(slog.String(KeyLink, link))
	case !hasDE:
		nameDE = nameEN
	case !hasEN:
		nameEN = nameDE
	}

	group, _, err := optString(obj, KeyGroup)
	if err != nil {
		return nil, false, err
	}

	order := entryOrder(obj[KeyOrder])

	var hidden bool

	switch v := obj[KeyHidden].(type) {
	case nil:
	case bool:
		hidden = v
	default:
		return nil, false, ErrInvalidEntry.With(
			slog.String("field", KeyHidden), slog.String("want", "boolean"))
	}

	props := make(map[string]string, len(obj))
	for k, v := range obj {
		props[k] = stringify(v)
	}

	return newItem(link, nameDE, nameEN, group, order, hidden, props), self, nil
}

// optString returns the string value of key in obj. A missing or null value
// yields ok == false without error.
func optString(obj map[string]any, key string) (s string, ok bool, err error) {
	switch v := obj[key].(type) {
	case nil:
		return "", false, nil
	case string:
		return v, true, nil
	default:
		return "", false, ErrInvalidEntry.With(
			slog.String("field", key), slog.String("want", "string"))
	}
}

// entryOrder interprets the order field of an entry. Numbers are truncated
// to integers and clamped to the range of int; any other non-null value is
// hashed with [OrderHash].
func entryOrder(v any) int {
	switch v := v.(type) {
	case nil:
		return DefaultOrder
	case json.Number:
		if i, err := v.Int64(); err == nil && i >= math.MinInt && i <= math.MaxInt {
			return int(i)
		}

		// Out of range values parse as ±Inf with an error; both clamp below.
		f, _ := v.Float64()

		switch {
		case f >= math.MaxInt:
			return math.MaxInt
		case f <= math.MinInt:
			return math.MinInt
		}

		return int(math.Trunc(f))
	default:
		return OrderHash(stringify(v))
	}
}

// stringify renders a decoded JSON value as a property string. Strings are
// returned verbatim, null as the empty string, and everything else as
// compact JSON.
func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return ""
	}

	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
