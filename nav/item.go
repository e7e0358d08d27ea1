package nav

import (
	"cmp"
	"iter"
	"log/slog"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// Property keys that always reflect the sanitized item fields.
const (
	KeyLink   = "link"
	KeyNameDE = "name_de"
	KeyNameEN = "name_en"
	KeyHidden = "hidden"
	KeyGroup  = "group"
	KeyOrder  = "order"
)

// Item is one navigation entry.
type Item struct {
	Link       string
	NameDE     string
	NameEN     string
	Group      string
	Order      int
	Hidden     bool
	Properties map[string]string // every field of the menu entry, stringified
	Children   Items
}

// NewItem returns an item with the given fields. A missing name in one
// language defaults to the name in the other; if both are empty the item is
// rejected with [ErrMissingName].
//
// The returned item owns a copy of props in which link, hidden, name_de and
// name_en are overwritten with the sanitized values.
//
// [ParseMenu] applies the defaults only to names that are absent from the
// entry, so entries given an empty name keep it.
func NewItem(
	link, nameDE, nameEN, group string,
	order int,
	hidden bool,
	props map[string]string,
) (*Item, error) {
	switch {
	case nameDE == "" && nameEN == "":
		return nil, ErrMissingName.With(slog.String(KeyLink, link))
	case nameDE == "":
		nameDE = nameEN
	case nameEN == "":
		nameEN = nameDE
	}

	return newItem(link, nameDE, nameEN, group, order, hidden, props), nil
}

// newItem builds an item from names that were already defaulted.
func newItem(
	link, nameDE, nameEN, group string,
	order int,
	hidden bool,
	props map[string]string,
) *Item {
	p := make(map[string]string, len(props)+4)
	for k, v := range props {
		p[k] = v
	}

	p[KeyLink] = link
	p[KeyHidden] = strconv.FormatBool(hidden)
	p[KeyNameDE] = nameDE
	p[KeyNameEN] = nameEN

	return &Item{
		Link:       link,
		NameDE:     nameDE,
		NameEN:     nameEN,
		Group:      group,
		Order:      order,
		Hidden:     hidden,
		Properties: p,
	}
}

// String returns the display name of the item.
func (it *Item) String() string { return it.NameDE }

// LogValue implements slog.LogValuer.
func (it *Item) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String(KeyNameDE, it.NameDE),
		slog.String(KeyLink, it.Link),
		slog.Int(KeyOrder, it.Order),
	)
}

// Compare orders items by ascending Order, then by NameDE compared
// byte-wise.
func Compare(a, b *Item) int {
	if c := cmp.Compare(a.Order, b.Order); c != 0 {
		return c
	}

	return strings.Compare(a.NameDE, b.NameDE)
}

// Items is a list of items kept sorted by [Compare]. Items that compare
// equal are all retained in insertion order.
type Items []*Item

// Insert adds items at their sorted positions, each after any existing
// items that compare equal to it.
func (s *Items) Insert(items ...*Item) {
	for _, it := range items {
		if it == nil {
			continue
		}

		i := sort.Search(len(*s), func(i int) bool {
			return Compare((*s)[i], it) > 0
		})
		*s = slices.Insert(*s, i, it)
	}
}

// All returns an iterator over every item in s and all of its descendants,
// depth-first in list order.
func (s Items) All() iter.Seq[*Item] {
	return func(yield func(*Item) bool) {
		s.walk(0, func(_ int, it *Item) bool { return yield(it) })
	}
}

// Depth returns an iterator like [Items.All] that also yields each item's
// depth, starting at zero for the items of s.
func (s Items) Depth() iter.Seq2[int, *Item] {
	return func(yield func(int, *Item) bool) {
		s.walk(0, yield)
	}
}

func (s Items) walk(depth int, yield func(int, *Item) bool) bool {
	for _, it := range s {
		if !yield(depth, it) || !it.Children.walk(depth+1, yield) {
			return false
		}
	}

	return true
}
