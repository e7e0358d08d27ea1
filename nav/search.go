package nav

import "github.com/sahilm/fuzzy"

// Match is an item found by [Search].
type Match struct {
	Item  *Item
	Name  string // the name that matched
	Score int
	Index []int // byte offsets in Name of the matched characters
}

// candidates exposes every name of every item as a fuzzy.Source.
type candidates struct {
	items []*Item
	names []string
}

func newCandidates(s Items) candidates {
	var c candidates

	for it := range s.All() {
		c.items = append(c.items, it)
		c.names = append(c.names, it.NameDE)

		if it.NameEN != it.NameDE {
			c.items = append(c.items, it)
			c.names = append(c.names, it.NameEN)
		}
	}

	return c
}

func (c candidates) String(i int) string { return c.names[i] }
func (c candidates) Len() int            { return len(c.names) }

// Search fuzzy-matches pattern against the German and English names of s
// and all descendants. Each item appears at most once, with its best
// scoring name, ordered best match first. A limit <= 0 returns all matches.
func Search(s Items, pattern string, limit int) []Match {
	c := newCandidates(s)
	seen := make(map[*Item]bool)

	var found []Match

	for _, m := range fuzzy.FindFrom(pattern, c) {
		it := c.items[m.Index]
		if seen[it] {
			continue
		}

		seen[it] = true
		found = append(found, Match{
			Item:  it,
			Name:  m.Str,
			Score: m.Score,
			Index: m.MatchedIndexes,
		})

		if limit > 0 && len(found) == limit {
			break
		}
	}

	return found
}
