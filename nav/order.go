package nav

import "strings"

// DefaultOrder is the order of an entry that has no order field.
const DefaultOrder = 9999

// Order hash parameters. Five characters, each in one of 43 classes, are
// read as the digits of a base-43 number added to hashOffset, so every hash
// sorts after any explicit order below 10000.
const (
	hashOffset = 10000
	hashWidth  = 5
	hashRadix  = 43
)

// OrderHash maps a non-numeric order hint to an integer >= 10000 such that
// lexicographically earlier strings (compared case-insensitively) map to
// smaller values.
//
// Only the first five characters are considered and only spaces, ASCII
// digits and letters, and the German letters ä, ö, ü and ß are distinguished;
// everything else shares one code. Distinct strings may therefore collide,
// which is accepted: the mapping must stay fixed so that output is stable
// between runs.
func OrderHash(s string) int {
	r := []rune(strings.ToLower(s))
	hash := hashOffset
	weight := 1

	for range hashWidth - 1 {
		weight *= hashRadix
	}

	for i := range hashWidth {
		if i < len(r) {
			hash += hashCode(r[i]) * weight
		}

		weight /= hashRadix
	}

	return hash
}

// hashCode returns the character class of a lowercase rune:
// space 0, digits 1-10, letters 11-36, ä ö ü ß 38-41, anything else 42.
func hashCode(c rune) int {
	switch {
	case c == ' ':
		return 0
	case c >= '0' && c <= '9':
		return int(c-'0') + 1
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 11
	case c == 'ä':
		return 38
	case c == 'ö':
		return 39
	case c == 'ü':
		return 40
	case c == 'ß':
		return 41
	default:
		return hashRadix - 1
	}
}
