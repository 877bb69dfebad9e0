// Package patternbuild builds the alternation pattern used by a matcher
// stage: a length-descending, regex-escaped alternation over a set of
// literal keys, so that an RE2-class engine's leftmost-first alternative
// selection degenerates into leftmost-longest.
package patternbuild

import (
	"sort"
	"strings"
)

// metaChars are the regex metacharacters that must be backslash-escaped to
// appear literally inside an alternation branch.
const metaChars = `.^$*+?()[]{}\|`

// EscapeLiteral backslash-escapes any regex metacharacter in key so it can
// be embedded verbatim inside a larger pattern.
func EscapeLiteral(key []byte) string {
	out := make([]byte, 0, len(key)+4)
	for _, b := range key {
		if isMeta(b) {
			out = append(out, '\\')
		}
		out = append(out, b)
	}
	return string(out)
}

func isMeta(b byte) bool {
	for i := 0; i < len(metaChars); i++ {
		if metaChars[i] == b {
			return true
		}
	}
	return false
}

// SortKeysDescending returns a copy of keys sorted by byte length
// descending. Equal-length keys keep their original (insertion) order.
func SortKeysDescending(keys [][]byte) [][]byte {
	out := make([][]byte, len(keys))
	copy(out, keys)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i]) > len(out[j])
	})
	return out
}

// BuildAlternation builds the escaped, length-descending alternation body
// `ALT` for a key set (the part later wrapped in `(?<=LB)(ALT)(?=LA)`). It
// returns both the ordered key list (for feeding an Aho-Corasick builder in
// the same tie-break order) and the pattern string (used to validate the
// escaping compiles, and as the fallback engine's pattern when Aho-Corasick
// construction fails).
func BuildAlternation(keys [][]byte) (ordered [][]byte, pattern string) {
	ordered = SortKeysDescending(keys)
	if len(ordered) == 0 {
		return ordered, ""
	}
	parts := make([]string, len(ordered))
	for i, k := range ordered {
		parts[i] = EscapeLiteral(k)
	}
	return ordered, strings.Join(parts, "|")
}
