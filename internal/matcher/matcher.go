// Package matcher compiles one direction (forward or backward) of one
// Config stage into an executable scanner: a literal multi-pattern body
// engine plus a pair of anchored lookbehind/lookahead checks, composed to
// reproduce the semantics of a single lookaround pattern
// `(?<=LB)(ALT)(?=LA)` on an engine without native lookaround support.
package matcher

import (
	"fmt"
	"sync/atomic"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/coregex"
	"github.com/coregx/revsub/internal/patternbuild"
)

// Match is one accepted, anchor-checked match of a Stage's key set.
type Match struct {
	Start, End int
	Key        []byte // the matched literal (a key of the Stage's value map)
}

// Stats counts how a Stage resolved its candidate matches. Useful for
// debugging and tuning, never consulted for correctness.
type Stats struct {
	AhoCorasickSearches uint64
	FallbackSearches    uint64
	AnchorRejections    uint64
}

// Stage is a compiled direction (from->to or to->from) of one Config: a set
// of literal keys mapped to their replacement, an Aho-Corasick automaton (or
// a coregex fallback) to find candidate occurrences, and the lookbehind/
// lookahead anchor checks that confirm or reject each candidate.
type Stage struct {
	values map[string][]byte

	automaton *ahocorasick.Automaton
	fallback  *coregex.Regex // used only if automaton build fails

	lookbehind string
	lookahead  string
	lbAnchor   *coregex.Regex // compiled as "(?:LB)$"
	laAnchor   *coregex.Regex // compiled as "^(?:LA)"

	stats Stats
}

// New compiles a Stage from a key->value map and a pair of lookbehind/
// lookahead regex fragments. keys must be exactly the key set of values
// (callers pass the distinct From or To byte strings of a Config, in pair
// order, matching the source config's len(Pairs) > 0 invariant having
// already been checked by Config.Validate).
func New(keys [][]byte, values map[string][]byte, lookbehind, lookahead string) (*Stage, error) {
	ordered, altPattern := patternbuild.BuildAlternation(keys)

	lbAnchor, err := coregex.Compile(fmt.Sprintf("(?:%s)$", lookbehind))
	if err != nil {
		return nil, &CompileError{Fragment: lookbehind, Err: err}
	}
	laAnchor, err := coregex.Compile(fmt.Sprintf("^(?:%s)", lookahead))
	if err != nil {
		return nil, &CompileError{Fragment: lookahead, Err: err}
	}

	s := &Stage{
		values:     values,
		lookbehind: lookbehind,
		lookahead:  lookahead,
		lbAnchor:   lbAnchor,
		laAnchor:   laAnchor,
	}

	builder := ahocorasick.NewBuilder()
	for _, k := range ordered {
		builder.AddPattern(k)
	}
	automaton, buildErr := builder.Build()
	if buildErr == nil {
		s.automaton = automaton
		return s, nil
	}

	// When Aho-Corasick construction fails, fall back to a plain
	// alternation regex walked with repeated FindIndex calls.
	fallback, err := coregex.Compile(altPattern)
	if err != nil {
		return nil, &CompileError{Fragment: altPattern, Err: err}
	}
	s.fallback = fallback
	return s, nil
}

// Stats returns a snapshot of this Stage's search counters.
func (s *Stage) Stats() Stats {
	return Stats{
		AhoCorasickSearches: atomic.LoadUint64(&s.stats.AhoCorasickSearches),
		FallbackSearches:    atomic.LoadUint64(&s.stats.FallbackSearches),
		AnchorRejections:    atomic.LoadUint64(&s.stats.AnchorRejections),
	}
}

// Value returns the replacement bytes for a matched key (the stage's
// from->to, or to->from, mapping).
func (s *Stage) Value(key []byte) ([]byte, bool) {
	v, ok := s.values[string(key)]
	return v, ok
}

// Next finds the next accepted match in haystack at or after cursor:
// leftmost among the stage's key set, with the lookbehind fragment
// matching the bytes immediately preceding it and the lookahead fragment
// matching the bytes immediately following it. Candidates that fail either
// anchor are rejected and the search resumes one byte later, so progress is
// always guaranteed. Returns ok=false once no further candidate exists.
func (s *Stage) Next(haystack []byte, cursor int) (m Match, ok bool) {
	at := cursor
	for at <= len(haystack) {
		start, end, found := s.findBody(haystack, at)
		if !found {
			return Match{}, false
		}
		if s.checkLookbehind(haystack, start) && s.checkLookahead(haystack, end) {
			return Match{Start: start, End: end, Key: haystack[start:end]}, true
		}
		atomic.AddUint64(&s.stats.AnchorRejections, 1)
		at = start + 1
	}
	return Match{}, false
}

// findBody returns the next leftmost-longest body match (ignoring anchors)
// at or after at.
func (s *Stage) findBody(haystack []byte, at int) (start, end int, ok bool) {
	if at >= len(haystack) {
		return 0, 0, false
	}

	if s.automaton != nil {
		atomic.AddUint64(&s.stats.AhoCorasickSearches, 1)
		m := s.automaton.Find(haystack, at)
		if m == nil {
			return 0, 0, false
		}
		return m.Start, m.End, true
	}

	atomic.AddUint64(&s.stats.FallbackSearches, 1)
	loc := s.fallback.FindIndex(haystack[at:])
	if loc == nil {
		return 0, 0, false
	}
	return at + loc[0], at + loc[1], true
}

func (s *Stage) checkLookbehind(haystack []byte, pos int) bool {
	if s.lookbehind == "" {
		return true
	}
	return s.lbAnchor.Match(haystack[:pos])
}

func (s *Stage) checkLookahead(haystack []byte, pos int) bool {
	if s.lookahead == "" {
		return true
	}
	return s.laAnchor.Match(haystack[pos:])
}
