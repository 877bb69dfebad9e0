// Package revsub implements a reversible string-substitution codec: a
// stack of pattern-conditioned byte replacements that can be undone
// byte-for-byte given the transformed output and a side-band flag stream
// recording the ambiguity decisions made during encoding.
//
// A Config describes one stage: an optional lookbehind/lookahead anchor
// and an ordered list of from/to replacement pairs. A Pipeline chains
// Configs; Encode applies them in listing order, Decode in reverse.
// Flag decisions flow through the github.com/coregx/revsub/flagstream
// package, which is deliberately pluggable: the reference backend stores
// one ASCII '0'/'1' byte per decision, but any sink/source pair (an
// entropy coder, a dynamically loaded module) can stand in its place.
package revsub
