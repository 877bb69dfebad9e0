// Package stage implements the three byte-level walks of one Config stage:
// the forward substitution, the encode simulator that recovers per-match
// reversibility decisions, and the decode replay that consumes those
// decisions to reconstruct the stage's input.
package stage

import (
	"bytes"

	"github.com/coregx/revsub/internal/matcher"
)

// Forward applies fwd left to right over original, replacing every
// accepted match with its mapped value and copying the unmatched gaps
// through unchanged. No flags are produced here; ambiguity is resolved
// later, by the encode simulator, against the resulting transformed bytes.
func Forward(original []byte, fwd *matcher.Stage) []byte {
	var out bytes.Buffer
	out.Grow(len(original))

	cursor := 0
	for {
		m, ok := fwd.Next(original, cursor)
		if !ok {
			break
		}
		out.Write(original[cursor:m.Start])
		repl, _ := fwd.Value(m.Key)
		out.Write(repl)
		cursor = m.End
	}
	out.Write(original[cursor:])
	return out.Bytes()
}
