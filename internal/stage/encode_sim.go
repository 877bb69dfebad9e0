package stage

import (
	"bytes"

	"github.com/coregx/revsub/internal/flagrec"
	"github.com/coregx/revsub/internal/matcher"
)

// Encode runs the encode simulator against one stage's (original,
// intermediate) pair, where intermediate = Forward(original, fwdStage) and
// backward is the stage's backward-direction matcher (keyed on the `to`
// strings, mapping to->from).
//
// The simulator scans intermediate left-to-right with backward exactly as
// a decoder would: same matcher, same per-decision cursor-advance rule
// (accept moves the cursor to the match end, reject moves it one byte past
// the match start), shared so encode and decode walk identical match
// sequences. Each candidate is decided in O(1) against original using a
// running delta instead of mutating a simulated buffer: every accepted
// revert shifts all later positions by len(repl)-len(match), and the
// cumulative sum of those shifts maps an intermediate position to the
// corresponding original position for as long as the walk only moves
// forward.
func Encode(original, intermediate []byte, backward *matcher.Stage, ctxBefore, ctxAfter int) []flagrec.Flag {
	var flags []flagrec.Flag

	cumulativeDelta := 0
	nextValidIntPos := 0
	cursor := 0

	for {
		m, ok := backward.Next(intermediate, cursor)
		if !ok {
			break
		}

		// A match lying inside a span already reverted by an earlier
		// accepted decision must not be revisited; revisiting would emit
		// a bit the decoder never asks for.
		if m.Start < nextValidIntPos {
			cursor = m.End
			continue
		}

		simPos := m.Start + cumulativeDelta
		repl, hasRepl := backward.Value(m.Key)

		bit := byte(0)
		if hasRepl && simPos >= 0 && simPos+len(repl) <= len(original) &&
			bytes.Equal(original[simPos:simPos+len(repl)], repl) {
			bit = 1
		}

		flags = append(flags, flagrec.New(bit, intermediate, m.Start, m.End, ctxBefore, ctxAfter))

		if bit == 1 {
			cumulativeDelta += len(repl) - (m.End - m.Start)
			nextValidIntPos = m.End
			cursor = m.End
		} else {
			cursor = m.Start + 1
		}
	}

	return flags
}
