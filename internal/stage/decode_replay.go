package stage

import (
	"bytes"
	"errors"
	"io"

	"github.com/coregx/revsub/flagstream"
	"github.com/coregx/revsub/internal/matcher"
)

// Result is the outcome of one stage's Decode: the reconstructed bytes,
// plus whether the flag source ran dry before every candidate had a
// decision.
type Result struct {
	Data      []byte
	Truncated bool
}

// Decode reconstructs a stage's original input from its transformed bytes
// (data) by walking data with the backward-direction matcher and consuming
// one bit per candidate from bits. bit==1 means the match was a genuine
// forward replacement and gets reverted to its `from` value; bit==0 means
// it is coincidental literal text and is copied through unchanged.
//
// The candidate walk uses the same cursor-advance rule as the encode
// simulator (Encode in encode_sim.go): accepting a match resumes the scan at
// its end, rejecting it resumes one byte past its start so that matches
// nested inside a rejected span are still found. Both walks see the same
// bytes (data here, intermediate there) with the same pattern, so they
// produce identical match sequences, so the decoder never has to guess
// which match a given bit belongs to.
//
// A flag source running out of bits mid-walk is not fatal: the remaining
// candidates are treated as decision 0 and Truncated is set, but Decode
// still returns a well-formed (if no longer guaranteed faithful) result.
// Any other error from bits is fatal and returned as-is.
func Decode(data []byte, backward *matcher.Stage, bits flagstream.Source) (Result, error) {
	var out bytes.Buffer
	out.Grow(len(data))

	lastEnd := 0
	nextValidPos := 0
	cursor := 0
	truncated := false

	for {
		m, ok := backward.Next(data, cursor)
		if !ok {
			break
		}

		if m.Start < nextValidPos {
			cursor = m.End
			continue
		}

		bit, err := bits.ReadFlag()
		switch {
		case errors.Is(err, io.EOF):
			truncated = true
			bit = 0
		case err != nil:
			return Result{}, err
		}

		if bit == 1 {
			repl, _ := backward.Value(m.Key)
			out.Write(data[lastEnd:m.Start])
			out.Write(repl)
			lastEnd = m.End
			nextValidPos = m.End
			cursor = m.End
		} else {
			cursor = m.Start + 1
		}
	}

	out.Write(data[lastEnd:])
	return Result{Data: out.Bytes(), Truncated: truncated}, nil
}
