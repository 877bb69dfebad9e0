// Package flagrec defines the Flag record shared by the encode simulator,
// the decode replay, and the public flagstream package.
package flagrec

// Flag is one per-match reversibility decision: Bit records whether the
// inverse match corresponds to a genuine prior forward replacement, and
// Context/CtxOffset/CtxLen/MatchLen are advisory metadata for an external
// entropy model. The bit alone is authoritative.
type Flag struct {
	Bit       byte // 0 or 1
	Context   []byte
	CtxOffset int
	CtxLen    int
	MatchLen  int
}

// BuildContext slices the advisory context window around a match
// [matchStart, matchEnd) in data: up to ctxBefore bytes of left context,
// the matched bytes themselves, and up to ctxAfter bytes of right context,
// truncated (never padded) at the string ends.
func BuildContext(data []byte, matchStart, matchEnd, ctxBefore, ctxAfter int) (context []byte, ctxOffset int) {
	lo := matchStart - ctxBefore
	if lo < 0 {
		lo = 0
	}
	hi := matchEnd + ctxAfter
	if hi > len(data) {
		hi = len(data)
	}
	return data[lo:hi], matchStart - lo
}

// New builds a Flag for a match at data[matchStart:matchEnd] with the
// decision bit, using BuildContext for the advisory window.
func New(bit byte, data []byte, matchStart, matchEnd, ctxBefore, ctxAfter int) Flag {
	context, ctxOffset := BuildContext(data, matchStart, matchEnd, ctxBefore, ctxAfter)
	return Flag{
		Bit:       bit,
		Context:   context,
		CtxOffset: ctxOffset,
		CtxLen:    len(context),
		MatchLen:  matchEnd - matchStart,
	}
}
