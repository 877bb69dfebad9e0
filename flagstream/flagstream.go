// Package flagstream implements the pluggable flag-stream sink/source
// abstraction: the only mutable shared resource a Pipeline run touches.
// The core never inspects a decision's advisory context; only the bit is
// authoritative.
package flagstream

import "io"

// Sink accepts decision bits as a Pipeline encodes, in reverse stage
// order. context/ctxOffset/ctxLen/matchLen are advisory metadata: an
// external entropy-coding backend may condition on them, the reference
// backend ignores them.
type Sink interface {
	WriteFlag(bit byte, context []byte, ctxOffset, ctxLen, matchLen int) error
	Close() error
}

// Source supplies decision bits as a Pipeline decodes. ReadFlag returns
// io.EOF once exhausted; that is not necessarily fatal, callers treat it
// as decision 0.
type Source interface {
	ReadFlag() (bit byte, err error)
	Close() error
}

// OpenMode selects the direction a backend is opened in.
type OpenMode int

const (
	ModeWrite OpenMode = iota
	ModeRead
)

var _ io.Closer = Sink(nil)
var _ io.Closer = Source(nil)
