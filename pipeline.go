package revsub

import (
	"github.com/coregx/revsub/flagstream"
	"github.com/coregx/revsub/internal/flagrec"
	"github.com/coregx/revsub/internal/stage"
)

// CompiledPipeline is a Pipeline with every stage already compiled, so
// repeated Encode/Decode calls do not recompile the same regex fragments.
type CompiledPipeline struct {
	stages []*compiledStage
}

// Compile compiles every Config in p, in listing order. An error from any
// stage aborts compilation of the rest.
func (p Pipeline) Compile() (*CompiledPipeline, error) {
	stages := make([]*compiledStage, 0, len(p))
	for _, cfg := range p {
		cs, err := compile(cfg)
		if err != nil {
			return nil, err
		}
		stages = append(stages, cs)
	}
	return &CompiledPipeline{stages: stages}, nil
}

// Encode runs every stage of the pipeline forward in listing order, then
// emits each stage's flags to sink in reverse stage order, so a
// reverse-order Decode consumes them as they arrive.
func (cp *CompiledPipeline) Encode(input []byte, sink flagstream.Sink) ([]byte, error) {
	current := input
	perStage := make([][]flagrec.Flag, len(cp.stages))

	for i, cs := range cp.stages {
		next := stage.Forward(current, cs.forward)
		perStage[i] = stage.Encode(current, next, cs.backward, cs.cfg.contextBefore(), cs.cfg.contextAfter())
		current = next
	}

	for i := len(cp.stages) - 1; i >= 0; i-- {
		for _, f := range perStage[i] {
			if err := sink.WriteFlag(f.Bit, f.Context, f.CtxOffset, f.CtxLen, f.MatchLen); err != nil {
				return nil, err
			}
		}
	}

	return current, nil
}

// DecodeResult is the outcome of decoding a transformed byte string:
// Data is the reconstructed bytes, and Truncated reports whether the flag
// source ran out of bits before every stage's candidates were decided.
// A truncated decode is not an error, but the reconstruction is no longer
// guaranteed faithful.
type DecodeResult struct {
	Data      []byte
	Truncated bool
}

// Decode runs every stage of the pipeline backward in reverse listing
// order, consuming bits from source as it encounters each stage's
// candidates.
func (cp *CompiledPipeline) Decode(transformed []byte, source flagstream.Source) (DecodeResult, error) {
	current := transformed
	truncated := false

	for i := len(cp.stages) - 1; i >= 0; i-- {
		res, err := stage.Decode(current, cp.stages[i].backward, source)
		if err != nil {
			return DecodeResult{}, err
		}
		current = res.Data
		truncated = truncated || res.Truncated
	}

	return DecodeResult{Data: current, Truncated: truncated}, nil
}

// Encode compiles p and runs Encode once. Callers driving many inputs
// through the same Pipeline should call Compile themselves and reuse the
// result instead of paying the compilation cost per call.
func (p Pipeline) Encode(input []byte, sink flagstream.Sink) ([]byte, error) {
	cp, err := p.Compile()
	if err != nil {
		return nil, err
	}
	return cp.Encode(input, sink)
}

// Decode compiles p and runs Decode once. See Encode's note on reuse.
func (p Pipeline) Decode(transformed []byte, source flagstream.Source) (DecodeResult, error) {
	cp, err := p.Compile()
	if err != nil {
		return DecodeResult{}, err
	}
	return cp.Decode(transformed, source)
}
