package revsub

import (
	"errors"

	"github.com/coregx/revsub/internal/matcher"
)

// compiledStage is one Config compiled into its forward and backward
// matchers, ready to drive internal/stage's Forward/Encode/Decode walks.
type compiledStage struct {
	cfg      Config
	forward  *matcher.Stage
	backward *matcher.Stage
}

// compile builds both directions of a Config, failing with a CompileError
// if either the lookbehind/lookahead fragments or the fallback alternation
// pattern do not compile under coregex.
func compile(cfg Config) (*compiledStage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fwd, err := matcher.New(cfg.forwardKeys(), cfg.forwardMap(), cfg.Lookbehind, cfg.Lookahead)
	if err != nil {
		return nil, unwrapMatcherErr(err)
	}
	bwd, err := matcher.New(cfg.backwardKeys(), cfg.inverseMap(), cfg.Lookbehind, cfg.Lookahead)
	if err != nil {
		return nil, unwrapMatcherErr(err)
	}

	return &compiledStage{cfg: cfg, forward: fwd, backward: bwd}, nil
}

// unwrapMatcherErr re-wraps an internal/matcher.CompileError as this
// package's own CompileError, so callers never see an internal type in
// their error chain.
func unwrapMatcherErr(err error) error {
	var ce *matcher.CompileError
	if errors.As(err, &ce) {
		return &CompileError{Fragment: ce.Fragment, Err: ce.Err}
	}
	return &CompileError{Err: err}
}
