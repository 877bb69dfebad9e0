// Package lossless implements the losslessness probe: for a reference byte
// string, classify every replacement pair in a Pipeline as lossless or
// lossy by running a forced-greedy round-trip in isolation.
package lossless

import (
	"bytes"

	"github.com/coregx/revsub"
	"github.com/coregx/revsub/internal/matcher"
	"github.com/coregx/revsub/internal/stage"
)

// Result groups the lossy and lossless sub-configs the probe classified,
// each preserving its source config's lookbehind/lookahead and grouping.
type Result struct {
	Lossless revsub.Pipeline
	Lossy    revsub.Pipeline
}

// WriteFiles writes the two classifications as multi-config files.
func (r Result) WriteFiles(losslessPath, lossyPath string) error {
	if err := revsub.WriteConfigFile(losslessPath, r.Lossless); err != nil {
		return err
	}
	return revsub.WriteConfigFile(lossyPath, r.Lossy)
}

// Probe runs the classifier against reference data over every config in p.
// A pair whose From equals its To is trivially lossless and is never
// compiled. Other pairs are classified by: forward-substituting a
// single-pair config built from that pair over data, then greedily
// reverting every match the backward direction finds (forcing every
// decision to 1, the greedy inverse) and comparing the result to data
// byte-for-byte.
func Probe(data []byte, p revsub.Pipeline) (Result, error) {
	var res Result

	for _, cfg := range p {
		var losslessPairs, lossyPairs []revsub.ReplacementPair

		for _, pair := range cfg.Pairs {
			if bytes.Equal(pair.From, pair.To) {
				losslessPairs = append(losslessPairs, pair)
				continue
			}

			ok, err := isLossless(data, cfg.Lookbehind, cfg.Lookahead, pair)
			if err != nil {
				return Result{}, err
			}
			if ok {
				losslessPairs = append(losslessPairs, pair)
			} else {
				lossyPairs = append(lossyPairs, pair)
			}
		}

		if len(losslessPairs) > 0 {
			res.Lossless = append(res.Lossless, revsub.Config{
				Name:          cfg.Name,
				Lookbehind:    cfg.Lookbehind,
				Lookahead:     cfg.Lookahead,
				Pairs:         losslessPairs,
				ContextBefore: cfg.ContextBefore,
				ContextAfter:  cfg.ContextAfter,
			})
		}
		if len(lossyPairs) > 0 {
			res.Lossy = append(res.Lossy, revsub.Config{
				Name:          cfg.Name,
				Lookbehind:    cfg.Lookbehind,
				Lookahead:     cfg.Lookahead,
				Pairs:         lossyPairs,
				ContextBefore: cfg.ContextBefore,
				ContextAfter:  cfg.ContextAfter,
			})
		}
	}

	return res, nil
}

func isLossless(data []byte, lookbehind, lookahead string, pair revsub.ReplacementPair) (bool, error) {
	fwd, err := matcher.New([][]byte{pair.From}, map[string][]byte{string(pair.From): pair.To}, lookbehind, lookahead)
	if err != nil {
		return false, err
	}
	bwd, err := matcher.New([][]byte{pair.To}, map[string][]byte{string(pair.To): pair.From}, lookbehind, lookahead)
	if err != nil {
		return false, err
	}

	transformed := stage.Forward(data, fwd)
	restored := stage.Forward(transformed, bwd)

	return bytes.Equal(restored, data), nil
}
