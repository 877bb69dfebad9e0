package lossless

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coregx/revsub"
)

// cat->bat is lossy against "catbat": the greedy inverse of "batbat" is
// "catcat", which differs from the reference data.
func TestProbeClassifiesSelfCollidingPairLossy(t *testing.T) {
	p := revsub.Pipeline{{
		Pairs: []revsub.ReplacementPair{{From: []byte("cat"), To: []byte("bat")}},
	}}

	res, err := Probe([]byte("catbat"), p)
	require.NoError(t, err)
	require.Empty(t, res.Lossless)
	require.Len(t, res.Lossy, 1)
	require.Equal(t, []revsub.ReplacementPair{{From: []byte("cat"), To: []byte("bat")}}, res.Lossy[0].Pairs)
}

func TestProbeTrivialPairIsLossless(t *testing.T) {
	p := revsub.Pipeline{{
		Pairs: []revsub.ReplacementPair{{From: []byte("abc"), To: []byte("abc")}},
	}}

	res, err := Probe([]byte("xabcy"), p)
	require.NoError(t, err)
	require.Empty(t, res.Lossy)
	require.Len(t, res.Lossless, 1)
}

func TestResultWriteFiles(t *testing.T) {
	p := revsub.Pipeline{{
		Pairs: []revsub.ReplacementPair{
			{From: []byte("cat"), To: []byte("bat")},
			{From: []byte("abc"), To: []byte("xyz")},
		},
	}}

	res, err := Probe([]byte("catbat abc"), p)
	require.NoError(t, err)

	dir := t.TempDir()
	losslessPath := filepath.Join(dir, "lossless.cfg")
	lossyPath := filepath.Join(dir, "lossy.cfg")
	require.NoError(t, res.WriteFiles(losslessPath, lossyPath))

	gotLossless, err := revsub.ParseConfigPath(losslessPath)
	require.NoError(t, err)
	require.Len(t, gotLossless, 1)
	require.Equal(t, "abc", string(gotLossless[0].Pairs[0].From))

	gotLossy, err := revsub.ParseConfigPath(lossyPath)
	require.NoError(t, err)
	require.Len(t, gotLossy, 1)
	require.Equal(t, "cat", string(gotLossy[0].Pairs[0].From))
}

func TestProbeGenuinelyLosslessPair(t *testing.T) {
	p := revsub.Pipeline{{
		Pairs: []revsub.ReplacementPair{{From: []byte("abc"), To: []byte("xyz")}},
	}}

	res, err := Probe([]byte("zzabcqq"), p)
	require.NoError(t, err)
	// "xyz" never occurs in the data except as the image of "abc", so the
	// greedy inverse recovers it byte-for-byte.
	require.Len(t, res.Lossless, 1)
	require.Empty(t, res.Lossy)
}
