package revsub_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coregx/revsub"
)

func TestFormatConfigsRoundTrip(t *testing.T) {
	configs := []revsub.Config{
		{
			Lookbehind: `\d`,
			Lookahead:  `\d`,
			Pairs: []revsub.ReplacementPair{
				{From: []byte("foo"), To: []byte("bar")},
				{From: []byte("a\tb"), To: []byte{0x00, 0xff}},
			},
		},
		{
			Pairs: []revsub.ReplacementPair{{From: []byte("baz"), To: []byte("qux")}},
		},
	}

	text := revsub.FormatConfigs(configs)
	parsed, err := revsub.ParseMultiConfig(text)
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	require.Equal(t, configs[0].Lookbehind, parsed[0].Lookbehind)
	require.Equal(t, configs[0].Lookahead, parsed[0].Lookahead)
	require.Equal(t, configs[0].Pairs, parsed[0].Pairs)
	require.Equal(t, configs[1].Pairs, parsed[1].Pairs)
}

func TestFormatConfigsOmitsEmptyConfigs(t *testing.T) {
	configs := []revsub.Config{
		{Lookbehind: "x", Lookahead: "y"},
		{Pairs: []revsub.ReplacementPair{{From: []byte("a"), To: []byte("b")}}},
	}
	text := revsub.FormatConfigs(configs)
	require.Equal(t, "\n\na\tb\n", string(text))
}
