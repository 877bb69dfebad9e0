package revsub_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coregx/revsub"
)

func TestParseConfigSinglePair(t *testing.T) {
	cfg, err := revsub.ParseConfig([]byte("\\d\n\\d\nfoo\tbar\n"))
	require.NoError(t, err)
	require.Equal(t, `\d`, cfg.Lookbehind)
	require.Equal(t, `\d`, cfg.Lookahead)
	require.Equal(t, []revsub.ReplacementPair{{From: []byte("foo"), To: []byte("bar")}}, cfg.Pairs)
}

func TestParseConfigEscapes(t *testing.T) {
	cfg, err := revsub.ParseConfig([]byte("\n\n\\x41\\tB\tC\\n\n"))
	require.NoError(t, err)
	require.Equal(t, []byte("A\tB"), cfg.Pairs[0].From)
	require.Equal(t, []byte("C\n"), cfg.Pairs[0].To)
}

func TestParseConfigSkipsCommentLines(t *testing.T) {
	cfg, err := revsub.ParseConfig([]byte("\n\n# a comment, no tab\nfoo\tbar\n"))
	require.NoError(t, err)
	require.Len(t, cfg.Pairs, 1)
	require.Equal(t, "foo", string(cfg.Pairs[0].From))
}

func TestParseConfigCRLFNormalized(t *testing.T) {
	cfg, err := revsub.ParseConfig([]byte("\r\n\r\nfoo\tbar\r\n"))
	require.NoError(t, err)
	require.Equal(t, "", cfg.Lookbehind)
	require.Equal(t, "", cfg.Lookahead)
	require.Len(t, cfg.Pairs, 1)
}

// An empty line after at least one pair terminates the current config.
func TestParseMultiConfigSplitsOnEmptyLine(t *testing.T) {
	data := []byte("\n\nfoo\tbar\n\nlb2\nla2\nbaz\tqux\n")
	configs, err := revsub.ParseMultiConfig(data)
	require.NoError(t, err)
	require.Len(t, configs, 2)

	require.Equal(t, "", configs[0].Lookbehind)
	require.Equal(t, []revsub.ReplacementPair{{From: []byte("foo"), To: []byte("bar")}}, configs[0].Pairs)

	require.Equal(t, "lb2", configs[1].Lookbehind)
	require.Equal(t, "la2", configs[1].Lookahead)
	require.Equal(t, []revsub.ReplacementPair{{From: []byte("baz"), To: []byte("qux")}}, configs[1].Pairs)
}

// A blank line before the current sub-config has collected any pair does
// not terminate it: the lookbehind/lookahead stay in effect, and the next
// tab-containing line still attaches to them as a pair.
func TestParseMultiConfigBlankLineBeforeFirstPair(t *testing.T) {
	configs, err := revsub.ParseMultiConfig([]byte("lb\nla\n\nx\ty\n"))
	require.NoError(t, err)
	require.Len(t, configs, 1)
	require.Equal(t, "lb", configs[0].Lookbehind)
	require.Equal(t, "la", configs[0].Lookahead)
	require.Equal(t, []revsub.ReplacementPair{{From: []byte("x"), To: []byte("y")}}, configs[0].Pairs)
}

// Once a blank line has ended the first sub-config, non-tab lines become
// the next sub-config's lookbehind/lookahead, and a sub-config that never
// collects a pair is discarded.
func TestParseMultiConfigDiscardsEmptySubConfigs(t *testing.T) {
	data := []byte("\n\nfoo\tbar\n\nlb2\nla2\n")
	configs, err := revsub.ParseMultiConfig(data)
	require.NoError(t, err)
	require.Len(t, configs, 1)
	require.Equal(t, "foo", string(configs[0].Pairs[0].From))
}

func TestParseMultiConfigEmptyInputYieldsNoConfigs(t *testing.T) {
	configs, err := revsub.ParseMultiConfig(nil)
	require.NoError(t, err)
	require.Empty(t, configs)
}

func TestParseConfigPathReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.cfg")
	require.NoError(t, os.WriteFile(path, []byte("\n\nfoo\tbar\n"), 0o644))

	configs, err := revsub.ParseConfigPath(path)
	require.NoError(t, err)
	require.Len(t, configs, 1)
	require.Equal(t, "foo", string(configs[0].Pairs[0].From))
}

// An @-prefixed path names a list file: one config path per line,
// blanks/whitespace trimmed, concatenated in listing order.
func TestParseConfigPathListFile(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.cfg")
	second := filepath.Join(dir, "second.cfg")
	require.NoError(t, os.WriteFile(first, []byte("\n\nfoo\tbar\n"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("\n\nbaz\tqux\n"), 0o644))

	listPath := filepath.Join(dir, "list.txt")
	require.NoError(t, os.WriteFile(listPath, []byte("  "+first+"  \n\n"+second+"\n"), 0o644))

	configs, err := revsub.ParseConfigPath("@" + listPath)
	require.NoError(t, err)
	require.Len(t, configs, 2)
	require.Equal(t, "foo", string(configs[0].Pairs[0].From))
	require.Equal(t, "baz", string(configs[1].Pairs[0].From))
}

func TestParseConfigPathMissingFileIsIOError(t *testing.T) {
	_, err := revsub.ParseConfigPath(filepath.Join(t.TempDir(), "does-not-exist.cfg"))
	require.Error(t, err)
	var ioErr *revsub.IOError
	require.ErrorAs(t, err, &ioErr)
}

func TestConfigValidateRejectsEmptyPairs(t *testing.T) {
	cfg := revsub.Config{Pairs: []revsub.ReplacementPair{{From: nil, To: []byte("x")}}}
	err := cfg.Validate()
	require.Error(t, err)
	var parseErr *revsub.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestConfigValidateRejectsEmptyConfig(t *testing.T) {
	cfg := revsub.Config{}
	err := cfg.Validate()
	require.Error(t, err)
	var emptyErr *revsub.EmptyConfigError
	require.ErrorAs(t, err, &emptyErr)
}
