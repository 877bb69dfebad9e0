package revsub

import (
	"bytes"
	"os"

	"github.com/coregx/revsub/internal/escape"
)

// FormatConfigs renders configs as multi-config text: lookbehind and
// lookahead lines followed by one escape-encoded `from\tto` line per pair,
// with an empty line separating consecutive configs. Configs with zero
// pairs are omitted, so the output always parses back with
// ParseMultiConfig to an equivalent sequence.
func FormatConfigs(configs []Config) []byte {
	var buf bytes.Buffer
	first := true
	for _, cfg := range configs {
		if len(cfg.Pairs) == 0 {
			continue
		}
		if !first {
			buf.WriteByte('\n')
		}
		first = false

		buf.WriteString(cfg.Lookbehind)
		buf.WriteByte('\n')
		buf.WriteString(cfg.Lookahead)
		buf.WriteByte('\n')
		for _, p := range cfg.Pairs {
			buf.WriteString(escape.Encode(p.From))
			buf.WriteByte('\t')
			buf.WriteString(escape.Encode(p.To))
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}

// WriteConfigFile writes configs to path in multi-config format.
func WriteConfigFile(path string, configs []Config) error {
	if err := os.WriteFile(path, FormatConfigs(configs), 0o644); err != nil {
		return &IOError{Path: path, Op: "write config", Err: err}
	}
	return nil
}
