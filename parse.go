package revsub

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/coregx/revsub/internal/escape"
)

// ParseConfig parses a single-config text blob: line 0 is the lookbehind
// fragment, line 1 is the lookahead fragment, and subsequent tab-containing
// lines are `from\tto` pairs (escape-decoded). Lines without a tab are
// comments and are skipped. Only the first sub-config in data is returned;
// use ParseMultiConfig for files containing more than one.
func ParseConfig(data []byte) (Config, error) {
	configs, err := ParseMultiConfig(data)
	if err != nil {
		return Config{}, err
	}
	if len(configs) == 0 {
		return Config{}, &EmptyConfigError{}
	}
	return configs[0], nil
}

// ParseMultiConfig parses a multi-config text blob: an empty line after at
// least one pair terminates the current config and starts a new one at
// "line 0". Configs with zero pairs are discarded. CRLF is normalized to LF
// before scanning.
func ParseMultiConfig(data []byte) ([]Config, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(text, "\n")

	var configs []Config
	cur := Config{}
	lineInCur := 0 // 0 = expecting lookbehind, 1 = expecting lookahead, 2+ = pairs

	flush := func() {
		if len(cur.Pairs) > 0 {
			configs = append(configs, cur)
		}
		cur = Config{}
		lineInCur = 0
	}

	for i, line := range lines {
		if line == "" && lineInCur >= 2 {
			// A blank line only terminates a sub-config once it has
			// collected at least one pair; before that it is skipped and
			// the current lookbehind/lookahead stay in effect.
			if len(cur.Pairs) > 0 {
				flush()
			}
			continue
		}
		switch lineInCur {
		case 0:
			cur.Lookbehind = line
			lineInCur++
		case 1:
			cur.Lookahead = line
			lineInCur++
		default:
			tab := strings.IndexByte(line, '\t')
			if tab < 0 {
				// Comment line; does not advance past the pair-parsing state.
				continue
			}
			from := escape.Decode(line[:tab])
			to := escape.Decode(line[tab+1:])
			if len(from) == 0 || len(to) == 0 {
				return nil, &ParseError{Line: i + 1, Msg: "replacement pair has an empty From or To"}
			}
			cur.Pairs = append(cur.Pairs, ReplacementPair{From: from, To: to})
		}
	}
	flush()
	return configs, nil
}

// ParseConfigPath reads and parses a config file, or, when path begins
// with '@', a list file: one config path per line, blanks and surrounding
// whitespace trimmed, each parsed as a multi-config and concatenated in
// listing order.
func ParseConfigPath(path string) ([]Config, error) {
	if strings.HasPrefix(path, "@") {
		return parseListFile(path[1:])
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Path: path, Op: "read config", Err: err}
	}
	configs, err := ParseMultiConfig(data)
	if err != nil {
		return nil, err
	}
	for i := range configs {
		configs[i].Name = fmt.Sprintf("%s#%d", path, i)
	}
	return configs, nil
}

func parseListFile(path string) ([]Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Op: "open list file", Err: err}
	}
	defer f.Close()

	var all []Config
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		entry := strings.TrimSpace(scanner.Text())
		if entry == "" {
			continue
		}
		configs, err := ParseConfigPath(entry)
		if err != nil {
			return nil, fmt.Errorf("revsub: list file %s: %w", path, err)
		}
		all = append(all, configs...)
	}
	if err := scanner.Err(); err != nil {
		return nil, &IOError{Path: path, Op: "read list file", Err: err}
	}
	return all, nil
}
