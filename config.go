package revsub

// DefaultContextBefore and DefaultContextAfter are the default width, in
// bytes, of the advisory context captured on either side of a match in a
// Flag record.
const (
	DefaultContextBefore = 32
	DefaultContextAfter  = 32
)

// ReplacementPair is one `from -> to` substitution rule. Both From and To
// must be non-empty.
type ReplacementPair struct {
	From []byte
	To   []byte
}

// Config is one stage of a Pipeline: an optional lookbehind/lookahead
// anchor (regex fragments, inserted verbatim inside `(?<= … )`/`(?= … )`)
// plus an ordered sequence of replacement pairs.
//
// ContextBefore/ContextAfter override the default advisory context width
// captured in Flag records for matches produced by this config; zero means
// "use the package default" (DefaultContextBefore/DefaultContextAfter).
type Config struct {
	Name          string
	Lookbehind    string
	Lookahead     string
	Pairs         []ReplacementPair
	ContextBefore int
	ContextAfter  int
}

// Pipeline is an ordered sequence of Configs, applied in listing order on
// encode and in reverse order on decode.
type Pipeline []Config

func (c *Config) contextBefore() int {
	if c.ContextBefore > 0 {
		return c.ContextBefore
	}
	return DefaultContextBefore
}

func (c *Config) contextAfter() int {
	if c.ContextAfter > 0 {
		return c.ContextAfter
	}
	return DefaultContextAfter
}

// Validate checks that a Config can be compiled into a stage: a non-empty
// pair set, and non-empty From/To byte strings in every pair.
func (c *Config) Validate() error {
	if len(c.Pairs) == 0 {
		return &EmptyConfigError{Name: c.Name}
	}
	for i, p := range c.Pairs {
		if len(p.From) == 0 || len(p.To) == 0 {
			return &ParseError{
				Line: i,
				Msg:  "replacement pair has an empty From or To",
			}
		}
	}
	return nil
}

// forwardMap builds the from->to map for a Config. Keys are unique within a
// config; if a `from` repeats, the last pair wins.
func (c *Config) forwardMap() map[string][]byte {
	m := make(map[string][]byte, len(c.Pairs))
	for _, p := range c.Pairs {
		m[string(p.From)] = p.To
	}
	return m
}

// inverseMap builds the to->from map for a Config. If two pairs share a
// `to`, the first occurrence wins; later pairs sharing that `to` are
// unreachable in the inverse.
func (c *Config) inverseMap() map[string][]byte {
	m := make(map[string][]byte, len(c.Pairs))
	for _, p := range c.Pairs {
		key := string(p.To)
		if _, exists := m[key]; exists {
			continue
		}
		m[key] = p.From
	}
	return m
}

// forwardKeys returns the distinct `from` byte strings of a Config, in
// pair order (duplicates collapse to their final forwardMap entry, but the
// key set itself is still whatever is distinct).
func (c *Config) forwardKeys() [][]byte {
	seen := make(map[string]bool, len(c.Pairs))
	keys := make([][]byte, 0, len(c.Pairs))
	for _, p := range c.Pairs {
		k := string(p.From)
		if seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, p.From)
	}
	return keys
}

// backwardKeys returns the distinct `to` byte strings of a Config, in pair
// order.
func (c *Config) backwardKeys() [][]byte {
	seen := make(map[string]bool, len(c.Pairs))
	keys := make([][]byte, 0, len(c.Pairs))
	for _, p := range c.Pairs {
		k := string(p.To)
		if seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, p.To)
	}
	return keys
}
