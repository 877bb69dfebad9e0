package flagstream

import (
	"fmt"
	"io"
	"plugin"
)

// pluginAPI is the dynamically loaded backend entry point:
// API(op, ctx, ofs, len, mlen int) int. op selects the operation:
//
//	op == -1: open.  ctx = path handle, ofs = 0 write / 1 read.
//	op == -2: close.
//	op == -3: read.  Returns 0, 1, or -1 (EOF).
//	op >= 0:  write bit (op != 0 => 1, else 0). ctx = advisory context
//	          handle, ofs = match offset within the context, len = context
//	          length, mlen = match length.
//
// Go has no portable way to pass a string through an (int, int, int, int,
// int) signature, so ctx carries an index into a process-wide table of
// pinned strings rather than a raw pointer; pluginStrings.put below does
// the pinning. This keeps the exported symbol's signature all-int while
// staying memory-safe.
type pluginAPI func(op, ctx, ofs, length, mlen int) int

const (
	opOpen  = -1
	opClose = -2
	opRead  = -3
)

var pluginStrings = newStringTable()

// ResolvePath recovers a path handed to a plugin's open op as ctx. Plugins
// are expected to import this package (Go plugins share the host's package
// instances for identical import paths) and call this from their own API
// implementation to turn ctx back into the path string passed to OpenWrite
// / OpenRead.
func ResolvePath(ctx int) (string, bool) {
	return pluginStrings.get(ctx)
}

// ResolveContext recovers the advisory context bytes handed to a plugin's
// write op as ctx. The handle is valid only for the duration of that API
// call; plugins that want to keep the context must copy it.
func ResolveContext(ctx int) ([]byte, bool) {
	s, ok := pluginStrings.get(ctx)
	if !ok {
		return nil, false
	}
	return []byte(s), true
}

// PluginBackend loads a .so built against this contract and exposes it as
// both a Sink and a Source; the caller opens it in the mode it will use.
type PluginBackend struct {
	api pluginAPI
}

// LoadPlugin opens a shared object exporting a symbol named "API" with the
// pluginAPI signature. The backend is not yet open for I/O; call OpenWrite
// or OpenRead next.
func LoadPlugin(soPath string) (*PluginBackend, error) {
	p, err := plugin.Open(soPath)
	if err != nil {
		return nil, &IOError{Path: soPath, Op: "plugin-open", Err: err}
	}
	sym, err := p.Lookup("API")
	if err != nil {
		return nil, &IOError{Path: soPath, Op: "plugin-lookup", Err: err}
	}
	api, ok := sym.(func(int, int, int, int, int) int)
	if !ok {
		return nil, &IOError{Path: soPath, Op: "plugin-lookup", Err: fmt.Errorf("API has wrong signature")}
	}
	return &PluginBackend{api: pluginAPI(api)}, nil
}

// OpenWrite calls the plugin's open(ctx=path, ofs=0) and returns a Sink.
func (b *PluginBackend) OpenWrite(path string) (Sink, error) {
	return b.open(path, ModeWrite)
}

// OpenRead calls the plugin's open(ctx=path, ofs=1) and returns a Source.
func (b *PluginBackend) OpenRead(path string) (Source, error) {
	return b.open(path, ModeRead)
}

func (b *PluginBackend) open(path string, mode OpenMode) (*pluginBackendHandle, error) {
	ctx := pluginStrings.put(path)
	if rc := b.api(opOpen, ctx, int(mode), 0, 0); rc != 0 {
		return nil, &IOError{Path: path, Op: "open", Err: fmt.Errorf("plugin returned %d", rc)}
	}
	return &pluginBackendHandle{api: b.api, path: path, ctx: ctx}, nil
}

// pluginBackendHandle implements both Sink and Source over one open
// plugin session; a given instance is used in only one direction,
// matching the open(mode) contract.
type pluginBackendHandle struct {
	api  pluginAPI
	path string
	ctx  int
}

func (h *pluginBackendHandle) WriteFlag(bit byte, context []byte, ctxOffset, ctxLen, matchLen int) error {
	op := 0
	if bit != 0 {
		op = 1
	}
	ctx := pluginStrings.put(string(context))
	defer pluginStrings.delete(ctx)
	if rc := h.api(op, ctx, ctxOffset, ctxLen, matchLen); rc != 0 {
		return &IOError{Path: h.path, Op: "write", Err: fmt.Errorf("plugin returned %d", rc)}
	}
	return nil
}

func (h *pluginBackendHandle) ReadFlag() (byte, error) {
	rc := h.api(opRead, 0, 0, 0, 0)
	switch rc {
	case 0:
		return 0, nil
	case 1:
		return 1, nil
	case -1:
		return 0, io.EOF
	default:
		return 0, &IOError{Path: h.path, Op: "read", Err: fmt.Errorf("plugin returned %d", rc)}
	}
}

func (h *pluginBackendHandle) Close() error {
	pluginStrings.delete(h.ctx)
	if rc := h.api(opClose, 0, 0, 0, 0); rc != 0 {
		return &IOError{Path: h.path, Op: "close", Err: fmt.Errorf("plugin returned %d", rc)}
	}
	return nil
}
