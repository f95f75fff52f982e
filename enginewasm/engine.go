package enginewasm

import (
	"context"
	"fmt"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	"github.com/quill-ui/quill-host/diag"
	qengine "github.com/quill-ui/quill-host/engine"
	"github.com/quill-ui/quill-host/loader"
)

// Engine hosts the Quill engine wasm artifact and implements qengine.Engine.
//
// The wasm instance is single-threaded: every entry point serializes on one
// mutex, and a Run loop holds the engine until it exits.
type Engine struct {
	log     *zap.Logger
	runtime wazero.Runtime
	mod     api.Module

	compileFn api.Function
	surfaceFn api.Function
	runFn     api.Function
	compFree  api.Function
	fontFn    api.Function

	mu sync.Mutex
	// loader is the import hook of the in-flight compile. Only ever read by
	// host functions invoked from inside that compile, on the same goroutine.
	loader loader.Loader
	closed bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger. Defaults to the package logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New instantiates the engine from its wasm binary. The artifact must export
// the quill_* ABI; WASI preview1 imports are provided for its libc.
func New(ctx context.Context, engineWasm []byte, opts ...Option) (*Engine, error) {
	e := &Engine{log: qengine.Logger()}
	for _, opt := range opts {
		opt(e)
	}

	r := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfig())
	e.runtime = r

	wasi_snapshot_preview1.MustInstantiate(ctx, r)

	if err := e.instantiateHostModule(ctx, r); err != nil {
		_ = r.Close(ctx)
		return nil, fmt.Errorf("instantiate host loader module: %w", err)
	}

	compiled, err := r.CompileModule(ctx, engineWasm)
	if err != nil {
		_ = r.Close(ctx)
		return nil, fmt.Errorf("compile engine module: %w", err)
	}

	mod, err := r.InstantiateModule(ctx, compiled,
		wazero.NewModuleConfig().WithName("quill-engine").WithStartFunctions())
	if err != nil {
		_ = r.Close(ctx)
		return nil, fmt.Errorf("instantiate engine module: %w", err)
	}
	e.mod = mod

	// Reactor-style artifacts initialize through _initialize, not _start.
	if initFn := mod.ExportedFunction("_initialize"); initFn != nil {
		if _, err := initFn.Call(ctx); err != nil {
			_ = r.Close(ctx)
			return nil, fmt.Errorf("engine _initialize: %w", err)
		}
	}

	lookup := func(name string) (api.Function, error) {
		fn := mod.ExportedFunction(name)
		if fn == nil {
			return nil, fmt.Errorf("engine does not export %s", name)
		}
		return fn, nil
	}
	for _, bind := range []struct {
		dst  *api.Function
		name string
	}{
		{&e.compileFn, abiCompile},
		{&e.surfaceFn, abiComponentSurface},
		{&e.runFn, abiInstanceRun},
		{&e.compFree, abiComponentFree},
		{&e.fontFn, abiRegisterFont},
	} {
		fn, err := lookup(bind.name)
		if err != nil {
			_ = r.Close(ctx)
			return nil, err
		}
		*bind.dst = fn
	}
	if _, err := lookup(abiAlloc); err != nil {
		_ = r.Close(ctx)
		return nil, err
	}

	e.log.Debug("engine instantiated", zap.Uint32("memory_bytes", mod.Memory().Size()))
	return e, nil
}

// Compile implements qengine.Engine.
func (e *Engine) Compile(ctx context.Context, source, baseURL string, cfg qengine.CompilerConfiguration) (qengine.ComponentDefinition, diag.List, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, nil, fmt.Errorf("engine is closed")
	}

	e.loader = cfg.Loader
	defer func() { e.loader = nil }()

	mem := &wazeroMemory{e.mod.Memory()}
	alloc := newGuestAllocator(ctx, e.mod)

	srcPtr, srcLen, err := writeBytes(mem, alloc, []byte(source))
	if err != nil {
		return nil, nil, fmt.Errorf("marshal source: %w", err)
	}
	defer alloc.Free(srcPtr, srcLen)

	basePtr, baseLen, err := writeBytes(mem, alloc, []byte(baseURL))
	if err != nil {
		return nil, nil, fmt.Errorf("marshal base url: %w", err)
	}
	defer alloc.Free(basePtr, baseLen)

	var incPtr, incLen uint32
	if len(cfg.IncludePaths) > 0 {
		incPtr, incLen, err = writeBytes(mem, alloc, appendIncludePaths(nil, cfg.IncludePaths))
		if err != nil {
			return nil, nil, fmt.Errorf("marshal include paths: %w", err)
		}
		defer alloc.Free(incPtr, incLen)
	}

	var flags uint32
	if cfg.Loader != nil {
		flags |= flagCustomLoader
	}

	res, err := e.compileFn.Call(ctx,
		uint64(srcPtr), uint64(srcLen),
		uint64(basePtr), uint64(baseLen),
		uint64(incPtr), uint64(incLen),
		uint64(flags))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", abiCompile, err)
	}

	outPtr, outLen := unpack(res[0])
	buf, err := readBytes(mem, outPtr, outLen)
	alloc.Free(outPtr, outLen)
	if err != nil {
		return nil, nil, fmt.Errorf("read compile result: %w", err)
	}

	result, err := decodeCompileResult(buf)
	if err != nil {
		return nil, nil, err
	}
	if !result.ok {
		return nil, result.diags, nil
	}

	e.log.Debug("compiled component",
		zap.String("name", result.name),
		zap.String("base_url", baseURL),
		zap.Int("warnings", len(result.diags)))
	return &definition{eng: e, handle: result.handle, name: result.name}, result.diags, nil
}

// RegisterFontFromMemory implements qengine.Engine. The engine's own error
// text is returned verbatim.
func (e *Engine) RegisterFontFromMemory(data []byte) error {
	ctx := context.Background()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return fmt.Errorf("engine is closed")
	}

	mem := &wazeroMemory{e.mod.Memory()}
	alloc := newGuestAllocator(ctx, e.mod)

	ptr, n, err := writeBytes(mem, alloc, data)
	if err != nil {
		return fmt.Errorf("marshal font data: %w", err)
	}
	defer alloc.Free(ptr, n)

	res, err := e.fontFn.Call(ctx, uint64(ptr), uint64(n))
	if err != nil {
		return fmt.Errorf("%s: %w", abiRegisterFont, err)
	}
	if res[0] == 0 {
		return nil
	}

	errPtr, errLen := unpack(res[0])
	msg, rerr := readBytes(mem, errPtr, errLen)
	alloc.Free(errPtr, errLen)
	if rerr != nil {
		return fmt.Errorf("engine rejected font (error unreadable: %v)", rerr)
	}
	return decodeRegisterFontResult(msg)
}

// Close implements qengine.Engine. All definitions become invalid.
func (e *Engine) Close(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	return e.runtime.Close(ctx)
}

var _ qengine.Engine = (*Engine)(nil)
