package enginewasm

import (
	"context"
	"errors"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	quillhost "github.com/quill-ui/quill-host"
	"github.com/quill-ui/quill-host/loader"
)

// instantiateHostModule registers the file-loader hook the engine imports.
// The handlers route to whatever loader the in-flight compile installed.
func (e *Engine) instantiateHostModule(ctx context.Context, r wazero.Runtime) error {
	_, err := r.NewHostModuleBuilder(hostLoaderModule).
		NewFunctionBuilder().
		WithFunc(e.resolveImport).
		Export(hostResolveImport).
		NewFunctionBuilder().
		WithFunc(e.loadImport).
		Export(hostLoadImport).
		Instantiate(ctx)
	return err
}

// resolveImport handles quill:host/loader.resolve_import. Returns the packed
// rewritten path, or 0 to keep the engine's own resolution.
func (e *Engine) resolveImport(ctx context.Context, mod api.Module, namePtr, nameLen uint32) uint64 {
	return resolveInto(e.loader, &wazeroMemory{mod.Memory()}, newGuestAllocator(ctx, mod), namePtr, nameLen, e.log)
}

// loadImport handles quill:host/loader.load_import. Returns a packed
// load-result buffer; 0 signals a host-side marshaling failure.
func (e *Engine) loadImport(ctx context.Context, mod api.Module, pathPtr, pathLen uint32) uint64 {
	return loadInto(ctx, e.loader, &wazeroMemory{mod.Memory()}, newGuestAllocator(ctx, mod), pathPtr, pathLen, e.log)
}

// resolveInto is the marshaling core of resolve_import, factored over the
// root interfaces so it is testable without a wasm instance.
func resolveInto(ld loader.Loader, mem quillhost.Memory, alloc quillhost.Allocator, namePtr, nameLen uint32, log *zap.Logger) uint64 {
	if ld == nil {
		return 0
	}
	name, err := readString(mem, namePtr, nameLen)
	if err != nil {
		log.Warn("resolve_import: bad name pointer", zap.Error(err))
		return 0
	}
	path, ok := ld.ResolvePath(name)
	if !ok {
		return 0
	}
	ptr, n, err := writeBytes(mem, alloc, []byte(path))
	if err != nil {
		log.Warn("resolve_import: write resolved path", zap.String("name", name), zap.Error(err))
		return 0
	}
	return pack(ptr, n)
}

// loadInto is the marshaling core of load_import. Loader failures are encoded
// into the result buffer so the engine reports them as import diagnostics;
// only marshaling failures return 0.
func loadInto(ctx context.Context, ld loader.Loader, mem quillhost.Memory, alloc quillhost.Allocator, pathPtr, pathLen uint32, log *zap.Logger) uint64 {
	var buf []byte
	path, err := readString(mem, pathPtr, pathLen)
	switch {
	case err != nil:
		log.Warn("load_import: bad path pointer", zap.Error(err))
		buf = appendLoadResult(nil, "", err)
	case ld == nil:
		buf = appendLoadResult(nil, "", errors.New("no import loader installed"))
	default:
		content, lerr := ld.LoadContent(ctx, path)
		if lerr != nil {
			log.Debug("load_import failed", zap.String("path", path), zap.Error(lerr))
		}
		buf = appendLoadResult(nil, content, lerr)
	}

	ptr, n, err := writeBytes(mem, alloc, buf)
	if err != nil {
		log.Warn("load_import: write result", zap.Error(err))
		return 0
	}
	return pack(ptr, n)
}
