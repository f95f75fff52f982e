// Package quillhost is the Go host binding for the Quill UI markup engine.
//
// The Quill engine (parser, import resolver, type checker, and component
// runtime for .quill markup) ships as a prebuilt WebAssembly artifact. This
// module marshals strings, callbacks, and diagnostics across that boundary
// and exposes a small host-facing API.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	quillhost/       Root package with core Memory and Allocator interfaces
//	├── host/        High-level binding: compile, run, font registration
//	├── engine/      Engine abstraction the binding is written against
//	├── enginewasm/  wazero-backed engine hosting the Quill wasm artifact
//	├── loader/      Import-resolution hook: resolve and load .quill imports
//	├── diag/        Structured compile diagnostics and aggregate errors
//	└── fontutil/    sfnt probing for registered fonts
//
// # Quick Start
//
// Compile a component and run it on a surface:
//
//	eng, err := enginewasm.New(ctx, engineWasm)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Close(ctx)
//
//	h := host.New(eng)
//	comp, err := h.CompileFromString(ctx, source, "app.quill")
//	if err != nil {
//	    var diags *diag.Error
//	    if errors.As(err, &diags) {
//	        for _, d := range diags.Diagnostics {
//	            fmt.Println(d)
//	        }
//	    }
//	    log.Fatal(err)
//	}
//	defer comp.Close()
//
//	if err := comp.Run(ctx, "main-surface"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Import Callbacks
//
// Hosts can intercept cross-file imports during compilation:
//
//	comp, err := h.CompileFromString(ctx, source, baseURL,
//	    host.WithImportCallbacks(
//	        func(name string) (string, bool) { return rewrite(name) },
//	        func(ctx context.Context, path string) (string, error) {
//	            return fetchSource(ctx, path)
//	        },
//	    ))
//
// Both callbacks must be supplied; with only one, the engine's default file
// loading is used.
//
// # Thread Safety
//
// Host and the engine backends are safe for concurrent use. A single
// enginewasm.Engine serializes compiles internally; its callbacks run on the
// compiling goroutine.
package quillhost
