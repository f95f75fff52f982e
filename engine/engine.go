package engine

import (
	"context"

	"github.com/quill-ui/quill-host/diag"
	"github.com/quill-ui/quill-host/loader"
)

// CompilerConfiguration carries the compile options the engine understands.
// The zero value compiles with the engine's default behavior.
type CompilerConfiguration struct {
	// Loader, when non-nil, replaces the engine's default file loading for
	// cross-file imports.
	Loader loader.Loader

	// IncludePaths are extra directories the engine's default resolution
	// searches. Ignored when Loader is set.
	IncludePaths []string
}

// Engine is the boundary to the Quill compiler/interpreter.
type Engine interface {
	// Compile builds a component from source text. baseURL names the
	// compilation unit and anchors relative imports.
	//
	// On success the definition is non-nil and diags holds any warnings.
	// When the source does not compile, the definition is nil and diags
	// holds at least one error-severity record. A non-nil error reports an
	// engine-level failure (trap, marshaling), not a source problem.
	Compile(ctx context.Context, source, baseURL string, cfg CompilerConfiguration) (ComponentDefinition, diag.List, error)

	// RegisterFontFromMemory adds a font to the engine's process-wide font
	// registry. The engine validates the bytes; its error is returned as-is.
	RegisterFontFromMemory(data []byte) error

	// Close releases the engine. Definitions created by this engine are
	// invalid afterwards.
	Close(ctx context.Context) error
}

// ComponentDefinition is the opaque, engine-produced artifact representing a
// compiled, runnable component. It stays valid until Close or until the
// engine that produced it is closed.
type ComponentDefinition interface {
	// Name returns the engine's name for the root component.
	Name() string

	// CreateWithSurface instantiates the component bound to the named
	// rendering surface.
	CreateWithSurface(ctx context.Context, surfaceID string) (ComponentInstance, error)

	// Close releases the engine-side handle.
	Close() error
}

// ComponentInstance is a component bound to a surface.
type ComponentInstance interface {
	// Run hands control to the engine's run loop. It blocks until the loop
	// exits; there is no further interaction with the instance afterwards.
	Run(ctx context.Context) error
}
