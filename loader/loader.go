package loader

import "context"

// Loader supplies imported .quill sources to the engine during compilation.
type Loader interface {
	// ResolvePath maps a referenced file name to the path the content should
	// be loaded from. Returning ok=false leaves the name unchanged and lets
	// the engine fall back to its default resolution.
	ResolvePath(name string) (path string, ok bool)

	// LoadContent produces the source text for a resolved path. The engine
	// treats any returned error as a failed import, which fails the whole
	// compile.
	LoadContent(ctx context.Context, path string) (string, error)
}

// ResolveFunc rewrites a referenced file name to a load path.
type ResolveFunc func(name string) (string, bool)

// LoadFunc loads the source text for a resolved path.
type LoadFunc func(ctx context.Context, path string) (string, error)

// Funcs adapts a resolve/load function pair into a Loader. Both functions
// must be non-nil.
func Funcs(resolve ResolveFunc, load LoadFunc) Loader {
	return &funcLoader{resolve: resolve, load: load}
}

type funcLoader struct {
	resolve ResolveFunc
	load    LoadFunc
}

func (f *funcLoader) ResolvePath(name string) (string, bool) {
	return f.resolve(name)
}

func (f *funcLoader) LoadContent(ctx context.Context, path string) (string, error) {
	return f.load(ctx, path)
}
