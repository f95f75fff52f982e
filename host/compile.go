package host

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/quill-ui/quill-host/diag"
	"github.com/quill-ui/quill-host/engine"
	"github.com/quill-ui/quill-host/loader"
)

// CompileOption configures a single compile call.
type CompileOption func(*compileConfig)

type compileConfig struct {
	loader       loader.Loader
	includePaths []string
}

// WithImportCallbacks installs a resolve/load function pair as the import
// hook for this compile. The hook is installed only when BOTH functions are
// non-nil; with only one, the engine keeps its default file loading.
func WithImportCallbacks(resolve loader.ResolveFunc, load loader.LoadFunc) CompileOption {
	return func(c *compileConfig) {
		if resolve != nil && load != nil {
			c.loader = loader.Funcs(resolve, load)
		}
	}
}

// WithLoader installs a Loader as the import hook for this compile.
func WithLoader(l loader.Loader) CompileOption {
	return func(c *compileConfig) {
		c.loader = l
	}
}

// WithIncludePaths adds directories to the engine's default import search.
// Ignored when an import hook is installed.
func WithIncludePaths(paths ...string) CompileOption {
	return func(c *compileConfig) {
		c.includePaths = append(c.includePaths, paths...)
	}
}

// CompileFromString compiles source text into a runnable component. baseURL
// names the compilation unit and anchors relative imports.
//
// On compile failure the returned error is a *diag.Error carrying every
// diagnostic the engine reported. A single failed import or parse error fails
// the whole compile; there are no retries and no partial success.
func (h *Host) CompileFromString(ctx context.Context, source, baseURL string, opts ...CompileOption) (*CompiledComponent, error) {
	var cc compileConfig
	for _, opt := range opts {
		opt(&cc)
	}

	cfg := engine.CompilerConfiguration{
		Loader:       cc.loader,
		IncludePaths: cc.includePaths,
	}

	def, diags, err := h.eng.Compile(ctx, source, baseURL, cfg)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", baseURL, err)
	}

	if def == nil {
		h.log.Debug("compile failed",
			zap.String("base_url", baseURL),
			zap.Int("diagnostics", len(diags)))
		return nil, diag.NewError(diags)
	}

	for _, d := range diags {
		h.log.Warn("compile diagnostic",
			zap.String("severity", d.Severity.String()),
			zap.String("at", d.String()))
	}

	return &CompiledComponent{def: def}, nil
}
