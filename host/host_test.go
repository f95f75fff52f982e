package host

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/quill-ui/quill-host/diag"
	"github.com/quill-ui/quill-host/engine"
	"github.com/quill-ui/quill-host/loader"
)

// fakeEngine scripts engine behavior and records what the binding handed it.
type fakeEngine struct {
	// captured
	source  string
	baseURL string
	cfg     engine.CompilerConfiguration
	fonts   [][]byte

	// scripted
	diags      diag.List
	fail       bool
	compileErr error
	fontErr    error

	// drive the configured loader during Compile, simulating engine imports
	importNames []string
	gotPaths    []string
	gotContent  []string
	gotLoadErrs []error
}

func (f *fakeEngine) Compile(ctx context.Context, source, baseURL string, cfg engine.CompilerConfiguration) (engine.ComponentDefinition, diag.List, error) {
	f.source, f.baseURL, f.cfg = source, baseURL, cfg
	if f.compileErr != nil {
		return nil, nil, f.compileErr
	}

	if cfg.Loader != nil {
		for _, name := range f.importNames {
			path, ok := cfg.Loader.ResolvePath(name)
			if !ok {
				path = name
			}
			f.gotPaths = append(f.gotPaths, path)
			content, err := cfg.Loader.LoadContent(ctx, path)
			f.gotContent = append(f.gotContent, content)
			f.gotLoadErrs = append(f.gotLoadErrs, err)
		}
	}

	if f.fail {
		return nil, f.diags, nil
	}
	return &fakeDefinition{name: "Root"}, f.diags, nil
}

func (f *fakeEngine) RegisterFontFromMemory(data []byte) error {
	if f.fontErr != nil {
		return f.fontErr
	}
	f.fonts = append(f.fonts, data)
	return nil
}

func (f *fakeEngine) Close(context.Context) error { return nil }

type fakeDefinition struct {
	name     string
	surfaces []string
	closed   bool
}

func (d *fakeDefinition) Name() string { return d.name }

func (d *fakeDefinition) CreateWithSurface(_ context.Context, surfaceID string) (engine.ComponentInstance, error) {
	if d.closed {
		return nil, errors.New("definition closed")
	}
	d.surfaces = append(d.surfaces, surfaceID)
	return &fakeInstance{}, nil
}

func (d *fakeDefinition) Close() error {
	d.closed = true
	return nil
}

type fakeInstance struct{ ran bool }

func (i *fakeInstance) Run(context.Context) error {
	i.ran = true
	return nil
}

func TestCompileFromString_Success(t *testing.T) {
	eng := &fakeEngine{}
	h := New(eng)

	comp, err := h.CompileFromString(context.Background(), "component Root {}", "app.quill")
	if err != nil {
		t.Fatalf("CompileFromString() error: %v", err)
	}
	defer comp.Close()

	if comp.Name() != "Root" {
		t.Errorf("Name() = %q, want Root", comp.Name())
	}
	if eng.source != "component Root {}" || eng.baseURL != "app.quill" {
		t.Errorf("engine saw source=%q base=%q", eng.source, eng.baseURL)
	}
	if eng.cfg.Loader != nil {
		t.Error("no callbacks supplied, but a loader was installed")
	}
}

func TestCompileFromString_DiagnosticsFlattened(t *testing.T) {
	eng := &fakeEngine{
		fail: true,
		diags: diag.List{
			{File: "app.quill", Line: 3, Column: 14, Message: "unknown element `Buton`", Severity: diag.SeverityError},
			{File: "app.quill", Line: 9, Column: 1, Message: "unused import", Severity: diag.SeverityWarning},
		},
	}
	h := New(eng)

	_, err := h.CompileFromString(context.Background(), "component Root { Buton {} }", "app.quill")
	if err == nil {
		t.Fatal("CompileFromString() succeeded, want diagnostics error")
	}

	var diags *diag.Error
	if !errors.As(err, &diags) {
		t.Fatalf("error %T is not *diag.Error", err)
	}
	if len(diags.Diagnostics) < 1 {
		t.Fatal("structured list is empty")
	}
	if diff := cmp.Diff(eng.diags, diags.Diagnostics); diff != "" {
		t.Errorf("diagnostics mismatch (-engine +host):\n%s", diff)
	}
	if msg := err.Error(); !strings.Contains(msg, "app.quill:3:14") {
		t.Errorf("combined string %q missing file:line:column", msg)
	}
}

func TestCompileFromString_EngineFailure(t *testing.T) {
	eng := &fakeEngine{compileErr: errors.New("engine trapped")}
	h := New(eng)

	_, err := h.CompileFromString(context.Background(), "x", "app.quill")
	if err == nil || errors.As(err, new(*diag.Error)) {
		t.Fatalf("error = %v, want plain engine failure, not diagnostics", err)
	}
}

func TestWithImportCallbacks_BothInstalled(t *testing.T) {
	eng := &fakeEngine{importNames: []string{"button.quill"}}
	h := New(eng)

	loadErr := errors.New("no such import")
	_, err := h.CompileFromString(context.Background(), "import button", "app.quill",
		WithImportCallbacks(
			func(name string) (string, bool) { return "lib/" + name, true },
			func(_ context.Context, path string) (string, error) {
				if path == "lib/button.quill" {
					return "component Button {}", nil
				}
				return "", loadErr
			},
		))
	if err != nil {
		t.Fatalf("CompileFromString() error: %v", err)
	}

	// the resolver's path reaches the engine verbatim, and the loaded
	// content came back for that path
	if diff := cmp.Diff([]string{"lib/button.quill"}, eng.gotPaths); diff != "" {
		t.Errorf("resolved paths mismatch:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"component Button {}"}, eng.gotContent); diff != "" {
		t.Errorf("loaded content mismatch:\n%s", diff)
	}
	if eng.gotLoadErrs[0] != nil {
		t.Errorf("load error = %v, want nil", eng.gotLoadErrs[0])
	}
}

func TestWithImportCallbacks_LoadErrorReachesEngine(t *testing.T) {
	eng := &fakeEngine{importNames: []string{"gone.quill"}}
	h := New(eng)

	sentinel := errors.New("backend unavailable")
	_, err := h.CompileFromString(context.Background(), "import gone", "app.quill",
		WithImportCallbacks(
			func(name string) (string, bool) { return name, true },
			func(context.Context, string) (string, error) { return "", sentinel },
		))
	if err != nil {
		t.Fatalf("CompileFromString() error: %v", err)
	}

	if len(eng.gotLoadErrs) != 1 || !errors.Is(eng.gotLoadErrs[0], sentinel) {
		t.Errorf("engine saw load errors %v, want the callback's error", eng.gotLoadErrs)
	}
}

func TestWithImportCallbacks_SingleCallbackNotInstalled(t *testing.T) {
	resolve := func(name string) (string, bool) { return name, true }
	load := func(context.Context, string) (string, error) { return "", nil }

	tests := []struct {
		name    string
		resolve loader.ResolveFunc
		load    loader.LoadFunc
	}{
		{"resolver only", resolve, nil},
		{"loader only", nil, load},
		{"neither", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := &fakeEngine{}
			h := New(eng)

			if _, err := h.CompileFromString(context.Background(), "x", "app.quill",
				WithImportCallbacks(tt.resolve, tt.load)); err != nil {
				t.Fatalf("CompileFromString() error: %v", err)
			}
			if eng.cfg.Loader != nil {
				t.Error("loader installed with incomplete callback pair")
			}
		})
	}
}

func TestWithLoader(t *testing.T) {
	eng := &fakeEngine{}
	h := New(eng)

	l := loader.Funcs(
		func(name string) (string, bool) { return name, true },
		func(context.Context, string) (string, error) { return "", nil },
	)
	if _, err := h.CompileFromString(context.Background(), "x", "app.quill", WithLoader(l)); err != nil {
		t.Fatalf("CompileFromString() error: %v", err)
	}
	if eng.cfg.Loader == nil {
		t.Error("loader not installed")
	}
}

func TestWithIncludePaths(t *testing.T) {
	eng := &fakeEngine{}
	h := New(eng)

	if _, err := h.CompileFromString(context.Background(), "x", "app.quill",
		WithIncludePaths("widgets", "themes")); err != nil {
		t.Fatalf("CompileFromString() error: %v", err)
	}
	if diff := cmp.Diff([]string{"widgets", "themes"}, eng.cfg.IncludePaths); diff != "" {
		t.Errorf("include paths mismatch:\n%s", diff)
	}
}

func TestCompiledComponent_Run(t *testing.T) {
	eng := &fakeEngine{}
	h := New(eng)

	comp, err := h.CompileFromString(context.Background(), "component Root {}", "app.quill")
	if err != nil {
		t.Fatalf("CompileFromString() error: %v", err)
	}

	if err := comp.Run(context.Background(), "main-surface"); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	def := comp.Definition().(*fakeDefinition)
	if diff := cmp.Diff([]string{"main-surface"}, def.surfaces); diff != "" {
		t.Errorf("surface mismatch:\n%s", diff)
	}

	if err := comp.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if err := comp.Run(context.Background(), "main-surface"); err == nil {
		t.Error("Run() after Close() succeeded")
	}
}

func TestCompileWrapsEngineError(t *testing.T) {
	eng := &fakeEngine{compileErr: fmt.Errorf("trap")}
	h := New(eng)

	_, err := h.CompileFromString(context.Background(), "x", "dash.quill")
	if err == nil || !strings.Contains(err.Error(), "dash.quill") {
		t.Errorf("error %v does not name the compilation unit", err)
	}
}
