package loader

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
)

func TestFuncs_PassThrough(t *testing.T) {
	ctx := context.Background()

	var resolvedName, loadedPath string
	l := Funcs(
		func(name string) (string, bool) {
			resolvedName = name
			return "lib/" + name, true
		},
		func(_ context.Context, path string) (string, error) {
			loadedPath = path
			return "component Root {}", nil
		},
	)

	path, ok := l.ResolvePath("button.quill")
	if !ok || path != "lib/button.quill" {
		t.Fatalf("ResolvePath() = %q, %v", path, ok)
	}
	if resolvedName != "button.quill" {
		t.Errorf("resolver saw %q, want the name verbatim", resolvedName)
	}

	content, err := l.LoadContent(ctx, path)
	if err != nil {
		t.Fatalf("LoadContent() error: %v", err)
	}
	if loadedPath != "lib/button.quill" {
		t.Errorf("loader saw %q, want the resolved path verbatim", loadedPath)
	}
	if content != "component Root {}" {
		t.Errorf("LoadContent() = %q", content)
	}
}

func TestFuncs_LoadErrorPropagates(t *testing.T) {
	sentinel := errors.New("backend unavailable")
	l := Funcs(
		func(name string) (string, bool) { return name, true },
		func(context.Context, string) (string, error) { return "", sentinel },
	)

	_, err := l.LoadContent(context.Background(), "x.quill")
	if !errors.Is(err, sentinel) {
		t.Errorf("LoadContent() error = %v, want the callback's error", err)
	}
}

func TestFS_Resolve(t *testing.T) {
	fsys := fstest.MapFS{
		"widgets/button.quill": {Data: []byte("component Button {}")},
		"theme.quill":          {Data: []byte("theme {}")},
	}

	tests := []struct {
		name     string
		loader   Loader
		lookup   string
		wantPath string
		wantOK   bool
	}{
		{"root hit", FS(fsys), "theme.quill", "theme.quill", true},
		{"root miss", FS(fsys), "missing.quill", "", false},
		{"dir hit", FS(fsys, "widgets"), "button.quill", "widgets/button.quill", true},
		{"dir order", FS(fsys, "nope", "widgets"), "button.quill", "widgets/button.quill", true},
		{"dir miss", FS(fsys, "widgets"), "theme2.quill", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, ok := tt.loader.ResolvePath(tt.lookup)
			if ok != tt.wantOK || path != tt.wantPath {
				t.Errorf("ResolvePath(%q) = %q, %v; want %q, %v", tt.lookup, path, ok, tt.wantPath, tt.wantOK)
			}
		})
	}
}

func TestFS_LoadContent(t *testing.T) {
	fsys := fstest.MapFS{
		"theme.quill": {Data: []byte("theme {}")},
	}
	l := FS(fsys)

	content, err := l.LoadContent(context.Background(), "theme.quill")
	if err != nil {
		t.Fatalf("LoadContent() error: %v", err)
	}
	if content != "theme {}" {
		t.Errorf("LoadContent() = %q", content)
	}

	if _, err := l.LoadContent(context.Background(), "missing.quill"); err == nil {
		t.Error("LoadContent() on missing file succeeded")
	}
}
