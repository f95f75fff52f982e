package loader

import (
	"context"
	"fmt"
	"io/fs"
	"path"
)

// FS serves imports from a file system, searching dirs in order. With no
// dirs, names resolve relative to the root of fsys.
func FS(fsys fs.FS, dirs ...string) Loader {
	return &fsLoader{fsys: fsys, dirs: dirs}
}

type fsLoader struct {
	fsys fs.FS
	dirs []string
}

func (l *fsLoader) ResolvePath(name string) (string, bool) {
	name = path.Clean(name)
	if len(l.dirs) == 0 {
		if _, err := fs.Stat(l.fsys, name); err == nil {
			return name, true
		}
		return "", false
	}
	for _, dir := range l.dirs {
		candidate := path.Join(dir, name)
		if _, err := fs.Stat(l.fsys, candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

func (l *fsLoader) LoadContent(_ context.Context, p string) (string, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return "", fmt.Errorf("load import %s: %w", p, err)
	}
	return string(data), nil
}
