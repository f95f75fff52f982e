package enginewasm

import (
	"context"
	"fmt"

	qengine "github.com/quill-ui/quill-host/engine"
)

// definition is the engine-side handle for a compiled component.
type definition struct {
	eng    *Engine
	name   string
	handle uint32
	closed bool
}

func (d *definition) Name() string {
	return d.name
}

// CreateWithSurface implements qengine.ComponentDefinition.
func (d *definition) CreateWithSurface(ctx context.Context, surfaceID string) (qengine.ComponentInstance, error) {
	e := d.eng
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, fmt.Errorf("engine is closed")
	}
	if d.closed {
		return nil, fmt.Errorf("component %q is closed", d.name)
	}

	mem := &wazeroMemory{e.mod.Memory()}
	alloc := newGuestAllocator(ctx, e.mod)

	ptr, n, err := writeBytes(mem, alloc, []byte(surfaceID))
	if err != nil {
		return nil, fmt.Errorf("marshal surface id: %w", err)
	}
	defer alloc.Free(ptr, n)

	res, err := e.surfaceFn.Call(ctx, uint64(d.handle), uint64(ptr), uint64(n))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", abiComponentSurface, err)
	}
	id := uint32(res[0])
	if id == 0 {
		return nil, fmt.Errorf("engine rejected surface %q for component %q", surfaceID, d.name)
	}

	return &instance{eng: e, id: id}, nil
}

// Close implements qengine.ComponentDefinition.
func (d *definition) Close() error {
	e := d.eng
	e.mu.Lock()
	defer e.mu.Unlock()
	if d.closed || e.closed {
		d.closed = true
		return nil
	}
	d.closed = true

	if _, err := e.compFree.Call(context.Background(), uint64(d.handle)); err != nil {
		return fmt.Errorf("%s: %w", abiComponentFree, err)
	}
	return nil
}

// instance is a component bound to a surface.
type instance struct {
	eng *Engine
	id  uint32
}

// Run implements qengine.ComponentInstance. It holds the engine for the
// whole run loop; the call is terminal.
func (i *instance) Run(ctx context.Context) error {
	e := i.eng
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return fmt.Errorf("engine is closed")
	}

	res, err := e.runFn.Call(ctx, uint64(i.id))
	if err != nil {
		return fmt.Errorf("%s: %w", abiInstanceRun, err)
	}
	if status := uint32(res[0]); status != 0 {
		return fmt.Errorf("engine run loop exited with status %d", status)
	}
	return nil
}
