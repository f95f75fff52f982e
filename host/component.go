package host

import (
	"context"
	"fmt"

	"github.com/quill-ui/quill-host/engine"
)

// CompiledComponent is the opaque handle the host application holds between a
// successful compile and running the component. The wrapped definition stays
// valid for the handle's lifetime.
type CompiledComponent struct {
	def engine.ComponentDefinition
}

// Name returns the engine's name for the root component.
func (c *CompiledComponent) Name() string {
	return c.def.Name()
}

// Definition exposes the wrapped engine artifact for callers that need to
// talk to the engine directly.
func (c *CompiledComponent) Definition() engine.ComponentDefinition {
	return c.def
}

// Run instantiates the component bound to the named surface and hands control
// to the engine's run loop. The call is terminal: it blocks until the loop
// exits and defines no further interaction with the instance.
func (c *CompiledComponent) Run(ctx context.Context, surfaceID string) error {
	inst, err := c.def.CreateWithSurface(ctx, surfaceID)
	if err != nil {
		return fmt.Errorf("create component on surface %q: %w", surfaceID, err)
	}
	return inst.Run(ctx)
}

// Close releases the engine-side handle. The component must not be used
// afterwards.
func (c *CompiledComponent) Close() error {
	return c.def.Close()
}
