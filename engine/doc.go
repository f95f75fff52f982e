// Package engine defines the contracts the host binding is written against.
//
// The Quill engine owns compilation, the component runtime, and the font
// registry; this package only names the seams: Engine for the entry points,
// ComponentDefinition for the opaque compiled artifact, ComponentInstance for
// a component bound to a surface, and CompilerConfiguration for the
// engine-owned compile options the binding fills in.
//
// The production implementation is enginewasm, which hosts the engine's wasm
// artifact. Tests substitute fakes.
package engine
