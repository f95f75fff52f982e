// Package host is the high-level binding surface: compile .quill source into
// an opaque component handle, run a handle on a named surface, and register
// fonts fetched over HTTP.
//
// # Quick Start
//
//	h := host.New(eng)
//
//	comp, err := h.CompileFromString(ctx, source, "app.quill")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer comp.Close()
//
//	if err := h.RegisterFont(ctx, "https://example.com/fonts/inter.ttf"); err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := comp.Run(ctx, "main-surface"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Failure Model
//
// Compile failures surface as *diag.Error: a combined human-readable string
// plus the structured diagnostic list. Everything else (transport failures
// on the font path, engine traps) is returned directly with no retry and no
// partial state.
package host
