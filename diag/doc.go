// Package diag defines the structured compile diagnostics produced by the
// Quill engine and the aggregate error the host binding surfaces them as.
//
// A Diagnostic carries severity, source location, and message. When a compile
// fails, the binding flattens the engine's diagnostic list into a single
// *Error that keeps the structured records for programmatic inspection and
// renders a combined human-readable string:
//
//	var diags *diag.Error
//	if errors.As(err, &diags) {
//	    for _, d := range diags.Diagnostics {
//	        fmt.Printf("%s at %s:%d:%d\n", d.Message, d.File, d.Line, d.Column)
//	    }
//	}
package diag
