package diag

// Error is the aggregate compile error surfaced to the host when the engine
// produced no component. It keeps the structured diagnostic records alongside
// the combined human-readable string.
type Error struct {
	// Diagnostics holds every record the engine reported for the failed
	// compile, warnings included.
	Diagnostics List
}

// NewError builds an aggregate error from the engine's diagnostic list.
func NewError(diags List) *Error {
	return &Error{Diagnostics: diags}
}

// Error returns the combined string, one file:line:column: message entry per
// line.
func (e *Error) Error() string {
	if len(e.Diagnostics) == 0 {
		return "compile failed with no diagnostics"
	}
	return e.Diagnostics.Summary()
}

// Is reports whether target is also a *Error. Matching is by type only;
// diagnostic content is compared by the caller.
func (e *Error) Is(target error) bool {
	_, ok := target.(*Error)
	return ok
}
