// Package fontutil inspects font binaries before they are handed to the
// engine's font registry. Probing is informational: the engine remains the
// authority on whether the bytes are acceptable.
package fontutil
