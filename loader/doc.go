// Package loader defines the import-resolution hook the Quill engine calls
// when a .quill file references another file.
//
// The hook is the pair of capabilities from the engine's file-loader
// contract: rewrite a referenced file name to a path, then asynchronously
// load that path's content. Loader models both; Funcs adapts two plain host
// functions into a Loader, and FS/HTTP provide ready-made backends.
//
// Loaders may be invoked zero or more times from inside a suspended compile
// and must be safe to call from that context.
package loader
