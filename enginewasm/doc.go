// Package enginewasm hosts the Quill engine's WebAssembly artifact and
// implements the engine contracts on top of it using wazero.
//
// # ABI
//
// The engine exposes a flat C-style ABI. Strings and buffers cross the
// boundary as (pointer, length) pairs into the engine's linear memory,
// packed into a single u64 as ptr<<32|len where a function returns one.
// Guest allocations for host-supplied data go through the engine's exported
// allocator.
//
// Engine exports:
//
//	quill_alloc(size) -> ptr
//	quill_free(ptr, size)
//	quill_compile(src, src_len, base, base_len, inc, inc_len, flags) -> packed result
//	quill_component_surface(handle, surf, surf_len) -> instance id
//	quill_instance_run(instance) -> status
//	quill_component_free(handle)
//	quill_register_font(data, data_len) -> packed error string (0 on success)
//
// Host imports, module "quill:host/loader":
//
//	resolve_import(name, name_len) -> packed rewritten path (0 = no rewrite)
//	load_import(path, path_len) -> packed load-result buffer
//
// Result buffers use little-endian fixed-width fields with length-prefixed
// strings; see codec.go.
//
// # Concurrency
//
// A wasm instance is single-threaded. The Engine serializes every call on one
// mutex; import callbacks run on the compiling goroutine while the compile is
// suspended in the guest.
package enginewasm
