package enginewasm

// Names of the engine's exported ABI functions.
const (
	abiAlloc            = "quill_alloc"
	abiFree             = "quill_free"
	abiCompile          = "quill_compile"
	abiComponentSurface = "quill_component_surface"
	abiInstanceRun      = "quill_instance_run"
	abiComponentFree    = "quill_component_free"
	abiRegisterFont     = "quill_register_font"
)

// hostLoaderModule is the import module the engine binds its file-loader
// hook against.
const hostLoaderModule = "quill:host/loader"

const (
	hostResolveImport = "resolve_import"
	hostLoadImport    = "load_import"
)

// Compile flags.
const (
	// flagCustomLoader tells the engine to route all imports through the
	// host's loader instead of its default file loading.
	flagCustomLoader uint32 = 1 << 0
)

// pack combines a guest pointer and length into the u64 the ABI returns.
func pack(ptr, length uint32) uint64 {
	return uint64(ptr)<<32 | uint64(length)
}

// unpack splits a packed u64 into pointer and length.
func unpack(v uint64) (ptr, length uint32) {
	return uint32(v >> 32), uint32(v)
}
