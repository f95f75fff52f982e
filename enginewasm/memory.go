package enginewasm

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero/api"

	quillhost "github.com/quill-ui/quill-host"
)

// wazeroMemory wraps wazero memory to implement quillhost.Memory.
type wazeroMemory struct {
	mem api.Memory
}

func (m *wazeroMemory) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, fmt.Errorf("read out of bounds: offset=%d, length=%d", offset, length)
	}
	return data, nil
}

func (m *wazeroMemory) Write(offset uint32, data []byte) error {
	ok := m.mem.Write(offset, data)
	if !ok {
		return fmt.Errorf("write out of bounds: offset=%d, length=%d", offset, len(data))
	}
	return nil
}

func (m *wazeroMemory) ReadU8(offset uint32) (uint8, error) {
	data, err := m.Read(offset, 1)
	if err != nil {
		return 0, err
	}
	return data[0], nil
}

func (m *wazeroMemory) ReadU32(offset uint32) (uint32, error) {
	val, ok := m.mem.ReadUint32Le(offset)
	if !ok {
		return 0, fmt.Errorf("read out of bounds: offset=%d", offset)
	}
	return val, nil
}

func (m *wazeroMemory) ReadU64(offset uint32) (uint64, error) {
	val, ok := m.mem.ReadUint64Le(offset)
	if !ok {
		return 0, fmt.Errorf("read out of bounds: offset=%d", offset)
	}
	return val, nil
}

func (m *wazeroMemory) WriteU8(offset uint32, value uint8) error {
	return m.Write(offset, []byte{value})
}

func (m *wazeroMemory) WriteU32(offset uint32, value uint32) error {
	if !m.mem.WriteUint32Le(offset, value) {
		return fmt.Errorf("write out of bounds: offset=%d", offset)
	}
	return nil
}

func (m *wazeroMemory) WriteU64(offset uint32, value uint64) error {
	if !m.mem.WriteUint64Le(offset, value) {
		return fmt.Errorf("write out of bounds: offset=%d", offset)
	}
	return nil
}

func (m *wazeroMemory) Size() uint32 {
	if m.mem == nil {
		return 0
	}
	return m.mem.Size()
}

var _ quillhost.Memory = (*wazeroMemory)(nil)
var _ quillhost.MemorySizer = (*wazeroMemory)(nil)

// guestAllocator adapts the engine's exported quill_alloc/quill_free pair to
// quillhost.Allocator. It is created per call with the caller's context.
type guestAllocator struct {
	ctx   context.Context
	alloc api.Function
	free  api.Function
}

func newGuestAllocator(ctx context.Context, mod api.Module) *guestAllocator {
	return &guestAllocator{
		ctx:   ctx,
		alloc: mod.ExportedFunction(abiAlloc),
		free:  mod.ExportedFunction(abiFree),
	}
}

func (a *guestAllocator) Alloc(size uint32) (uint32, error) {
	if a.alloc == nil {
		return 0, fmt.Errorf("engine does not export %s", abiAlloc)
	}
	res, err := a.alloc.Call(a.ctx, uint64(size))
	if err != nil {
		return 0, fmt.Errorf("%s(%d): %w", abiAlloc, size, err)
	}
	ptr := uint32(res[0])
	if ptr == 0 {
		return 0, fmt.Errorf("%s(%d): engine out of memory", abiAlloc, size)
	}
	return ptr, nil
}

func (a *guestAllocator) Free(ptr, size uint32) {
	if a.free == nil || ptr == 0 {
		return
	}
	if _, err := a.free.Call(a.ctx, uint64(ptr), uint64(size)); err != nil {
		// Leaked guest memory is not fatal; the instance reclaims it on close.
		return
	}
}

var _ quillhost.Allocator = (*guestAllocator)(nil)

// readBytes copies length bytes at ptr out of guest memory.
func readBytes(mem quillhost.Memory, ptr, length uint32) ([]byte, error) {
	if length == 0 {
		return nil, nil
	}
	view, err := mem.Read(ptr, length)
	if err != nil {
		return nil, err
	}
	out := make([]byte, length)
	copy(out, view)
	return out, nil
}

// readString copies a guest string into host memory.
func readString(mem quillhost.Memory, ptr, length uint32) (string, error) {
	data, err := mem.Read(ptr, length)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// writeBytes allocates guest memory and copies data into it. A zero-length
// write returns ptr 0 without allocating.
func writeBytes(mem quillhost.Memory, alloc quillhost.Allocator, data []byte) (ptr, length uint32, err error) {
	if len(data) == 0 {
		return 0, 0, nil
	}
	n := uint32(len(data))
	ptr, err = alloc.Alloc(n)
	if err != nil {
		return 0, 0, err
	}
	if err := mem.Write(ptr, data); err != nil {
		alloc.Free(ptr, n)
		return 0, 0, err
	}
	return ptr, n, nil
}
