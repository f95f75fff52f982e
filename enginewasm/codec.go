package enginewasm

import (
	"encoding/binary"
	"fmt"

	"github.com/quill-ui/quill-host/diag"
)

// Wire encoding for result buffers crossing the engine boundary.
//
// compile result:
//
//	u8  status (0 = ok, 1 = failed)
//	ok: u32 handle, str name
//	u32 diagnostic count
//	per diagnostic: u8 severity, u32 line, u32 column, str file, str message
//
// load result:
//
//	u8  status (0 = ok, 1 = failed)
//	str content (ok) or str error message (failed)
//
// str is u32 length followed by that many UTF-8 bytes. All integers are
// little-endian.

const (
	statusOK     = 0
	statusFailed = 1
)

type compileResult struct {
	name   string
	diags  diag.List
	handle uint32
	ok     bool
}

func decodeCompileResult(buf []byte) (compileResult, error) {
	r := byteReader{buf: buf}

	var res compileResult
	status, err := r.u8()
	if err != nil {
		return res, err
	}
	switch status {
	case statusOK:
		res.ok = true
		if res.handle, err = r.u32(); err != nil {
			return res, err
		}
		if res.handle == 0 {
			return res, fmt.Errorf("compile result: ok status with zero handle")
		}
		if res.name, err = r.str(); err != nil {
			return res, err
		}
	case statusFailed:
	default:
		return res, fmt.Errorf("compile result: unknown status %d", status)
	}

	count, err := r.u32()
	if err != nil {
		return res, err
	}
	for i := uint32(0); i < count; i++ {
		d, err := r.diagnostic()
		if err != nil {
			return res, fmt.Errorf("compile result: diagnostic %d: %w", i, err)
		}
		res.diags = append(res.diags, d)
	}

	if r.rest() != 0 {
		return res, fmt.Errorf("compile result: %d trailing bytes", r.rest())
	}
	return res, nil
}

func decodeRegisterFontResult(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	return fmt.Errorf("%s", buf)
}

// appendLoadResult encodes the outcome of a host load_import callback.
func appendLoadResult(dst []byte, content string, loadErr error) []byte {
	if loadErr != nil {
		dst = append(dst, statusFailed)
		return appendStr(dst, loadErr.Error())
	}
	dst = append(dst, statusOK)
	return appendStr(dst, content)
}

// appendCompileResult encodes a compile result. The engine produces these;
// the host-side encoder exists for fakes and tests.
func appendCompileResult(dst []byte, res compileResult) []byte {
	if res.ok {
		dst = append(dst, statusOK)
		dst = binary.LittleEndian.AppendUint32(dst, res.handle)
		dst = appendStr(dst, res.name)
	} else {
		dst = append(dst, statusFailed)
	}
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(res.diags)))
	for _, d := range res.diags {
		dst = append(dst, uint8(d.Severity))
		dst = binary.LittleEndian.AppendUint32(dst, uint32(d.Line))
		dst = binary.LittleEndian.AppendUint32(dst, uint32(d.Column))
		dst = appendStr(dst, d.File)
		dst = appendStr(dst, d.Message)
	}
	return dst
}

// appendIncludePaths encodes the include path list passed to quill_compile.
func appendIncludePaths(dst []byte, paths []string) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(paths)))
	for _, p := range paths {
		dst = appendStr(dst, p)
	}
	return dst
}

func appendStr(dst []byte, s string) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(s)))
	return append(dst, s...)
}

type byteReader struct {
	buf []byte
	off int
}

func (r *byteReader) rest() int {
	return len(r.buf) - r.off
}

func (r *byteReader) u8() (uint8, error) {
	if r.rest() < 1 {
		return 0, fmt.Errorf("truncated at offset %d: need u8", r.off)
	}
	v := r.buf[r.off]
	r.off++
	return v, nil
}

func (r *byteReader) u32() (uint32, error) {
	if r.rest() < 4 {
		return 0, fmt.Errorf("truncated at offset %d: need u32", r.off)
	}
	v := binary.LittleEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v, nil
}

func (r *byteReader) str() (string, error) {
	n, err := r.u32()
	if err != nil {
		return "", err
	}
	if uint32(r.rest()) < n {
		return "", fmt.Errorf("truncated at offset %d: need %d string bytes", r.off, n)
	}
	s := string(r.buf[r.off : r.off+int(n)])
	r.off += int(n)
	return s, nil
}

func (r *byteReader) diagnostic() (diag.Diagnostic, error) {
	var d diag.Diagnostic

	sev, err := r.u8()
	if err != nil {
		return d, err
	}
	d.Severity = diag.Severity(sev)

	line, err := r.u32()
	if err != nil {
		return d, err
	}
	col, err := r.u32()
	if err != nil {
		return d, err
	}
	d.Line, d.Column = int(line), int(col)

	if d.File, err = r.str(); err != nil {
		return d, err
	}
	if d.Message, err = r.str(); err != nil {
		return d, err
	}
	return d, nil
}
