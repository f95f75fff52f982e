package fontutil

import (
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/image/font/sfnt"
)

// Format identifies the container format of a font binary.
type Format int

const (
	FormatUnknown Format = iota
	FormatTrueType
	FormatOpenType
	FormatCollection
)

func (f Format) String() string {
	switch f {
	case FormatTrueType:
		return "truetype"
	case FormatOpenType:
		return "opentype"
	case FormatCollection:
		return "collection"
	default:
		return "unknown"
	}
}

// Info describes a probed font.
type Info struct {
	// Family is the font family name from the name table, or empty when the
	// table carries none.
	Family string
	Format Format
	// NumFonts is 1 for single fonts and the member count for collections.
	NumFonts int
}

var errTooShort = errors.New("font data too short")

// Probe sniffs the container format and parses the first font's family name.
func Probe(data []byte) (Info, error) {
	if len(data) < 4 {
		return Info{}, errTooShort
	}

	info := Info{Format: sniffFormat(data), NumFonts: 1}
	if info.Format == FormatUnknown {
		return Info{}, fmt.Errorf("unrecognized font magic %x", data[:4])
	}

	var f *sfnt.Font
	if info.Format == FormatCollection {
		coll, err := sfnt.ParseCollection(data)
		if err != nil {
			return Info{}, fmt.Errorf("parse font collection: %w", err)
		}
		info.NumFonts = coll.NumFonts()
		f, err = coll.Font(0)
		if err != nil {
			return Info{}, fmt.Errorf("parse font collection: %w", err)
		}
	} else {
		var err error
		f, err = sfnt.Parse(data)
		if err != nil {
			return Info{}, fmt.Errorf("parse font: %w", err)
		}
	}

	family, err := f.Name(nil, sfnt.NameIDFamily)
	if err != nil && !errors.Is(err, sfnt.ErrNotFound) {
		return Info{}, fmt.Errorf("read family name: %w", err)
	}
	info.Family = family

	return info, nil
}

func sniffFormat(data []byte) Format {
	switch binary.BigEndian.Uint32(data) {
	case 0x00010000, 0x74727565: // 1.0, 'true'
		return FormatTrueType
	case 0x4f54544f: // 'OTTO'
		return FormatOpenType
	case 0x74746366: // 'ttcf'
		return FormatCollection
	default:
		return FormatUnknown
	}
}
