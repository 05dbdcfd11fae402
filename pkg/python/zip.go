// This file mimics `zipfile.py`.

package python

// A DOSAttribute is an "MS-DOS directory attribute byte" as the ZIP file format
// specification[1] calls it.
//
// [1]: https://www.pkware.com/appnote
type DOSAttribute uint8

// The comment letters are the flag letters used by MS-DOS commands.
const (
	DOSReadOnly  DOSAttribute = 1 << iota // R
	DOSHidden                             // H
	DOSSystem                             // S
	_DOSUnused3                           // 1<<3
	DOSDirectory                          // D
	DOSArchive                            // A
	_DOSUnused6                           // 1<<6
	_DOSUnused7                           // 1<<7
)

// A ZIPExternalAttributes is Python's reading of a ZIP member's 4-byte "external file attributes"
// field.
//
// What that field means formally depends on the "version made by" platform ID: the "MS-DOS" (0x00)
// platform uses only the low byte, and the "UNIX" (0x03) platform uses only the upper 2 bytes (for
// an st_mode).  Python's `zipfile` doesn't bother checking the platform ID; it parses the field
// both ways at once, and so do we.
type ZIPExternalAttributes struct {
	UNIX   StatMode
	Unused uint8
	MSDOS  DOSAttribute
}

// Raw packs the attributes back in to an unstructured 32-bit integer.
func (ea ZIPExternalAttributes) Raw() uint32 {
	return uint32(ea.UNIX)<<16 | uint32(ea.Unused)<<8 | uint32(ea.MSDOS)
}

// ParseZIPExternalAttributes splits an unstructured 32-bit "external file attributes" value in to
// its parts.
func ParseZIPExternalAttributes(raw uint32) ZIPExternalAttributes {
	return ZIPExternalAttributes{
		UNIX:   StatMode(raw >> 16),
		Unused: uint8(raw >> 8),
		MSDOS:  DOSAttribute(raw),
	}
}
