// Package lvb decodes LVB gimmick containers.
//
// An LVB file describes the placed objects ("gimmicks") of a game map: a
// table of variable-size sections holding object info records, transform
// matrices, a string blob and an optional debug name table. The decoder
// walks the section table, decodes every entry through a per-magic payload
// mapper and cross-references the results into a queryable, immutable
// object graph.
//
// Two on-disk layouts exist for the info table, selected by the container
// version: files with version >= 5 use the modern layout (hash and bdat
// ids), older files use the legacy layout (string-table names).
package lvb

const (
	// MagicLVLB is the file signature of every LVB container.
	MagicLVLB = "LVLB"

	// ModernVersion is the first container version using the modern
	// info layout.
	ModernVersion = 5

	fileHeaderSize    = 32
	sectionHeaderSize = 32
)

// Magic is a 4-byte section type tag.
type Magic [4]byte

// Section magics with built-in payload decoders. These four are the
// "special" sections consumed by cross-referencing; every other magic
// holds plain gimmick entries.
var (
	MagicInfo    = Magic{'I', 'N', 'F', 'O'}
	MagicXfrm    = Magic{'X', 'F', 'R', 'M'}
	MagicDebug   = Magic{'D', 'E', 'B', 'I'}
	MagicStrings = Magic{'S', 'T', 'R', 'G'}
)

func (m Magic) String() string {
	return string(m[:])
}

// Special reports whether the magic names one of the cross-reference
// sections (INFO, XFRM, DEBI, STRG) that are excluded from the
// container's gimmick section list.
func (m Magic) Special() bool {
	switch m {
	case MagicInfo, MagicXfrm, MagicDebug, MagicStrings:
		return true
	}
	return false
}

// MagicOf builds a Magic from a 4-character string. It returns false
// if s is not exactly 4 bytes.
func MagicOf(s string) (Magic, bool) {
	if len(s) != 4 {
		return Magic{}, false
	}
	var m Magic
	copy(m[:], s)
	return m, true
}
