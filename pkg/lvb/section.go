package lvb

import "fmt"

// Section is one decoded entry-table block. A STRG section holds exactly
// one entry whose payload spans the rest of the section; every other
// section holds Count fixed-size entries.
type Section struct {
	Magic    Magic
	Size     uint32
	Version  uint32
	InfoBase uint32
	Entries  []Entry
}

// Entry is one decoded record within a section. The info and transform
// links are indices into the INFO and XFRM entry lists, set during
// cross-referencing; the container owns the referenced entries.
type Entry struct {
	Payload Payload

	// Name is the resolved display name, empty when none could be
	// resolved (modern files without a DEBI overlay, or string-table
	// failures).
	Name string

	infoIndex int
	xfrmIndex int
}

// InfoIndex returns the entry's index into the INFO section, or -1 when
// the entry was never cross-referenced.
func (e *Entry) InfoIndex() int {
	return e.infoIndex
}

// TransformIndex returns the entry's index into the XFRM section, or -1
// when the entry was never cross-referenced.
func (e *Entry) TransformIndex() int {
	return e.xfrmIndex
}

// decodeSection reads the section starting at off. The declared size is
// trusted to advance the walker, but the entry geometry must fit inside
// it and inside the buffer.
func decodeSection(data []byte, off int, modern bool, ext []Resolver) (*Section, error) {
	hdr, err := decodeSectionHeader(data, off)
	if err != nil {
		return nil, err
	}
	if hdr.size < sectionHeaderSize {
		return nil, fmt.Errorf("%w: %s at %d declares size %d", ErrCorruptSection, hdr.magic, off, hdr.size)
	}
	end := off + int(hdr.size)
	if end > len(data) {
		return nil, fmt.Errorf("%w: %s at %d ends at %d past buffer (%d bytes)", ErrCorruptSection, hdr.magic, off, end, len(data))
	}

	sec := &Section{
		Magic:    hdr.magic,
		Size:     hdr.size,
		Version:  hdr.version,
		InfoBase: hdr.infoBase,
	}
	mapper := resolveMapper(hdr.magic, modern, ext)
	entryStart := off + sectionHeaderSize

	if hdr.magic == MagicStrings {
		p, err := mapper(data[entryStart:end])
		if err != nil {
			return nil, fmt.Errorf("%s blob: %w", hdr.magic, err)
		}
		sec.Entries = []Entry{{Payload: p, infoIndex: -1, xfrmIndex: -1}}
		return sec, nil
	}

	need := uint64(sectionHeaderSize) + uint64(hdr.count)*uint64(hdr.entrySize)
	if need > uint64(hdr.size) {
		return nil, fmt.Errorf("%w: %s declares %d entries of %d bytes in a %d-byte section",
			ErrCorruptSection, hdr.magic, hdr.count, hdr.entrySize, hdr.size)
	}
	sec.Entries = make([]Entry, hdr.count)
	for i := range sec.Entries {
		lo := entryStart + i*int(hdr.entrySize)
		p, err := mapper(data[lo : lo+int(hdr.entrySize)])
		if err != nil {
			return nil, fmt.Errorf("%s entry %d: %w", hdr.magic, i, err)
		}
		sec.Entries[i] = Entry{Payload: p, infoIndex: -1, xfrmIndex: -1}
	}
	return sec, nil
}
