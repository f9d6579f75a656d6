package lvb

import "fmt"

// FileHeader is the fixed 32-byte header at the start of every container.
// Bytes 16-31 are reserved.
type FileHeader struct {
	Magic    Magic
	FileSize uint32
	Version  uint32
	Hash     uint32 // purpose unknown, carried verbatim
}

// Modern reports whether the container uses the modern info layout.
func (h FileHeader) Modern() bool {
	return h.Version >= ModernVersion
}

func decodeFileHeader(data []byte) (FileHeader, error) {
	if len(data) < fileHeaderSize {
		return FileHeader{}, fmt.Errorf("%w: buffer shorter than %d-byte header", ErrMalformedHeader, fileHeaderSize)
	}
	var h FileHeader
	copy(h.Magic[:], data[:4])
	if h.Magic.String() != MagicLVLB {
		return FileHeader{}, fmt.Errorf("%w: signature %q", ErrMalformedHeader, h.Magic.String())
	}
	h.FileSize = u32(data, 4)
	h.Version = u32(data, 8)
	h.Hash = u32(data, 12)
	if int64(h.FileSize) > int64(len(data)) {
		return FileHeader{}, fmt.Errorf("%w: declared size %d exceeds buffer (%d bytes)", ErrMalformedHeader, h.FileSize, len(data))
	}
	if h.FileSize < fileHeaderSize {
		return FileHeader{}, fmt.Errorf("%w: declared size %d smaller than header", ErrMalformedHeader, h.FileSize)
	}
	return h, nil
}

// sectionHeader is the fixed 32-byte header at the start of every section.
// Bytes 24-31 are reserved.
type sectionHeader struct {
	magic     Magic
	size      uint32
	version   uint32
	count     uint32
	entrySize uint32
	infoBase  uint32
}

func decodeSectionHeader(data []byte, off int) (sectionHeader, error) {
	if off < 0 || off+sectionHeaderSize > len(data) {
		return sectionHeader{}, fmt.Errorf("%w: section header at %d past buffer end", ErrCorruptSection, off)
	}
	var h sectionHeader
	copy(h.magic[:], data[off:off+4])
	h.size = u32(data, off+4)
	h.version = u32(data, off+8)
	h.count = u32(data, off+12)
	h.entrySize = u32(data, off+16)
	h.infoBase = u32(data, off+20)
	return h, nil
}
