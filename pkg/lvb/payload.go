package lvb

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// Payload is the decoded value of one section entry. The set of variants
// is closed: the four built-in section types, the legacy info layout and
// Raw for everything without a registered decoder.
type Payload interface {
	isPayload()
}

// Info is one modern-format object info record.
type Info struct {
	BdatID         uint32
	TransformIndex uint32
	Shape          uint16
	SequentialID   uint16
	HashID         uint32
}

// LegacyInfo is one pre-version-5 object info record. It carries a
// string-table name offset instead of hash and bdat ids.
type LegacyInfo struct {
	NameID         uint32
	TransformIndex uint32
	Shape          uint32
}

// Transform is a row-major 4x4 placement matrix.
type Transform struct {
	Matrix [16]float32
}

// Strings is the raw string-table blob of a STRG section.
type Strings struct {
	Blob []byte
}

// Debug is one DEBI record mapping a gimmick hash id to a string-table
// name offset. GimmickID is generally the murmur3 hash of the gimmick's
// string name; TypeID is shared between gimmicks of the same kind.
type Debug struct {
	GimmickID uint32
	TypeID    uint32
	StringID  uint32
	ParentID  uint32
}

// Raw holds the undecoded bytes of an entry whose magic has no
// registered decoder.
type Raw struct {
	Data []byte
}

// ExtPayload marks payload types defined by extension resolvers. Embed
// it to satisfy Payload from outside this package.
type ExtPayload struct{}

func (ExtPayload) isPayload() {}

func (*Info) isPayload()       {}
func (*LegacyInfo) isPayload() {}
func (*Transform) isPayload()  {}
func (*Strings) isPayload()    {}
func (*Debug) isPayload()      {}
func (*Raw) isPayload()        {}

// Fixed-layout decoders. Every decoder reads only from the entry slice
// it is given; a slice shorter than the layout is a corrupt section.

func decodeInfo(entry []byte) (Payload, error) {
	if len(entry) < 16 {
		return nil, fmt.Errorf("%w: info entry is %d bytes, need 16", ErrCorruptSection, len(entry))
	}
	return &Info{
		BdatID:         u32(entry, 0),
		TransformIndex: u32(entry, 4),
		Shape:          u16(entry, 8),
		SequentialID:   u16(entry, 10),
		HashID:         u32(entry, 12),
	}, nil
}

func decodeLegacyInfo(entry []byte) (Payload, error) {
	if len(entry) < 16 {
		return nil, fmt.Errorf("%w: legacy info entry is %d bytes, need 16", ErrCorruptSection, len(entry))
	}
	return &LegacyInfo{
		NameID:         u32(entry, 0),
		TransformIndex: u32(entry, 8),
		Shape:          u32(entry, 12),
	}, nil
}

func decodeTransform(entry []byte) (Payload, error) {
	if len(entry) < 64 {
		return nil, fmt.Errorf("%w: transform entry is %d bytes, need 64", ErrCorruptSection, len(entry))
	}
	var t Transform
	for i := range t.Matrix {
		t.Matrix[i] = f32(entry, i*4)
	}
	return &t, nil
}

func decodeDebug(entry []byte) (Payload, error) {
	if len(entry) < 16 {
		return nil, fmt.Errorf("%w: debug entry is %d bytes, need 16", ErrCorruptSection, len(entry))
	}
	return &Debug{
		GimmickID: u32(entry, 0),
		TypeID:    u32(entry, 4),
		StringID:  u32(entry, 8),
		ParentID:  u32(entry, 12),
	}, nil
}

func decodeStrings(entry []byte) (Payload, error) {
	return &Strings{Blob: entry}, nil
}

func decodeRaw(entry []byte) (Payload, error) {
	return &Raw{Data: entry}, nil
}

// Read returns the null-terminated UTF-8 string starting at offset.
func (s *Strings) Read(offset uint32) (string, error) {
	if int64(offset) >= int64(len(s.Blob)) {
		return "", fmt.Errorf("%w: offset %d, blob is %d bytes", ErrOffsetOutOfRange, offset, len(s.Blob))
	}
	rest := s.Blob[offset:]
	end := bytes.IndexByte(rest, 0)
	if end < 0 {
		return "", fmt.Errorf("%w: no terminator after offset %d", ErrOffsetOutOfRange, offset)
	}
	raw := rest[:end]
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: string at offset %d", ErrInvalidEncoding, offset)
	}
	return string(raw), nil
}
