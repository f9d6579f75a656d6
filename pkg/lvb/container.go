package lvb

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/spaolacci/murmur3"
)

// Container is a fully decoded LVB file. It owns every section and entry;
// once Decode returns, the graph is immutable and safe for concurrent
// reads.
type Container struct {
	// Version is the container format version from the file header.
	Version uint32
	// Modern reports whether Version selects the modern info layout.
	Modern bool
	// Sections lists the non-special sections in file order.
	Sections []*Section

	info    *Section
	xfrm    *Section
	debug   *Section
	strings *Strings

	byName map[string]*Entry
	byHash map[uint32]*Entry
	byBdat map[uint32]*Entry
}

// Decode builds the object graph from a resident LVB buffer. The buffer
// is treated as read-only and must outlive the container (Raw and Strings
// payloads alias it).
func Decode(data []byte, opts ...Option) (*Container, error) {
	var cfg decodeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	hdr, err := decodeFileHeader(data)
	if err != nil {
		return nil, err
	}
	modern := hdr.Modern()

	// Bytes past the declared total are ignored; no section may reach
	// into them.
	data = data[:hdr.FileSize]

	// Walk the section table. Advancement is driven solely by each
	// section's declared size; decodeSection rejects sizes that cannot
	// make progress or escape the buffer.
	var all []*Section
	total := int(hdr.FileSize)
	for off := fileHeaderSize; off < total; {
		sec, err := decodeSection(data, off, modern, cfg.resolvers)
		if err != nil {
			return nil, err
		}
		all = append(all, sec)
		off += int(sec.Size)
	}

	c := &Container{
		Version: hdr.Version,
		Modern:  modern,
		byName:  make(map[string]*Entry),
		byHash:  make(map[uint32]*Entry),
		byBdat:  make(map[uint32]*Entry),
	}
	if err := c.link(all); err != nil {
		return nil, err
	}
	return c, nil
}

// link sorts the special sections out of the walk result and resolves
// every gimmick entry's cross references.
func (c *Container) link(all []*Section) error {
	var strg *Section
	for _, sec := range all {
		var slot **Section
		switch sec.Magic {
		case MagicInfo:
			slot = &c.info
		case MagicXfrm:
			slot = &c.xfrm
		case MagicDebug:
			slot = &c.debug
		case MagicStrings:
			slot = &strg
		default:
			c.Sections = append(c.Sections, sec)
			continue
		}
		if *slot != nil {
			return fmt.Errorf("%w: duplicate %s section", ErrCorruptSection, sec.Magic)
		}
		*slot = sec
	}

	if c.info == nil {
		return fmt.Errorf("%w: INFO", ErrMissingSection)
	}
	if c.xfrm == nil {
		return fmt.Errorf("%w: XFRM", ErrMissingSection)
	}
	if strg == nil {
		return fmt.Errorf("%w: STRG", ErrMissingSection)
	}
	c.strings = strg.Entries[0].Payload.(*Strings)

	for _, sec := range c.Sections {
		for i := range sec.Entries {
			if err := c.resolve(sec, i); err != nil {
				return err
			}
		}
	}

	// Best-effort debug name overlay. Records pointing at unknown hash
	// ids or broken string offsets are skipped, not errors.
	if c.Modern && c.debug != nil {
		for i := range c.debug.Entries {
			d, ok := c.debug.Entries[i].Payload.(*Debug)
			if !ok {
				continue
			}
			g, ok := c.byHash[d.GimmickID]
			if !ok {
				continue
			}
			if name, err := c.strings.Read(d.StringID); err == nil {
				g.Name = name
			}
		}
	}
	return nil
}

// resolve links entry i of sec to its info and transform records and
// registers it in the lookup indices.
func (c *Container) resolve(sec *Section, i int) error {
	e := &sec.Entries[i]
	idx := int(sec.InfoBase) + i
	if idx >= len(c.info.Entries) {
		return fmt.Errorf("%w: %s entry %d: info index %d, INFO has %d entries",
			ErrUnresolvedReference, sec.Magic, i, idx, len(c.info.Entries))
	}
	e.infoIndex = idx

	var xfrmIdx uint32
	switch info := c.info.Entries[idx].Payload.(type) {
	case *Info:
		xfrmIdx = info.TransformIndex
	case *LegacyInfo:
		xfrmIdx = info.TransformIndex
	default:
		return fmt.Errorf("%w: INFO entry %d is not an info record", ErrCorruptSection, idx)
	}
	if int(xfrmIdx) >= len(c.xfrm.Entries) {
		return fmt.Errorf("%w: %s entry %d: transform index %d, XFRM has %d entries",
			ErrUnresolvedReference, sec.Magic, i, xfrmIdx, len(c.xfrm.Entries))
	}
	e.xfrmIndex = int(xfrmIdx)

	switch info := c.info.Entries[idx].Payload.(type) {
	case *Info:
		c.byHash[info.HashID] = e
		c.byBdat[info.BdatID] = e
	case *LegacyInfo:
		// String-table failures leave the entry unnamed rather than
		// failing the decode.
		name, err := c.strings.Read(info.NameID)
		if err != nil {
			return nil
		}
		e.Name = name
		c.byName[name] = e
	}
	return nil
}

// InfoFor returns the Info or LegacyInfo payload linked to e, or nil for
// entries that were never cross-referenced.
func (c *Container) InfoFor(e *Entry) Payload {
	if e == nil || e.infoIndex < 0 || e.infoIndex >= len(c.info.Entries) {
		return nil
	}
	return c.info.Entries[e.infoIndex].Payload
}

// TransformFor returns the placement matrix linked to e, or nil for
// entries that were never cross-referenced.
func (c *Container) TransformFor(e *Entry) *Transform {
	if e == nil || e.xfrmIndex < 0 || e.xfrmIndex >= len(c.xfrm.Entries) {
		return nil
	}
	t, _ := c.xfrm.Entries[e.xfrmIndex].Payload.(*Transform)
	return t
}

// hashKey matches the CLI spelling of a 32-bit id, e.g. "<DEADBEEF>".
var hashKey = regexp.MustCompile(`^<([0-9A-F]{8})>$`)

// ParseHash extracts a 32-bit id from its "<XXXXXXXX>" spelling.
func ParseHash(s string) (uint32, bool) {
	m := hashKey.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseUint(m[1], 16, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}

// Gimmick looks up an entry by display name or "<XXXXXXXX>" hash key.
// Modern containers index gimmicks by the murmur3 hash of their name, so
// plain names are hashed before the lookup; legacy containers index by
// the string-table name directly.
func (c *Container) Gimmick(key string) (*Entry, bool) {
	if h, ok := ParseHash(key); ok {
		return c.GimmickByHash(h)
	}
	return c.GimmickByName(key)
}

// GimmickByHash looks up a modern-format entry by its info hash id.
func (c *Container) GimmickByHash(hash uint32) (*Entry, bool) {
	e, ok := c.byHash[hash]
	return e, ok
}

// GimmickByName looks up an entry by name.
func (c *Container) GimmickByName(name string) (*Entry, bool) {
	if c.Modern {
		e, ok := c.byHash[murmur3.Sum32([]byte(name))]
		return e, ok
	}
	e, ok := c.byName[name]
	return e, ok
}

// BdatGimmick looks up a modern-format entry by bdat id, spelled either
// as "<XXXXXXXX>" or as a decimal number.
func (c *Container) BdatGimmick(key string) (*Entry, bool) {
	if h, ok := ParseHash(key); ok {
		return c.BdatGimmickByID(h)
	}
	if v, err := strconv.ParseUint(key, 10, 32); err == nil {
		return c.BdatGimmickByID(uint32(v))
	}
	return nil, false
}

// BdatGimmickByID looks up a modern-format entry by its numeric bdat id.
func (c *Container) BdatGimmickByID(id uint32) (*Entry, bool) {
	e, ok := c.byBdat[id]
	return e, ok
}

// Section returns the first non-special section with the given magic, or
// nil if none exists.
func (c *Container) Section(magic string) *Section {
	m, ok := MagicOf(magic)
	if !ok {
		return nil
	}
	for _, sec := range c.Sections {
		if sec.Magic == m {
			return sec
		}
	}
	return nil
}

// Strings returns the container's string table.
func (c *Container) Strings() *Strings {
	return c.strings
}
