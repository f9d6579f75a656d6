package lvb

import (
	"encoding/binary"
	"math"
)

// All LVB fields are little-endian. The whole buffer is resident, so the
// readers index slices directly instead of wrapping an io.Reader.

func u16(b []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(b[off:])
}

func u32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off:])
}

func f32(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}
