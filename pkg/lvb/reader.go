package lvb

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// File couples a decoded container with the buffer backing it. Payloads
// alias the buffer, so the container must not be used after Close.
type File struct {
	Data      []byte
	Container *Container
	mmapped   bool
}

// Open maps an LVB file read-only and decodes it. If mmap is unavailable,
// it falls back to ReadAt-based loading. The returned file must be closed
// to release any mapping.
func Open(path string, opts ...Option) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size64 := stat.Size()
	if size64 < 0 || size64 > int64(int(^uint(0)>>1)) {
		// cannot index this file safely as []byte on this architecture.
		return nil, ErrMalformedHeader
	}
	size := int(size64)

	// Prefer mmap where available for zero-copy string and raw payloads.
	data, err := unix.Mmap(
		int(f.Fd()),
		0,
		size,
		unix.PROT_READ,
		unix.MAP_SHARED,
	)
	if err == nil {
		c, decErr := Decode(data, opts...)
		if decErr != nil {
			_ = unix.Munmap(data)
			return nil, decErr
		}
		return &File{Data: data, Container: c, mmapped: true}, nil
	}

	// Fallback path that does not require mmap support.
	data, err = readAllAt(f, size)
	if err != nil {
		return nil, err
	}
	c, err := Decode(data, opts...)
	if err != nil {
		return nil, err
	}
	return &File{Data: data, Container: c}, nil
}

// OpenReaderAt decodes an LVB from a random-access reader without mmap.
func OpenReaderAt(r io.ReaderAt, size int64, opts ...Option) (*File, error) {
	if size < 0 || size > int64(int(^uint(0)>>1)) {
		return nil, ErrMalformedHeader
	}
	data, err := readAllAt(r, int(size))
	if err != nil {
		return nil, err
	}
	c, err := Decode(data, opts...)
	if err != nil {
		return nil, err
	}
	return &File{Data: data, Container: c}, nil
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}

// Close releases the file's resources and any mmap backing.
func (f *File) Close() error {
	if f == nil || f.Data == nil {
		return nil
	}
	var err error
	if f.mmapped {
		err = unix.Munmap(f.Data)
	}
	f.Data = nil
	f.Container = nil
	f.mmapped = false
	return err
}
