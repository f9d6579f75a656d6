package lvb

import "errors"

var (
	// ErrMalformedHeader reports a missing LVLB signature or a file
	// header whose declared size cannot fit the buffer.
	ErrMalformedHeader = errors.New("malformed LVB header")

	// ErrCorruptSection reports section geometry that is inconsistent
	// with its declared size. Offsets downstream of a corrupt section
	// are unrecoverable, so the whole decode fails.
	ErrCorruptSection = errors.New("corrupt LVB section")

	// ErrMissingSection reports the absence of a required special
	// section (INFO, XFRM or STRG).
	ErrMissingSection = errors.New("missing required LVB section")

	// ErrUnresolvedReference reports an info or transform index that
	// points outside the target section's entry list.
	ErrUnresolvedReference = errors.New("unresolved LVB reference")

	// ErrInvalidEncoding reports string-table bytes that are not valid
	// UTF-8.
	ErrInvalidEncoding = errors.New("invalid string encoding")

	// ErrOffsetOutOfRange reports a string-table read whose offset or
	// terminator lies outside the blob.
	ErrOffsetOutOfRange = errors.New("string offset out of range")
)
