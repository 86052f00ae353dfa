// Package ed implements the line-storage engine underlying a
// line-oriented text editor: a transient on-disk scratch store for line
// text, an ordered registry of line descriptors linked in edit order,
// and cached ordinal-to-node address resolution.
package ed

import "errors"

// Scratch store errors
var (
	// ErrStoreUnavailable indicates the scratch file could not be created,
	// opened, closed or removed.
	ErrStoreUnavailable = errors.New("scratch store unavailable")

	// ErrIOFailure indicates a seek, read or write on the scratch file
	// failed or came up short. The store's cursor is marked unknown so the
	// next operation reseeks instead of trusting a corrupted offset.
	ErrIOFailure = errors.New("scratch file i/o failed")

	// ErrLineTooLong indicates a line of MaxLineLen bytes or more was
	// rejected before anything was written.
	ErrLineTooLong = errors.New("line too long")

	// ErrOutOfMemory indicates an operation would need a buffer beyond the
	// line length bound, which only happens for corrupt or foreign
	// descriptors.
	ErrOutOfMemory = errors.New("out of memory")
)

// Addressing errors
var (
	// ErrInvalidAddress indicates an ordinal outside the valid range or a
	// node that is not linked into the registry.
	ErrInvalidAddress = errors.New("invalid address")
)
