package ed

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// MaxLineLen bounds the byte length of a single line, terminator
// excluded. A line of MaxLineLen bytes or more is rejected before
// anything is written. The bound keeps descriptor lengths compact and
// caps the buffer needed to read back any one line.
const MaxLineLen = 8192

// posUnknown marks the cursor as out of sync with the real file
// position. The next operation must reseek instead of trusting it.
const posUnknown = -1

// StoreOptions configures a scratch store.
type StoreOptions struct {
	// Dir is the directory for the scratch file. Empty means $TMPDIR
	// (trailing separators stripped), falling back to the system default
	// temp directory.
	Dir string

	// Logger receives debug events. nil disables logging.
	Logger *zap.Logger
}

// Store is the transient on-disk backing store for line text. It owns
// the scratch file, a cursor caching the file's real position, and a
// flag forcing the next write to seek to end-of-file.
//
// Appends are normally sequential, so the store skips the end-of-file
// seek when the cursor was left in place by a previous append. Any read
// leaves the cursor mid-file and sets the flag so the next append
// repositions first.
type Store struct {
	f         *os.File
	pos       int64
	seekWrite bool
	log       *zap.Logger
}

// OpenStore creates a uniquely named scratch file with owner-only
// permissions and returns a store positioned at offset zero. No partial
// file is left behind on failure.
func OpenStore(opts StoreOptions) (*Store, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	dir := opts.Dir
	if dir == "" {
		dir = os.Getenv("TMPDIR")
	}
	dir = strings.TrimRight(dir, string(os.PathSeparator))
	if dir == "" {
		dir = os.TempDir()
	}

	f, err := os.CreateTemp(dir, "ed.*")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	log.Debug("scratch store opened", zap.String("path", f.Name()))
	return &Store{f: f, log: log}, nil
}

// Name returns the path of the scratch file, or empty after Close.
func (s *Store) Name() string {
	if s.f == nil {
		return ""
	}
	return s.f.Name()
}

// Read returns the d.Len bytes at d.Off. Reading leaves the cursor
// mid-file, so it always forces the next Append to reseek. The seek is
// skipped when the cursor already sits at d.Off.
func (s *Store) Read(d Descriptor) ([]byte, error) {
	if s.f == nil {
		return nil, fmt.Errorf("%w: store is closed", ErrStoreUnavailable)
	}
	if d.Len < 0 || d.Len > MaxLineLen {
		return nil, fmt.Errorf("%w: descriptor length %d", ErrOutOfMemory, d.Len)
	}

	s.seekWrite = true
	if s.pos != d.Off {
		if _, err := s.f.Seek(d.Off, io.SeekStart); err != nil {
			s.pos = posUnknown
			return nil, fmt.Errorf("%w: cannot seek scratch file: %v", ErrIOFailure, err)
		}
		s.pos = d.Off
	}

	buf := make([]byte, d.Len)
	if _, err := io.ReadFull(s.f, buf); err != nil {
		s.pos = posUnknown
		return nil, fmt.Errorf("%w: cannot read scratch file: %v", ErrIOFailure, err)
	}
	s.pos += int64(d.Len)
	return buf, nil
}

// Append writes text (terminator excluded) at end-of-file and returns
// its descriptor. The end-of-file seek only happens when a read moved
// the cursor or a failed operation left it unknown.
func (s *Store) Append(text []byte) (Descriptor, error) {
	if s.f == nil {
		return Descriptor{}, fmt.Errorf("%w: store is closed", ErrStoreUnavailable)
	}
	if len(text) >= MaxLineLen {
		return Descriptor{}, fmt.Errorf("%w: %d bytes", ErrLineTooLong, len(text))
	}

	if s.seekWrite || s.pos == posUnknown {
		end, err := s.f.Seek(0, io.SeekEnd)
		if err != nil {
			s.pos = posUnknown
			return Descriptor{}, fmt.Errorf("%w: cannot seek scratch file: %v", ErrIOFailure, err)
		}
		s.pos = end
		s.seekWrite = false
	}

	d := Descriptor{Off: s.pos, Len: len(text)}
	if _, err := s.f.Write(text); err != nil {
		s.pos = posUnknown
		return Descriptor{}, fmt.Errorf("%w: cannot write scratch file: %v", ErrIOFailure, err)
	}
	s.pos += int64(len(text))
	return d, nil
}

// Close closes the scratch file and removes it from the filesystem.
// The cursor and seek flag are reset whatever the outcome, and removal
// is attempted even when the close itself fails.
func (s *Store) Close() error {
	s.pos = 0
	s.seekWrite = false
	if s.f == nil {
		return nil
	}

	name := s.f.Name()
	var err error
	if cerr := s.f.Close(); cerr != nil {
		err = fmt.Errorf("%w: close %s: %v", ErrStoreUnavailable, name, cerr)
	}
	if rerr := os.Remove(name); rerr != nil && !os.IsNotExist(rerr) {
		err = multierr.Append(err, fmt.Errorf("%w: remove %s: %v", ErrStoreUnavailable, name, rerr))
	}
	s.f = nil

	s.log.Debug("scratch store closed", zap.String("path", name), zap.Error(err))
	return err
}
