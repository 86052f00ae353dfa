package ed

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Options configures a Buffer.
type Options struct {
	// Dir overrides the scratch directory, see StoreOptions.Dir.
	Dir string

	// Logger receives debug events for the session. nil disables logging.
	Logger *zap.Logger
}

// Buffer ties the scratch store, the line registry and the current
// address into one editing session. It is the context object every
// operation goes through; there is no process-wide state, and a session
// is single-threaded by contract.
type Buffer struct {
	id    string
	store *Store
	reg   *Registry
	addr  int // current line ordinal, 0 when the buffer is empty
	log   *zap.Logger
	exit  func(int)
}

// New opens a scratch store and returns a buffer holding no lines. A
// store that cannot be opened is unrecoverable for the session; whether
// that terminates the process is the caller's call.
func New(opts Options) (*Buffer, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	id := uuid.NewString()
	log = log.With(zap.String("session", id))

	store, err := OpenStore(StoreOptions{Dir: opts.Dir, Logger: log})
	if err != nil {
		return nil, err
	}

	return &Buffer{
		id:    id,
		store: store,
		reg:   NewRegistry(),
		log:   log,
		exit:  os.Exit,
	}, nil
}

// ID returns the session identity carried in log events.
func (b *Buffer) ID() string {
	return b.id
}

// Store returns the session's scratch store.
func (b *Buffer) Store() *Store {
	return b.store
}

// Registry returns the session's line registry.
func (b *Buffer) Registry() *Registry {
	return b.reg
}

// Addr returns the current line ordinal, 0 when before the first line.
func (b *Buffer) Addr() int {
	return b.addr
}

// LastAddr returns the ordinal of the last line, which equals the line
// count.
func (b *Buffer) LastAddr() int {
	return b.reg.Len()
}

// SetAddr moves the current line. Ordinal 0 means before the first
// line.
func (b *Buffer) SetAddr(ordinal int) error {
	if ordinal < 0 || ordinal > b.reg.Len() {
		return fmt.Errorf("%w: ordinal %d of %d", ErrInvalidAddress, ordinal, b.reg.Len())
	}
	b.addr = ordinal
	return nil
}

// Append stores text (terminator excluded) in the scratch file and
// links it after the current line. The new line becomes current. A
// store failure leaves the registry untouched.
func (b *Buffer) Append(text string) (*Node, error) {
	d, err := b.store.Append([]byte(text))
	if err != nil {
		return nil, err
	}

	n, err := b.reg.InsertAfter(b.addr, d)
	if err != nil {
		return nil, err
	}
	b.addr++
	return n, nil
}

// Line returns the text of the line at the given ordinal. Unlike
// NodeAt, ordinal 0 is invalid here: the sentinel holds no content.
func (b *Buffer) Line(ordinal int) (string, error) {
	if ordinal < 1 || ordinal > b.reg.Len() {
		return "", fmt.Errorf("%w: ordinal %d of %d", ErrInvalidAddress, ordinal, b.reg.Len())
	}
	n, err := b.reg.NodeAt(ordinal)
	if err != nil {
		return "", err
	}
	return b.Text(n)
}

// Text reads the bytes a node's descriptor points at. The terminator is
// the caller's convention and is not part of the stored bytes.
func (b *Buffer) Text(n *Node) (string, error) {
	data, err := b.store.Read(n.Desc())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Delete removes the lines from through to, inclusive. The line before
// the removed range becomes current. The descriptors' bytes stay in the
// scratch file; only the nodes go away.
func (b *Buffer) Delete(from, to int) error {
	if from < 1 || to > b.reg.Len() || from > to {
		return fmt.Errorf("%w: range %d,%d of %d", ErrInvalidAddress, from, to, b.reg.Len())
	}

	// Back to front, so the ordinals still to be removed never shift.
	for i := to; i >= from; i-- {
		if _, err := b.reg.Remove(i); err != nil {
			return err
		}
	}
	b.addr = from - 1
	return nil
}

// Close tears the session down and removes the scratch file.
func (b *Buffer) Close() error {
	b.log.Debug("closing buffer", zap.Int("lines", b.reg.Len()))
	return b.store.Close()
}

// EmergencyExit closes the scratch file without requiring a clean flush,
// removes it, and terminates the process with status. Fatal-error and
// signal paths call this so no scratch file is ever leaked.
func (b *Buffer) EmergencyExit(status int) {
	if b.store != nil && b.store.f != nil {
		name := b.store.f.Name()
		err := multierr.Append(b.store.f.Close(), os.Remove(name))
		b.store.f = nil
		b.log.Debug("emergency exit", zap.Int("status", status), zap.Error(err))
	}
	b.exit(status)
}
