package ed

import "fmt"

// Registry is the ordered, doubly linked sequence of line descriptors
// representing the buffer's current line order. A sentinel node closes
// the sequence into a ring: it stands for position 0 (before the first
// line) and position count+1 at the same time, and never holds a
// descriptor. The ring shape makes insertion and traversal uniform, no
// nil checks at either end.
//
// The registry is single-owner and not safe for concurrent use; every
// node in the ring belongs to it alone.
type Registry struct {
	head  Node // sentinel
	count int

	// Single-slot address cache, see NodeAt in address.go.
	cachedOrd  int
	cachedNode *Node
}

// NewRegistry returns a registry holding only the sentinel.
func NewRegistry() *Registry {
	r := &Registry{}
	r.head.prev = &r.head
	r.head.next = &r.head
	r.cachedNode = &r.head
	return r
}

// Len returns the number of lines in the registry.
func (r *Registry) Len() int {
	return r.count
}

// Sentinel returns the ring's sentinel node, the resolution of
// ordinal 0.
func (r *Registry) Sentinel() *Node {
	return &r.head
}

// InsertAfter links a new node holding d immediately after the node at
// the given ordinal; ordinal 0 inserts before the first line. Every
// following line shifts up by one ordinal, implicitly via ring order.
//
// The insertion point is resolved before anything is mutated, so the
// cached pair is taken while the numbering it was built under still
// holds. Afterwards the new node becomes the cached pair, which keeps
// sequential appends on the O(1) path.
func (r *Registry) InsertAfter(ordinal int, d Descriptor) (*Node, error) {
	p, err := r.NodeAt(ordinal)
	if err != nil {
		return nil, err
	}

	n := &Node{desc: d}
	n.linkAfter(p)
	r.count++

	r.cachedOrd = ordinal + 1
	r.cachedNode = n
	return n, nil
}

// Remove unlinks the node at the given ordinal and returns its
// descriptor. The cache re-anchors on the predecessor, whose ordinal
// the removal does not change.
func (r *Registry) Remove(ordinal int) (Descriptor, error) {
	if ordinal < 1 || ordinal > r.count {
		return Descriptor{}, fmt.Errorf("%w: ordinal %d of %d", ErrInvalidAddress, ordinal, r.count)
	}

	n, err := r.NodeAt(ordinal)
	if err != nil {
		return Descriptor{}, err
	}

	prev := n.prev
	n.unlink()
	r.count--

	r.cachedOrd = ordinal - 1
	r.cachedNode = prev
	return n.desc, nil
}

// OrdinalOf walks forward from the sentinel counting hops until n is
// found. The sentinel itself is ordinal 0. A node that is not linked
// into this ring is detected when the walk wraps back to the sentinel
// after one or more hops without a match.
func (r *Registry) OrdinalOf(n *Node) (int, error) {
	cp := &r.head
	ord := 0
	for cp != n {
		cp = cp.next
		if cp == &r.head {
			break
		}
		ord++
	}
	if ord > 0 && cp == &r.head {
		return 0, fmt.Errorf("%w: node not in registry", ErrInvalidAddress)
	}
	return ord, nil
}
