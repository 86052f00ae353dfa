package ed

// Descriptor locates one line's text in the scratch store. The stored
// bytes exclude the line terminator. Descriptors are immutable once
// returned by Store.Append: an edit appends new bytes and replaces the
// descriptor, it never overwrites the old bytes in place.
type Descriptor struct {
	// Off is the byte position of the line's text in the scratch file.
	Off int64

	// Len is the byte count of the text, terminator excluded.
	Len int
}

// Node links a Descriptor into the registry's edit-order ring. Nodes
// are owned by their Registry; callers hold them as opaque handles and
// cannot relink them. A node's ordinal is derived from its position in
// the ring, never stored.
type Node struct {
	desc Descriptor
	prev *Node
	next *Node
}

// Desc returns the node's line descriptor. The sentinel node holds the
// zero descriptor.
func (n *Node) Desc() Descriptor {
	return n.desc
}

// linkAfter inserts n immediately after p in the ring.
func (n *Node) linkAfter(p *Node) {
	n.prev = p
	n.next = p.next
	p.next.prev = n
	p.next = n
}

// unlink removes n from the ring and clears its links so a later
// OrdinalOf reports it as detached.
func (n *Node) unlink() {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev = nil
	n.next = nil
}
