package ed

import "fmt"

// NodeAt resolves an ordinal address to its node. Ordinal 0 resolves to
// the sentinel, meaning "before the first line"; ordinals outside
// [0, Len] are invalid. Ordinals are 1-based and derived purely from
// ring position.
//
// Resolution goes through a single cached (ordinal, node) pair,
// initialized to (0, sentinel). The walk starts from whichever known
// point is nearest in hop count: the cached node going forward or
// backward, the sentinel, or the tail. Sequential scans in either
// direction stay on the cache-hit path at O(1) amortized; random access
// never walks more than half the distance from the nearer endpoint.
//
// The cache is a pure optimization: correctness never depends on it.
// Mutations keep it consistent with the shifted numbering (see
// InsertAfter and Remove) rather than invalidating it.
func (r *Registry) NodeAt(ordinal int) (*Node, error) {
	if ordinal < 0 || ordinal > r.count {
		return nil, fmt.Errorf("%w: ordinal %d of %d", ErrInvalidAddress, ordinal, r.count)
	}

	on, lp := r.cachedOrd, r.cachedNode
	if ordinal > on {
		if ordinal <= (on+r.count)>>1 {
			for ; on < ordinal; on++ {
				lp = lp.next
			}
		} else {
			lp = r.head.prev
			for on = r.count; on > ordinal; on-- {
				lp = lp.prev
			}
		}
	} else {
		if ordinal >= on>>1 {
			for ; on > ordinal; on-- {
				lp = lp.prev
			}
		} else {
			lp = &r.head
			for on = 0; on < ordinal; on++ {
				lp = lp.next
			}
		}
	}

	r.cachedOrd = ordinal
	r.cachedNode = lp
	return lp, nil
}
