package ed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fillRegistry appends n lines with distinguishable descriptors and
// returns the nodes in insertion order.
func fillRegistry(t *testing.T, r *Registry, n int) []*Node {
	t.Helper()
	nodes := make([]*Node, 0, n)
	for i := 0; i < n; i++ {
		node, err := r.InsertAfter(i, Descriptor{Off: int64(i * 10), Len: i})
		require.NoError(t, err)
		nodes = append(nodes, node)
	}
	return nodes
}

func TestSequentialAppendOrdinals(t *testing.T) {
	r := NewRegistry()
	nodes := fillRegistry(t, r, 10)

	assert.Equal(t, 10, r.Len())
	for i, n := range nodes {
		ord, err := r.OrdinalOf(n)
		require.NoError(t, err)
		assert.Equal(t, i+1, ord)
	}
}

func TestOrdinalBijection(t *testing.T) {
	r := NewRegistry()
	nodes := fillRegistry(t, r, 25)

	for ord := 1; ord <= r.Len(); ord++ {
		n, err := r.NodeAt(ord)
		require.NoError(t, err)

		back, err := r.OrdinalOf(n)
		require.NoError(t, err)
		assert.Equal(t, ord, back)
	}

	for _, n := range nodes {
		ord, err := r.OrdinalOf(n)
		require.NoError(t, err)

		got, err := r.NodeAt(ord)
		require.NoError(t, err)
		assert.Same(t, n, got)
	}
}

func TestInsertAfterMiddle(t *testing.T) {
	r := NewRegistry()
	fillRegistry(t, r, 3) // offsets 0, 10, 20

	x, err := r.InsertAfter(1, Descriptor{Off: 99, Len: 1})
	require.NoError(t, err)
	require.Equal(t, 4, r.Len())

	ord, err := r.OrdinalOf(x)
	require.NoError(t, err)
	assert.Equal(t, 2, ord)

	wantOffs := []int64{0, 99, 10, 20}
	for i, want := range wantOffs {
		n, err := r.NodeAt(i + 1)
		require.NoError(t, err)
		assert.Equal(t, want, n.Desc().Off, "ordinal %d", i+1)
	}
}

func TestInsertBeforeFirst(t *testing.T) {
	r := NewRegistry()
	fillRegistry(t, r, 2)

	x, err := r.InsertAfter(0, Descriptor{Off: 7, Len: 1})
	require.NoError(t, err)

	ord, err := r.OrdinalOf(x)
	require.NoError(t, err)
	assert.Equal(t, 1, ord)

	first, err := r.NodeAt(1)
	require.NoError(t, err)
	assert.Same(t, x, first)
}

func TestInsertAfterInvalid(t *testing.T) {
	r := NewRegistry()
	fillRegistry(t, r, 2)

	_, err := r.InsertAfter(3, Descriptor{})
	assert.ErrorIs(t, err, ErrInvalidAddress)

	_, err = r.InsertAfter(-1, Descriptor{})
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestRemove(t *testing.T) {
	r := NewRegistry()
	fillRegistry(t, r, 3) // offsets 0, 10, 20

	d, err := r.Remove(2)
	require.NoError(t, err)
	assert.Equal(t, int64(10), d.Off)
	assert.Equal(t, 2, r.Len())

	wantOffs := []int64{0, 20}
	for i, want := range wantOffs {
		n, err := r.NodeAt(i + 1)
		require.NoError(t, err)
		assert.Equal(t, want, n.Desc().Off)
	}

	_, err = r.Remove(0)
	assert.ErrorIs(t, err, ErrInvalidAddress)
	_, err = r.Remove(3)
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestOrdinalOfDetachedNode(t *testing.T) {
	r := NewRegistry()
	nodes := fillRegistry(t, r, 3)

	victim, err := r.NodeAt(2)
	require.NoError(t, err)
	_, err = r.Remove(2)
	require.NoError(t, err)

	_, err = r.OrdinalOf(victim)
	assert.ErrorIs(t, err, ErrInvalidAddress)

	// A node from a different registry is just as unreachable.
	other := NewRegistry()
	foreign, err := other.InsertAfter(0, Descriptor{Off: 1})
	require.NoError(t, err)
	_, err = r.OrdinalOf(foreign)
	assert.ErrorIs(t, err, ErrInvalidAddress)

	// Surviving nodes keep contiguous ordinals.
	ord, err := r.OrdinalOf(nodes[2])
	require.NoError(t, err)
	assert.Equal(t, 2, ord)
}

func TestNodeAtBounds(t *testing.T) {
	r := NewRegistry()
	fillRegistry(t, r, 2)

	n, err := r.NodeAt(0)
	require.NoError(t, err)
	assert.Same(t, r.Sentinel(), n)

	_, err = r.NodeAt(-1)
	assert.ErrorIs(t, err, ErrInvalidAddress)
	_, err = r.NodeAt(3)
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestSentinelOrdinalIsZero(t *testing.T) {
	r := NewRegistry()
	fillRegistry(t, r, 2)

	ord, err := r.OrdinalOf(r.Sentinel())
	require.NoError(t, err)
	assert.Equal(t, 0, ord)
}

func TestMirrorTraversal(t *testing.T) {
	r := NewRegistry()
	fillRegistry(t, r, 7)

	var forward []int64
	for n := r.Sentinel().next; n != r.Sentinel(); n = n.next {
		forward = append(forward, n.Desc().Off)
	}

	var backward []int64
	for n := r.Sentinel().prev; n != r.Sentinel(); n = n.prev {
		backward = append(backward, n.Desc().Off)
	}

	require.Len(t, forward, r.Len())
	require.Len(t, backward, r.Len())
	for i := range forward {
		assert.Equal(t, forward[i], backward[len(backward)-1-i])
	}
}
