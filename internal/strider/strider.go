// Package strider walks a k-dimensional typed numeric buffer
// (table.NDArray) one axis at a time, threading row/column label
// sidecars into the descent the way spec.md's strider does. The flat
// offset of the element under the cursor is always
// `Σ pos[d] · stride(axisOrder[d])`, the data-model invariant from
// spec.md §3 made explicit instead of carried as incremental pointer
// arithmetic.
package strider

import "tabjson/internal/table"

// Strider is the walker state for one table.NDArray. A fresh Strider
// is created at a container's iterator-begin and discarded at its
// iterator-end; it may be handed to an inner value's dispatch instead
// of allocating a new one (spec.md's "strider passthrough") simply by
// returning the same *Strider from a descent step rather than
// stashing it in a mutable slot (Design Notes §9).
type Strider struct {
	arr     table.NDArray
	shape   []int
	strides []int

	// axisOrder[d] is the real axis walked at nesting depth d; reading
	// it in reverse implements transpose (spec.md's "step direction").
	axisOrder []int

	// pos[d] is the current index along axisOrder[d]. Only pos[0..depth]
	// are meaningful at any time.
	pos   []int
	depth int
}

// New begins a strider over arr. transpose reverses the axis walk
// order.
func New(arr table.NDArray, transpose bool) *Strider {
	shape := arr.Shape()
	strides := arr.Strides()
	ndim := len(shape)

	axisOrder := make([]int, ndim)
	for d := 0; d < ndim; d++ {
		if transpose {
			axisOrder[d] = ndim - 1 - d
		} else {
			axisOrder[d] = d
		}
	}

	return &Strider{
		arr:       arr,
		shape:     shape,
		strides:   strides,
		axisOrder: axisOrder,
		pos:       make([]int, ndim),
	}
}

// NDim returns the number of axes.
func (s *Strider) NDim() int { return len(s.shape) }

// AtLeaf reports whether the cursor is on the innermost axis, i.e.
// the next step should materialize scalars rather than descend into
// a nested array.
func (s *Strider) AtLeaf() bool { return s.depth == len(s.shape)-1 }

func (s *Strider) curAxisSize() int { return s.shape[s.axisOrder[s.depth]] }

// NextDescent reports whether another child remains along the
// current depth's axis, and if so descends into it (spec.md §4.3's
// descent phase). It does not itself advance the position at this
// depth — that happens in EndLevel once the child has been fully
// consumed, so that the position while descended still identifies
// the child currently being visited.
func (s *Strider) NextDescent() bool {
	if s.pos[s.depth] >= s.curAxisSize() {
		return false
	}
	s.depth++
	s.pos[s.depth] = 0
	return true
}

// NextLeaf reports whether another scalar remains along the current
// (innermost) axis, and if so returns its flat offset and advances
// past it.
func (s *Strider) NextLeaf() (offset int, ok bool) {
	if s.pos[s.depth] >= s.curAxisSize() {
		return 0, false
	}
	offset = s.flatOffset()
	s.pos[s.depth]++
	return offset, true
}

func (s *Strider) flatOffset() int {
	off := 0
	for d := 0; d <= s.depth; d++ {
		off += s.pos[d] * s.strides[s.axisOrder[d]]
	}
	return off
}

// EndLevel pops one descent level and advances the parent's position
// past the child just finished, per spec.md §4.3's End phase.
func (s *Strider) EndLevel() {
	s.depth--
	s.pos[s.depth]++
}

// At returns the element at the given flat offset.
func (s *Strider) At(offset int) any { return s.arr.At(offset) }

// DType returns the array's element type.
func (s *Strider) DType() table.DType { return s.arr.DType() }

// LeafColumnLabel returns the column label for the element just
// produced by NextLeaf, or "" if the array carries none.
func (s *Strider) LeafColumnLabel() string {
	labels := s.arr.ColumnLabels()
	i := s.pos[s.depth] - 1
	if labels == nil || i < 0 || i >= len(labels) {
		return ""
	}
	return labels[i]
}

// OuterRowLabel returns the row label for the child currently being
// visited at depth 0 (the outermost axis), or "" if the array carries
// none. Only meaningful once at least one outer descent has occurred.
func (s *Strider) OuterRowLabel() string {
	labels := s.arr.RowLabels()
	i := s.pos[0]
	if labels == nil || i < 0 || i >= len(labels) {
		return ""
	}
	return labels[i]
}

// Shape exposes the array's shape for invariant checks.
func (s *Strider) Shape() []int { return s.shape }

// LeafCount returns the total number of scalars a full traversal of
// shape will produce: the product of all axis sizes, used by tests to
// check spec.md §8's strider invariant.
func LeafCount(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}
