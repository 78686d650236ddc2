package intern

import "cmp"

type rbColor bool

const (
	red   rbColor = true
	black rbColor = false
)

type rbNode[K cmp.Ordered, V any] struct {
	key         K
	value       V
	color       rbColor
	left, right *rbNode[K, V]
}

// RBTree is a red-black tree ordered by key, used as the per-bucket ordered
// structure inside Dictionary (spec.md §6: "a dictionary keyed by (len,
// bytes) via a bucket array of ordered trees, so that ordered iteration is
// possible").
type RBTree[K cmp.Ordered, V any] struct {
	root *rbNode[K, V]
	size int
}

// NewRBTree creates an empty red-black tree.
func NewRBTree[K cmp.Ordered, V any]() *RBTree[K, V] {
	return &RBTree[K, V]{}
}

// Len returns the number of entries in the tree.
func (t *RBTree[K, V]) Len() int {
	return t.size
}

// Get looks up a key, returning its value and whether it was found.
func (t *RBTree[K, V]) Get(key K) (V, bool) {
	n := t.root
	for n != nil {
		switch {
		case key < n.key:
			n = n.left
		case key > n.key:
			n = n.right
		default:
			return n.value, true
		}
	}

	var zero V
	return zero, false
}

// Put inserts or updates the value for key. Returns true if key was newly
// inserted.
func (t *RBTree[K, V]) Put(key K, value V) bool {
	var inserted bool
	t.root, inserted = t.insert(t.root, key, value)
	t.root.color = black
	if inserted {
		t.size++
	}
	return inserted
}

func (t *RBTree[K, V]) insert(n *rbNode[K, V], key K, value V) (*rbNode[K, V], bool) {
	if n == nil {
		return &rbNode[K, V]{key: key, value: value, color: red}, true
	}

	var inserted bool

	switch {
	case key < n.key:
		n.left, inserted = t.insert(n.left, key, value)
	case key > n.key:
		n.right, inserted = t.insert(n.right, key, value)
	default:
		n.value = value
		return n, false
	}

	if isRed(n.right) && !isRed(n.left) {
		n = rotateLeft(n)
	}
	if isRed(n.left) && isRed(n.left.left) {
		n = rotateRight(n)
	}
	if isRed(n.left) && isRed(n.right) {
		flipColors(n)
	}

	return n, inserted
}

// Each visits every entry in ascending key order.
func (t *RBTree[K, V]) Each(fn func(key K, value V)) {
	inorder(t.root, fn)
}

func inorder[K cmp.Ordered, V any](n *rbNode[K, V], fn func(K, V)) {
	if n == nil {
		return
	}

	inorder(n.left, fn)
	fn(n.key, n.value)
	inorder(n.right, fn)
}

func isRed[K cmp.Ordered, V any](n *rbNode[K, V]) bool {
	return n != nil && n.color == red
}

func rotateLeft[K cmp.Ordered, V any](n *rbNode[K, V]) *rbNode[K, V] {
	x := n.right
	n.right = x.left
	x.left = n
	x.color = n.color
	n.color = red
	return x
}

func rotateRight[K cmp.Ordered, V any](n *rbNode[K, V]) *rbNode[K, V] {
	x := n.left
	n.left = x.right
	x.right = n
	x.color = n.color
	n.color = red
	return x
}

func flipColors[K cmp.Ordered, V any](n *rbNode[K, V]) {
	n.color = !n.color
	n.left.color = !n.left.color
	n.right.color = !n.right.color
}
