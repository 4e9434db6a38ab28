package orderedstreams

import "golang.org/x/exp/constraints"

// CompareFunc is a three-way comparison of two keys.
// It returns a negative number if a orders before b, zero if the keys are
// equal, and a positive number if a orders after b.
type CompareFunc[K any] func(a K, b K) int

// EqualFunc returns true if two keys are equal.
type EqualFunc[K any] func(a K, b K) bool

// Natural returns a comparator that orders keys by the < operator.
func Natural[K constraints.Ordered]() CompareFunc[K] {
	return func(a K, b K) int {
		switch {
		case a < b:
			return -1

		case a > b:
			return 1

		default:
			return 0
		}
	}
}

// joinType selects which unmatched sides a merge join emits.
type joinType int

const (
	joinInner joinType = iota
	joinLeft
	joinRight
	joinFull
)

// keepsUnmatchedOuter returns true if outer elements without a matching inner
// element are emitted.
func (t joinType) keepsUnmatchedOuter() bool {
	return t == joinLeft || t == joinFull
}

// keepsUnmatchedInner returns true if inner elements without a matching outer
// element are emitted.
func (t joinType) keepsUnmatchedInner() bool {
	return t == joinRight || t == joinFull
}
