// Package orderedstreams provides lazy stream operations for sequences that
// are ordered by a key, most notably streaming merge joins.
//
// Streams are constructed by creating an initial ProducerFunc, which can produce
// elements from slices, channels, or any arbitrary source. Elements may then be
// operated upon using mapping, filtering, and joining operations (which are
// intermediate ProducerFuncs), and are finally consumed by ConsumerFuncs.
//
// The join operators (InnerJoin, LeftJoin, RightJoin, FullJoin, GroupJoin,
// GroupJoinOrdered) implement a sort-merge join: both inputs are walked in a
// single synchronized forward pass, each element is read at most once, and
// neither input is ever buffered beyond its current element. This requires
// that both inputs are non-decreasing with respect to the extracted key under
// the comparator in use. The engine does not verify this; unordered inputs
// produce incorrect output, not an error.
//
// The inner sequence handed to a group joiner is a single-use view over a
// shared forward-only cursor. It must be drained before the next element of
// the join's output is pulled; consuming runs out of order, or holding on to
// a run past the next pull, yields wrong results.
//
// Stream operations will receive a context.CancelCauseFunc. Calling the cancel
// function will cancel the entire stream, thus short-circuiting processing
// elements. Producer implementations must be prepared to be canceled at any
// time by checking the provided context.Context. Canceling the context is also
// how a partially consumed join releases both of its inputs.
//
// Streams are always lazy, meaning that producers will produce a new element
// only after a downstream producer or consumer has consumed the previous element.
package orderedstreams
