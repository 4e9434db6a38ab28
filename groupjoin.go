package orderedstreams

import (
	"context"

	"golang.org/x/exp/constraints"
)

// GroupJoinerFunc combines an outer element with the producer of its matching
// inner elements into a result element.
//
// The inner producer is a single-use view over the join's shared inner
// sequence. It must be drained before the next element of the join's output
// is pulled; see the package documentation.
type GroupJoinerFunc[O any, I any, R any] func(ctx context.Context, cancel context.CancelCauseFunc, outer O, inner ProducerFunc[I]) R

// GroupJoin returns a producer that produces, for each outer element, the
// result of joining it with the run of inner elements whose key equals the
// outer element's key.
//
// Both inputs must be non-decreasing with respect to the extracted key; see
// the package documentation. A nil eq means == on K. A nil producer, key
// extractor, or joiner panics immediately.
//
// For each outer element, inner elements are discarded until one matches the
// key. An outer key with no inner elements at all therefore discards the rest
// of the inner sequence; when that can happen, use GroupJoinOrdered, whose
// comparator bounds the skip.
func GroupJoin[O any, I any, K comparable, R any](outer ProducerFunc[O], inner ProducerFunc[I], outerKey Function[O, K], innerKey Function[I, K], join GroupJoinerFunc[O, I, R], eq EqualFunc[K]) ProducerFunc[R] {
	validateGroupJoin(outer, inner, outerKey, innerKey, join)

	if eq == nil {
		eq = func(a K, b K) bool { return a == b }
	}

	return groupJoin(outer, inner, outerKey, join, func(innerCur *cursor[I], key K) ProducerFunc[I] {
		return innerCur.takeRun(func(elem I) bool {
			return eq(key, innerKey(elem))
		})
	})
}

// GroupJoinOrdered is GroupJoin with a three-way comparator in place of the
// equality test. The run for each outer element discards exactly the inner
// elements whose key compares less than the outer key, so outer keys with no
// matches leave the rest of the inner sequence intact.
//
// A nil cmp means the natural ordering of K.
func GroupJoinOrdered[O any, I any, K constraints.Ordered, R any](outer ProducerFunc[O], inner ProducerFunc[I], outerKey Function[O, K], innerKey Function[I, K], join GroupJoinerFunc[O, I, R], cmp CompareFunc[K]) ProducerFunc[R] {
	validateGroupJoin(outer, inner, outerKey, innerKey, join)

	if cmp == nil {
		cmp = Natural[K]()
	}

	return groupJoin(outer, inner, outerKey, join, func(innerCur *cursor[I], key K) ProducerFunc[I] {
		return innerCur.takeRunCompare(func(elem I) int {
			return cmp(innerKey(elem), key)
		})
	})
}

// groupJoin consumes the outer sequence one element at a time, pairing each
// element with a run bound to the shared inner cursor. runFor builds the run
// producer for the current outer key; the run is the only thing that advances
// the inner cursor, and only when the consumer drains it. Runs the consumer
// never starts are covered by the next run's skip phase.
func groupJoin[O any, I any, K any, R any](outer ProducerFunc[O], inner ProducerFunc[I], outerKey Function[O, K], join GroupJoinerFunc[O, I, R], runFor func(innerCur *cursor[I], key K) ProducerFunc[I]) ProducerFunc[R] {
	return func(ctx context.Context, cancel context.CancelCauseFunc) <-chan R {
		prodCtx, cancelProd := context.WithCancelCause(ctx)

		outerCh := outer(prodCtx, cancel)
		innerCh := inner(prodCtx, cancel)

		outCh := make(chan R)

		go func() {
			defer cancelProd(nil)

			defer close(outCh)

			innerCur := newCursor(innerCh)

			for elem := range outerCh {
				run := runFor(innerCur, outerKey(elem))

				outElem := join(ctx, cancel, elem, run)

				if contextDone(ctx) {
					return
				}

				select {
				case outCh <- outElem:

				case <-ctx.Done():
					return
				}
			}
		}()

		return outCh
	}
}

func validateGroupJoin[O any, I any, K any, R any](outer ProducerFunc[O], inner ProducerFunc[I], outerKey Function[O, K], innerKey Function[I, K], join GroupJoinerFunc[O, I, R]) {
	if outer == nil {
		panic("orderedstreams: nil outer producer")
	}

	if inner == nil {
		panic("orderedstreams: nil inner producer")
	}

	if outerKey == nil {
		panic("orderedstreams: nil outer key extractor")
	}

	if innerKey == nil {
		panic("orderedstreams: nil inner key extractor")
	}

	if join == nil {
		panic("orderedstreams: nil joiner")
	}
}
