package orderedstreams

import (
	"context"

	"golang.org/x/exp/constraints"
)

// JoinerFunc combines an outer and an inner element into a result element.
// outerOK and innerOK report whether the respective side is present; an
// absent side carries the zero value of its type.
type JoinerFunc[O any, I any, R any] func(ctx context.Context, cancel context.CancelCauseFunc, outer O, outerOK bool, inner I, innerOK bool) R

// InnerJoin returns a producer that merge-joins the elements of outer and inner
// on their extracted keys, calling join once per matched pair.
//
// Both inputs must be non-decreasing with respect to the extracted key under
// cmp; see the package documentation. A nil cmp means the natural ordering of K.
// A nil producer, key extractor, or joiner panics immediately.
//
// Keys pair one-to-one: a matched pair advances both inputs, so duplicate keys
// on both sides do not expand into a cross product. To join every duplicate,
// pre-group one side with GroupJoinOrdered and flatten with FlatMap.
func InnerJoin[O any, I any, K constraints.Ordered, R any](outer ProducerFunc[O], inner ProducerFunc[I], outerKey Function[O, K], innerKey Function[I, K], join JoinerFunc[O, I, R], cmp CompareFunc[K]) ProducerFunc[R] {
	return mergeJoin(joinInner, outer, inner, outerKey, innerKey, join, cmp)
}

// LeftJoin is InnerJoin, but additionally emits every unmatched outer element
// with innerOK false.
func LeftJoin[O any, I any, K constraints.Ordered, R any](outer ProducerFunc[O], inner ProducerFunc[I], outerKey Function[O, K], innerKey Function[I, K], join JoinerFunc[O, I, R], cmp CompareFunc[K]) ProducerFunc[R] {
	return mergeJoin(joinLeft, outer, inner, outerKey, innerKey, join, cmp)
}

// RightJoin is InnerJoin, but additionally emits every unmatched inner element
// with outerOK false.
func RightJoin[O any, I any, K constraints.Ordered, R any](outer ProducerFunc[O], inner ProducerFunc[I], outerKey Function[O, K], innerKey Function[I, K], join JoinerFunc[O, I, R], cmp CompareFunc[K]) ProducerFunc[R] {
	return mergeJoin(joinRight, outer, inner, outerKey, innerKey, join, cmp)
}

// FullJoin emits every matched pair and every unmatched element of both sides,
// in merge order.
func FullJoin[O any, I any, K constraints.Ordered, R any](outer ProducerFunc[O], inner ProducerFunc[I], outerKey Function[O, K], innerKey Function[I, K], join JoinerFunc[O, I, R], cmp CompareFunc[K]) ProducerFunc[R] {
	return mergeJoin(joinFull, outer, inner, outerKey, innerKey, join, cmp)
}

// mergeJoin walks both inputs with one cursor each, deciding per step from the
// key comparison and the join type whether to emit a matched pair, emit an
// unmatched side, or only advance a cursor. Output order is the merge order of
// the inputs. Terminating for any reason cancels the inputs' context, so both
// are released even when the output is abandoned early.
func mergeJoin[O any, I any, K constraints.Ordered, R any](typ joinType, outer ProducerFunc[O], inner ProducerFunc[I], outerKey Function[O, K], innerKey Function[I, K], join JoinerFunc[O, I, R], cmp CompareFunc[K]) ProducerFunc[R] {
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

	if cmp == nil {
		cmp = Natural[K]()
	}

	return func(ctx context.Context, cancel context.CancelCauseFunc) <-chan R {
		prodCtx, cancelProd := context.WithCancelCause(ctx)

		outerCh := outer(prodCtx, cancel)
		innerCh := inner(prodCtx, cancel)

		outCh := make(chan R)

		go func() {
			defer cancelProd(nil)

			defer close(outCh)

			outerCur := newCursor(outerCh)
			innerCur := newCursor(innerCh)

			var zeroOuter O

			var zeroInner I

			for {
				var elem R

				switch {
				case !outerCur.ok && !innerCur.ok:
					return

				case !outerCur.ok:
					if !typ.keepsUnmatchedInner() {
						return
					}

					elem = join(ctx, cancel, zeroOuter, false, innerCur.current, true)
					innerCur.advance()

				case !innerCur.ok:
					if !typ.keepsUnmatchedOuter() {
						return
					}

					elem = join(ctx, cancel, outerCur.current, true, zeroInner, false)
					outerCur.advance()

				default:
					order := cmp(outerKey(outerCur.current), innerKey(innerCur.current))

					switch {
					case order < 0:
						if !typ.keepsUnmatchedOuter() {
							outerCur.advance()
							continue
						}

						elem = join(ctx, cancel, outerCur.current, true, zeroInner, false)
						outerCur.advance()

					case order > 0:
						if !typ.keepsUnmatchedInner() {
							innerCur.advance()
							continue
						}

						elem = join(ctx, cancel, zeroOuter, false, innerCur.current, true)
						innerCur.advance()

					default:
						elem = join(ctx, cancel, outerCur.current, true, innerCur.current, true)
						outerCur.advance()
						innerCur.advance()
					}
				}

				if contextDone(ctx) {
					return
				}

				select {
				case outCh <- elem:

				case <-ctx.Done():
					return
				}
			}
		}()

		return outCh
	}
}
