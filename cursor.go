package orderedstreams

import "context"

// cursor is a forward-only view over one producer channel.
// It holds the channel's current element; advancing is destructive, the
// cursor never rewinds. A cursor owns its channel exclusively.
type cursor[T any] struct {
	ch      <-chan T
	current T
	ok      bool
}

// newCursor wraps ch, eagerly pulling its first element.
func newCursor[T any](ch <-chan T) *cursor[T] {
	cur := &cursor[T]{ch: ch}
	cur.advance()

	return cur
}

// advance moves the cursor to the next element.
// Once the channel is closed and drained, ok stays false.
func (c *cursor[T]) advance() {
	c.current, c.ok = <-c.ch
}

// takeRun returns a producer for the next contiguous run of elements matching
// test. When the producer is started, it first advances past all elements for
// which test is false, discarding them, then produces every subsequent element
// for which test is true, stopping at the first element for which it is false.
// That element is not discarded; the cursor rests on it for the next run.
//
// The returned producer is single-use and must be drained before the next run
// is requested. If test is false for every remaining element, the skip phase
// drains the cursor completely.
func (c *cursor[T]) takeRun(test func(elem T) bool) ProducerFunc[T] {
	return func(ctx context.Context, _ context.CancelCauseFunc) <-chan T {
		outCh := make(chan T)

		go func() {
			defer close(outCh)

			for c.ok && !test(c.current) {
				c.advance()
			}

			for c.ok && test(c.current) {
				select {
				case outCh <- c.current:
					c.advance()

				case <-ctx.Done():
					return
				}
			}
		}()

		return outCh
	}
}

// takeRunCompare is the three-way form of takeRun. rel reports the position
// of an element relative to the run: negative for elements before it, zero
// for elements inside it, and positive for elements past it.
//
// Unlike takeRun, the skip phase stops as soon as rel reaches zero or turns
// positive, so a run with no elements discards exactly the unmatched prefix
// rather than the remainder of the sequence.
func (c *cursor[T]) takeRunCompare(rel func(elem T) int) ProducerFunc[T] {
	return func(ctx context.Context, _ context.CancelCauseFunc) <-chan T {
		outCh := make(chan T)

		go func() {
			defer close(outCh)

			for c.ok && rel(c.current) < 0 {
				c.advance()
			}

			for c.ok && rel(c.current) == 0 {
				select {
				case outCh <- c.current:
					c.advance()

				case <-ctx.Done():
					return
				}
			}
		}()

		return outCh
	}
}
