package orderedstreams

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/matryer/is"
)

// joined is the row type the join tests combine into.
// A zero Outer or Inner together with a false flag is an unmatched side.
type joined struct {
	Outer   int
	OuterOK bool
	Inner   int
	InnerOK bool
}

func intKey(elem int) int {
	return elem
}

func pairJoiner(_ context.Context, _ context.CancelCauseFunc, outer int, outerOK bool, inner int, innerOK bool) joined {
	return joined{Outer: outer, OuterOK: outerOK, Inner: inner, InnerOK: innerOK}
}

func matched(outer int, inner int) joined {
	return joined{Outer: outer, OuterOK: true, Inner: inner, InnerOK: true}
}

func outerOnly(outer int) joined {
	return joined{Outer: outer, OuterOK: true}
}

func innerOnly(inner int) joined {
	return joined{Inner: inner, InnerOK: true}
}

func TestInnerJoin(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	rows := InnerJoin(Produce([]int{1, 2, 3, 5}), Produce([]int{2, 2, 3, 4}), intKey, intKey, pairJoiner, nil)

	result, err := ReduceSlice(ctx, rows)

	is.NoErr(err)
	is.Equal(result, []joined{matched(2, 2), matched(3, 3)})
}

func TestLeftJoin(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	rows := LeftJoin(Produce([]int{1, 2, 3, 5}), Produce([]int{2, 2, 3, 4}), intKey, intKey, pairJoiner, nil)

	result, err := ReduceSlice(ctx, rows)

	is.NoErr(err)
	is.Equal(result, []joined{outerOnly(1), matched(2, 2), matched(3, 3), outerOnly(5)})
}

func TestRightJoin(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	rows := RightJoin(Produce([]int{1, 2, 3, 5}), Produce([]int{2, 2, 3, 4}), intKey, intKey, pairJoiner, nil)

	result, err := ReduceSlice(ctx, rows)

	is.NoErr(err)
	is.Equal(result, []joined{matched(2, 2), innerOnly(2), matched(3, 3), innerOnly(4)})
}

func TestFullJoin(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	rows := FullJoin(Produce([]int{1, 2, 3, 5}), Produce([]int{2, 2, 3, 4}), intKey, intKey, pairJoiner, nil)

	result, err := ReduceSlice(ctx, rows)

	is.NoErr(err)
	is.Equal(result, []joined{
		outerOnly(1),
		matched(2, 2),
		innerOnly(2),
		matched(3, 3),
		innerOnly(4),
		outerOnly(5),
	})
}

func TestFullJoin_EmptyOuter(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	rows := FullJoin(Produce([]int{}), Produce([]int{2, 2, 3, 4}), intKey, intKey, pairJoiner, nil)

	result, err := ReduceSlice(ctx, rows)

	is.NoErr(err)
	is.Equal(result, []joined{innerOnly(2), innerOnly(2), innerOnly(3), innerOnly(4)})
}

func TestFullJoin_EmptyInner(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	rows := FullJoin(Produce([]int{1, 2}), Produce([]int{}), intKey, intKey, pairJoiner, nil)

	result, err := ReduceSlice(ctx, rows)

	is.NoErr(err)
	is.Equal(result, []joined{outerOnly(1), outerOnly(2)})
}

func TestFullJoin_BothEmpty(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	rows := FullJoin(Produce([]int{}), Produce([]int{}), intKey, intKey, pairJoiner, nil)

	result, err := ReduceSlice(ctx, rows)

	is.NoErr(err)
	is.Equal(result, []joined(nil))
}

func TestInnerJoin_EmptyOuter(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	rows := InnerJoin(Produce([]int{}), Produce([]int{2, 2, 3, 4}), intKey, intKey, pairJoiner, nil)

	result, err := ReduceSlice(ctx, rows)

	is.NoErr(err)
	is.Equal(result, []joined(nil))
}

func TestLeftJoin_EmptyOuter(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	rows := LeftJoin(Produce([]int{}), Produce([]int{2, 2, 3, 4}), intKey, intKey, pairJoiner, nil)

	result, err := ReduceSlice(ctx, rows)

	is.NoErr(err)
	is.Equal(result, []joined(nil))
}

func TestRightJoin_EmptyInner(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	rows := RightJoin(Produce([]int{1, 2}), Produce([]int{}), intKey, intKey, pairJoiner, nil)

	result, err := ReduceSlice(ctx, rows)

	is.NoErr(err)
	is.Equal(result, []joined(nil))
}

// The inner join emits exactly the pairs of the full join that have both
// sides present, in the same order.
func TestInnerJoin_MatchesFilteredFullJoin(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	outer := []int{1, 2, 4, 4, 7, 9, 12}
	inner := []int{2, 3, 4, 7, 7, 10, 12, 13}

	innerRows, err := ReduceSlice(ctx, InnerJoin(Produce(outer), Produce(inner), intKey, intKey, pairJoiner, nil))
	is.NoErr(err)

	fullRows, err := ReduceSlice(ctx, FullJoin(Produce(outer), Produce(inner), intKey, intKey, pairJoiner, nil))
	is.NoErr(err)

	bothPresent := []joined{}
	for _, row := range fullRows {
		if row.OuterOK && row.InnerOK {
			bothPresent = append(bothPresent, row)
		}
	}

	is.Equal(innerRows, bothPresent)
}

// Matched keys advance both sides, so duplicate keys pair one-to-one instead
// of expanding into a cross product.
func TestInnerJoin_DuplicateKeysPairOneToOne(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	rows := InnerJoin(Produce([]int{1, 1, 2}), Produce([]int{1, 1, 1}), intKey, intKey, pairJoiner, nil)

	result, err := ReduceSlice(ctx, rows)

	is.NoErr(err)
	is.Equal(result, []joined{matched(1, 1), matched(1, 1)})
}

func TestFullJoin_CustomComparator(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	descending := func(a int, b int) int {
		return b - a
	}

	rows := FullJoin(Produce([]int{5, 3, 1}), Produce([]int{4, 3, 2}), intKey, intKey, pairJoiner, descending)

	result, err := ReduceSlice(ctx, rows)

	is.NoErr(err)
	is.Equal(result, []joined{
		outerOnly(5),
		innerOnly(4),
		matched(3, 3),
		innerOnly(2),
		outerOnly(1),
	})
}

// Pulling only a prefix of the join's output must not consume more than a
// small prefix of either input.
func TestInnerJoin_Lazy(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	outerProduced := atomic.Int64{}
	innerProduced := atomic.Int64{}

	counting := func(counter *atomic.Int64) ProducerFunc[int] {
		return func(ctx context.Context, _ context.CancelCauseFunc) <-chan int {
			outCh := make(chan int)

			go func() {
				defer close(outCh)

				for i := 1; i <= 100; i++ {
					select {
					case outCh <- i:
						counter.Add(1)

					case <-ctx.Done():
						return
					}
				}
			}()

			return outCh
		}
	}

	rows := InnerJoin(counting(&outerProduced), counting(&innerProduced), intKey, intKey, pairJoiner, nil)
	rows = Limit(rows, 3)

	result, err := ReduceSlice(ctx, rows)

	is.NoErr(err)
	is.Equal(result, []joined{matched(1, 1), matched(2, 2), matched(3, 3)})

	is.True(outerProduced.Load() <= 8)
	is.True(innerProduced.Load() <= 8)
}

// Once the shorter side of an inner join is exhausted, the join terminates
// and cancels the other side's context instead of draining it.
func TestInnerJoin_ReleasesInputs(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	producerCancelCause := make(chan error)

	inner := func(ctx context.Context, _ context.CancelCauseFunc) <-chan int {
		outCh := make(chan int)

		go func() {
			var cancelCause error

			defer func() {
				producerCancelCause <- cancelCause
			}()

			defer close(outCh)

			for i := 1; i <= 1000; i++ {
				select {
				case outCh <- i:

				case <-ctx.Done():
					cancelCause = context.Cause(ctx)
					return
				}
			}
		}()

		return outCh
	}

	rows := InnerJoin(Produce([]int{1, 2}), inner, intKey, intKey, pairJoiner, nil)

	result, err := ReduceSlice(ctx, rows)

	is.NoErr(err)
	is.Equal(result, []joined{matched(1, 1), matched(2, 2)})
	is.True(errors.Is(<-producerCancelCause, context.Canceled))
}

func TestInnerJoin_NilArgument(t *testing.T) {
	is := is.New(t)

	var nilJoiner JoinerFunc[int, int, joined]

	defer func() {
		is.True(recover() != nil)
	}()

	InnerJoin(Produce([]int{1}), Produce([]int{1}), intKey, intKey, nilJoiner, nil)
}

func TestFullJoin_NilProducer(t *testing.T) {
	is := is.New(t)

	var nilProducer ProducerFunc[int]

	defer func() {
		is.True(recover() != nil)
	}()

	FullJoin(nilProducer, Produce([]int{1}), intKey, intKey, pairJoiner, nil)
}
