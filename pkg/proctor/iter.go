package proctor

import (
	"context"

	"github.com/proctorai/proctor-go/internal/pagination"
)

// Iter lazily iterates a paginated listing. Pages are fetched on demand as
// the iteration advances, so breaking out early never fetches the tail.
//
// Usage:
//
//	it := client.ListTests()
//	for it.Next(ctx) {
//	    use(it.Item())
//	}
//	if err := it.Err(); err != nil {
//	    return err
//	}
//
// An Iter is single-use and not safe for concurrent use; get a fresh one per
// iteration.
type Iter[T any] struct {
	next func(ctx context.Context) bool
	item func() T
	err  func() error
}

// Next advances to the next item, fetching the next page when the current
// one is exhausted. It returns false when the listing is exhausted or an
// error occurred; check Err after the loop.
func (it *Iter[T]) Next(ctx context.Context) bool { return it.next(ctx) }

// Item returns the current item. Only valid after a Next call returned true.
func (it *Iter[T]) Item() T { return it.item() }

// Err returns the error that stopped the iteration, if any.
func (it *Iter[T]) Err() error { return it.err() }

func newIter[I, P any](it *pagination.Iterator[I], conv func(I) P) *Iter[P] {
	return &Iter[P]{
		next: it.Next,
		item: func() P { return conv(it.Item()) },
		err:  func() error { return mapError(it.Err()) },
	}
}
