// Package pagination iterates cursor-paged remote collections as one logical
// sequence.
package pagination

import (
	"context"
)

// Page is one page of a remote collection. An empty NextCursor marks the
// final page.
type Page[T any] struct {
	Items      []T
	NextCursor string
}

// PageFunc fetches one page. The first call receives an empty cursor.
type PageFunc[T any] func(ctx context.Context, cursor string) (Page[T], error)

// Iterator lazily walks a paged collection. The next page is only fetched
// once every item of the current page has been consumed, so the caller's
// consumption speed drives the remote calls.
//
// Not safe for concurrent use; create one iterator per consumer.
type Iterator[T any] struct {
	fetch  PageFunc[T]
	cursor string
	items  []T
	pos    int
	item   T
	err    error
	done   bool
}

// New returns an iterator over the collection served by fetch.
func New[T any](fetch PageFunc[T]) *Iterator[T] {
	return &Iterator[T]{fetch: fetch}
}

// Next advances the iterator. It returns false when the collection is
// exhausted or an error occurred; check Err afterwards.
func (it *Iterator[T]) Next(ctx context.Context) bool {
	if it.err != nil {
		return false
	}

	for it.pos >= len(it.items) {
		if it.done {
			return false
		}

		page, err := it.fetch(ctx, it.cursor)
		if err != nil {
			it.err = err
			return false
		}

		it.items = page.Items
		it.pos = 0
		it.cursor = page.NextCursor
		it.done = page.NextCursor == ""
	}

	it.item = it.items[it.pos]
	it.pos++
	return true
}

// Item returns the current item. Only valid after a Next call that returned
// true.
func (it *Iterator[T]) Item() T { return it.item }

// Err returns the first error hit while paging, if any.
func (it *Iterator[T]) Err() error { return it.err }

// All drains the collection into a slice, preserving remote order.
func All[T any](ctx context.Context, fetch PageFunc[T]) ([]T, error) {
	var all []T

	it := New(fetch)
	for it.Next(ctx) {
		all = append(all, it.Item())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}

	return all, nil
}
