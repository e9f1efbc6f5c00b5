package pagination_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proctorai/proctor-go/internal/pagination"
)

// pagedInts serves the numbers [0, total) in pages of pageSize, recording how
// many pages have been fetched.
func pagedInts(total, pageSize int, fetches *int) pagination.PageFunc[int] {
	return func(ctx context.Context, cursor string) (pagination.Page[int], error) {
		*fetches++

		start := 0
		if cursor != "" {
			fmt.Sscanf(cursor, "%d", &start)
		}

		end := start + pageSize
		if end > total {
			end = total
		}

		page := pagination.Page[int]{}
		for i := start; i < end; i++ {
			page.Items = append(page.Items, i)
		}
		if end < total {
			page.NextCursor = fmt.Sprintf("%d", end)
		}

		return page, nil
	}
}

func TestIteratorOrderMatchesUnpaginated(t *testing.T) {
	tests := map[string]struct {
		total    int
		pageSize int
	}{
		"Single page":              {total: 3, pageSize: 10},
		"Exact multiple of pages":  {total: 10, pageSize: 5},
		"Partial final page":       {total: 7, pageSize: 3},
		"Page size one":            {total: 4, pageSize: 1},
		"Empty collection":         {total: 0, pageSize: 5},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			fetches := 0
			got, err := pagination.All(context.Background(), pagedInts(tt.total, tt.pageSize, &fetches))
			require.NoError(t, err)

			var exp []int
			for i := 0; i < tt.total; i++ {
				exp = append(exp, i)
			}
			assert.Equal(t, exp, got)
		})
	}
}

func TestIteratorIsLazy(t *testing.T) {
	// The second page must not be fetched before the first page's items have
	// been consumed.
	fetches := 0
	it := pagination.New(pagedInts(6, 3, &fetches))

	assert.Equal(t, 0, fetches, "no fetch before the first Next")

	for i := 0; i < 3; i++ {
		require.True(t, it.Next(context.Background()))
		assert.Equal(t, i, it.Item())
		assert.Equal(t, 1, fetches)
	}

	require.True(t, it.Next(context.Background()))
	assert.Equal(t, 3, it.Item())
	assert.Equal(t, 2, fetches)
}

func TestIteratorSkipsEmptyIntermediatePages(t *testing.T) {
	pages := []pagination.Page[string]{
		{Items: []string{"a"}, NextCursor: "1"},
		{Items: nil, NextCursor: "2"},
		{Items: []string{"b"}},
	}

	i := 0
	fetch := func(ctx context.Context, cursor string) (pagination.Page[string], error) {
		p := pages[i]
		i++
		return p, nil
	}

	got, err := pagination.All(context.Background(), fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestIteratorErrorStopsIteration(t *testing.T) {
	fetchErr := errors.New("rate limited")
	calls := 0
	fetch := func(ctx context.Context, cursor string) (pagination.Page[int], error) {
		calls++
		if calls == 2 {
			return pagination.Page[int]{}, fetchErr
		}
		return pagination.Page[int]{Items: []int{1, 2}, NextCursor: "next"}, nil
	}

	it := pagination.New(fetch)
	ctx := context.Background()

	require.True(t, it.Next(ctx))
	require.True(t, it.Next(ctx))
	require.False(t, it.Next(ctx))
	assert.ErrorIs(t, it.Err(), fetchErr)

	// Once failed, the iterator stays failed and fetches nothing else.
	require.False(t, it.Next(ctx))
	assert.Equal(t, 2, calls)
}
