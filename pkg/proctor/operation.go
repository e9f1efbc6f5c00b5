package proctor

import "context"

// Result carries the outcome of a watched operation: the final value or the
// error that ended the wait. Exactly one of the two is set.
type Result[T any] struct {
	Value T
	Err   error
}

// watch turns a blocking wait into a channel delivery. The returned channel
// is buffered and closed after the single result, so the caller can receive
// whenever convenient and range over it safely.
func watch[T any](ctx context.Context, wait func(ctx context.Context) (T, error)) <-chan Result[T] {
	ch := make(chan Result[T], 1)

	go func() {
		defer close(ch)
		v, err := wait(ctx)
		ch <- Result[T]{Value: v, Err: err}
	}()

	return ch
}
