package utils

import (
	"context"
)

// Result of a blocking call.
type blockingResult[T any] struct {
	value T
	err   error
}

// RunBlocking executes fn on a separate goroutine and waits either for its result
// or for ctx to be done.
// When ctx wins, result produced later is handed to discard (if not nil),
// so acquired resources are never leaked.
func RunBlocking[T any](ctx context.Context, fn func() (T, error), discard func(T)) (T, error) {
	done := make(chan *blockingResult[T], 1)
	go func() {
		v, err := fn()
		done <- &blockingResult[T]{value: v, err: err}
	}()

	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		go func() {
			r := <-done
			if nil == r.err && nil != discard {
				discard(r.value)
			}
		}()

		var zero T
		return zero, ctx.Err()
	}
}
