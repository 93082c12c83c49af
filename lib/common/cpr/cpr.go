// Package cpr contains concurrency primitives.
package cpr

import "context"

// Push sends the given elements to the channel, aborting if the context is
// canceled.
func Push[T any](ctx context.Context, ch chan<- T, ts ...T) error {
	for _, t := range ts {
		select {
		case ch <- t:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Pop receives one element from the channel. The boolean result is false if
// the channel is closed.
func Pop[T any](ctx context.Context, ch <-chan T) (T, bool, error) {
	select {
	case t, ok := <-ch:
		return t, ok, nil
	case <-ctx.Done():
		var t T
		return t, false, ctx.Err()
	}
}

// Consume applies f to every element received from the channel, until the
// channel is closed or the context is canceled.
func Consume[T any](ctx context.Context, ch <-chan T, f func(T) error) error {
	for {
		t, ok, err := Pop(ctx, ch)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := f(t); err != nil {
			return err
		}
	}
}
