// Package await turns callback-style asynchronous calls into blocking calls.
//
// Platform SDKs of the kind wsup talks to deliver results through callbacks
// that only fire while the caller keeps pumping a dispatch function. Run
// starts the call, pumps the dispatcher on a fixed interval from a dedicated
// goroutine, and returns once exactly one result arrived.
//
//	id, err := await.Run(ctx, func(c *await.Completion[uint64]) {
//	    sdk.CreateItem(appID, func(id uint64, err error) { c.Resolve(id, err) })
//	}, sdk.RunCallbacks, 0)
package await

import (
	"context"
	"sync"
	"time"

	"github.com/vvka-141/wsup/pkg/wsup"
)

type outcome[T any] struct {
	value T
	err   error
}

// Completion delivers the single result of an asynchronous call.
// Only the first Resolve or Abandon has any effect; later calls are ignored.
// Safe for use from any goroutine.
type Completion[T any] struct {
	once sync.Once
	ch   chan outcome[T]
}

func newCompletion[T any]() *Completion[T] {
	return &Completion[T]{ch: make(chan outcome[T], 1)}
}

// Resolve delivers the result.
func (c *Completion[T]) Resolve(value T, err error) {
	c.once.Do(func() {
		c.ch <- outcome[T]{value: value, err: err}
	})
}

// Abandon reports that the callback was dropped without a result.
func (c *Completion[T]) Abandon() {
	c.once.Do(func() {
		c.ch <- outcome[T]{err: wsup.ErrCallbackDisconnected}
	})
}

// Run calls start and blocks until the completion passed to it is resolved or
// ctx is done. Once start returned, pump is called immediately and then every
// interval (wsup.DefaultCallbackInterval when interval <= 0). pump is never
// called concurrently with itself and never after Run returned.
//
// A nil pump is allowed for calls whose callbacks fire on their own.
func Run[T any](ctx context.Context, start func(*Completion[T]), pump func(), interval time.Duration) (T, error) {
	if interval <= 0 {
		interval = wsup.DefaultCallbackInterval
	}

	c := newCompletion[T]()
	start(c)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	if pump != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for {
				select {
				case <-stop:
					return
				default:
				}

				pump()

				select {
				case <-stop:
					return
				case <-ticker.C:
				}
			}
		}()
	}
	defer func() {
		close(stop)
		wg.Wait()
	}()

	select {
	case out := <-c.ch:
		return out.value, out.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
