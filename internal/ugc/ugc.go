// Package ugc adapts the workshop platform's callback API into blocking calls.
//
// The vendor client is reached through narrow interfaces so that the binding
// can be swapped and tests can use fakes.
package ugc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vvka-141/wsup/internal/await"
	"github.com/vvka-141/wsup/internal/retry"
	"github.com/vvka-141/wsup/pkg/wsup"
)

// FileType is the kind of workshop item being created.
type FileType int

const (
	FileTypeCommunity        FileType = 0
	FileTypeMicrotransaction FileType = 1
)

// CreateResult is delivered when an item was created.
type CreateResult struct {
	ItemID wsup.PublishedFileID
	// NeedsLegalAgreement is set when the user still has to accept the
	// workshop legal agreement before the item becomes visible.
	NeedsLegalAgreement bool
}

// SubmitResult is delivered when an item update was submitted.
type SubmitResult struct {
	ItemID              wsup.PublishedFileID
	NeedsLegalAgreement bool
}

// Client starts asynchronous item creation.
type Client interface {
	CreateItem(appID wsup.AppID, fileType FileType, cb func(CreateResult, error))
}

// UpdateHandle is a prepared item update.
type UpdateHandle interface {
	Submit(changeNote string, cb func(SubmitResult, error))
}

// Dispatcher pumps pending callbacks. Callbacks never fire without it.
type Dispatcher interface {
	RunCallbacks()
}

// Option configures Blocking.
type Option func(*Blocking)

// WithInterval sets how often the dispatcher is pumped while waiting.
func WithInterval(d time.Duration) Option {
	return func(b *Blocking) { b.interval = d }
}

// WithRetry retries calls that fail with a transient platform result.
func WithRetry(exec *retry.Executor) Option {
	return func(b *Blocking) { b.exec = exec }
}

// Blocking wraps a Client with blocking calls.
// Not safe for concurrent use; the platform dispatches callbacks for one
// caller at a time.
type Blocking struct {
	client     Client
	dispatcher Dispatcher
	logger     wsup.Logger
	interval   time.Duration
	exec       *retry.Executor
}

// NewBlocking creates a Blocking client.
// Panics if client, dispatcher or logger is nil.
func NewBlocking(client Client, dispatcher Dispatcher, logger wsup.Logger, opts ...Option) *Blocking {
	if client == nil {
		panic("client cannot be nil")
	}
	if dispatcher == nil {
		panic("dispatcher cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	b := &Blocking{
		client:     client,
		dispatcher: dispatcher,
		logger:     logger,
		interval:   wsup.DefaultCallbackInterval,
		exec:       retry.NewExecutor(retry.ClassifierFunc(IsTransient), retry.NewBackoff(0)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// CreateItem creates a community item for appID and waits for the result.
func (b *Blocking) CreateItem(ctx context.Context, appID wsup.AppID) (CreateResult, error) {
	exec := b.exec.WithOnRetry(b.logRetry("create item"))

	res, err := retry.Do(ctx, exec, func(ctx context.Context) (CreateResult, error) {
		return await.Run(ctx, func(c *await.Completion[CreateResult]) {
			b.client.CreateItem(appID, FileTypeCommunity, c.Resolve)
		}, b.dispatcher.RunCallbacks, b.interval)
	})
	if err != nil {
		return CreateResult{}, wrapCallError("create item", err)
	}

	b.logger.Info("Workshop item created", "item_id", res.ItemID.String())
	return res, nil
}

// Submit submits handle with changeNote and waits for the result.
func (b *Blocking) Submit(ctx context.Context, handle UpdateHandle, changeNote string) (SubmitResult, error) {
	exec := b.exec.WithOnRetry(b.logRetry("submit item update"))

	res, err := retry.Do(ctx, exec, func(ctx context.Context) (SubmitResult, error) {
		return await.Run(ctx, func(c *await.Completion[SubmitResult]) {
			handle.Submit(changeNote, c.Resolve)
		}, b.dispatcher.RunCallbacks, b.interval)
	})
	if err != nil {
		return SubmitResult{}, wrapCallError("submit item update", err)
	}

	b.logger.Info("Workshop item updated", "item_id", res.ItemID.String())
	return res, nil
}

func (b *Blocking) logRetry(op string) func(int, error, time.Duration) {
	return func(attempt int, err error, delay time.Duration) {
		b.logger.Warn("Platform call failed, retrying", "op", op, "attempt", attempt+1, "delay", delay.String(), "error", err)
	}
}

// wrapCallError makes sure every failure unwraps to wsup.ErrPlatformCall,
// except context errors and disconnected callbacks which keep their identity.
func wrapCallError(op string, err error) error {
	var perr *PlatformError
	switch {
	case errors.As(err, &perr):
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", op, err)
	case errors.Is(err, wsup.ErrCallbackDisconnected):
		return fmt.Errorf("%s: %w", op, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, wsup.ErrPlatformCall, err)
	}
}
