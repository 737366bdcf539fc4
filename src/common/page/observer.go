package page

import (
	"context"
	"sync"

	"github.com/jack-barr3tt/stk-engine/src/common/types"
)

type SnapshotHandler func(ctx context.Context, snapshot types.PageSnapshot)

// Subscription owns one running observation of a snapshot stream.
type Subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Observe runs handler for every snapshot received, one at a time, until the
// channel closes, ctx is cancelled or the subscription is disposed.
func Observe(ctx context.Context, snapshots <-chan types.PageSnapshot, handler SnapshotHandler) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(sub.done)
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case snapshot, ok := <-snapshots:
				if !ok || ctx.Err() != nil {
					return
				}
				handler(ctx, snapshot)
			}
		}
	}()

	return sub
}

// Dispose stops the observation and waits for an in-flight handler to return.
// It is safe to call more than once.
func (s *Subscription) Dispose() {
	s.once.Do(s.cancel)
	<-s.done
}

func (s *Subscription) Done() <-chan struct{} {
	return s.done
}
