package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type counter struct{ n int32 }

func (c *counter) Grow() { atomic.AddInt32(&c.n, 1) }

func TestZeroIntervalGrowsOnceAndReturns(t *testing.T) {
	c := &counter{}
	Run(context.Background(), c, 0)
	if atomic.LoadInt32(&c.n) != 1 {
		t.Fatalf("expected exactly one Grow, got %d", c.n)
	}
}

func TestPositiveIntervalGrowsUntilCancelled(t *testing.T) {
	c := &counter{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		Run(ctx, c, 5*time.Millisecond)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()
	<-done

	if n := atomic.LoadInt32(&c.n); n < 2 {
		t.Fatalf("expected multiple grows before cancellation, got %d", n)
	}
}
