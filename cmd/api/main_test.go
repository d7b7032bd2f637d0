package main

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"sales_portal_backend/internal/events"
	"sales_portal_backend/platform/logger"
)

func TestDrainThenCloseWaitsForHandlers(t *testing.T) {
	bus := events.NewInMemoryBus(logger.Nop())
	closed := make(chan struct{})
	var sawClosed bool

	bus.Subscribe(events.LeadConverted{}.EventName(), events.HandlerFunc(func(context.Context, events.Event) error {
		time.Sleep(20 * time.Millisecond)
		select {
		case <-closed:
			sawClosed = true
		default:
		}
		return nil
	}))
	bus.Publish(context.Background(), events.LeadConverted{BaseEvent: events.NewBaseEvent()})

	drainThenClose(bus, func() { close(closed) }, nil)

	if sawClosed {
		t.Fatalf("handler ran after the scheduler client was closed")
	}
	select {
	case <-closed:
	default:
		t.Fatalf("expected closer to run")
	}
}

func TestWithRetryStopsAfterSuccess(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), logger.Nop(), "op", 3, time.Millisecond, func() error {
		calls++
		if calls < 2 {
			return errors.New("not yet")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}

	err = withRetry(context.Background(), logger.Nop(), "op", 2, time.Millisecond, func() error {
		return errors.New("down")
	})
	if err == nil || !strings.Contains(err.Error(), "op: down") {
		t.Fatalf("expected wrapped last error, got %v", err)
	}
}
