package resilience_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/coder-muller/radio-cultura-go/internal/infra/resilience"
)

func TestRetryWithBackoff_Success(t *testing.T) {
	cfg := resilience.Config{
		MaxRetries:     3,
		InitialBackoff: 10 * time.Millisecond,
	}

	callCount := 0
	err := resilience.RetryWithBackoff(context.Background(), cfg, func() error {
		callCount++
		return nil
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if callCount != 1 {
		t.Errorf("expected 1 call, got %d", callCount)
	}
}

func TestRetryWithBackoff_RetriesOnFailure(t *testing.T) {
	cfg := resilience.Config{
		MaxRetries:     3,
		InitialBackoff: 10 * time.Millisecond,
	}

	callCount := 0
	err := resilience.RetryWithBackoff(context.Background(), cfg, func() error {
		callCount++
		if callCount < 3 {
			return errors.New("temporary error")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if callCount != 3 {
		t.Errorf("expected 3 calls, got %d", callCount)
	}
}

func TestRetryWithBackoff_ExhaustsRetries(t *testing.T) {
	cfg := resilience.Config{
		MaxRetries:     2,
		InitialBackoff: 10 * time.Millisecond,
	}

	err := resilience.RetryWithBackoff(context.Background(), cfg, func() error {
		return errors.New("persistent error")
	})

	if err == nil {
		t.Fatal("expected error after retries exhausted")
	}
}

func TestRetryWithBackoff_NoRetriesWhenDisabled(t *testing.T) {
	cfg := resilience.Config{
		MaxRetries:     0,
		InitialBackoff: 10 * time.Millisecond,
	}

	callCount := 0
	err := resilience.RetryWithBackoff(context.Background(), cfg, func() error {
		callCount++
		return errors.New("error")
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if callCount != 1 {
		t.Errorf("expected exactly 1 call, got %d", callCount)
	}
}

func TestRetryWithBackoff_RespectsContext(t *testing.T) {
	cfg := resilience.Config{
		MaxRetries:     5,
		InitialBackoff: 1 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := resilience.RetryWithBackoff(ctx, cfg, func() error {
		return errors.New("error")
	})

	if err == nil {
		t.Fatal("expected context error")
	}
}

func TestCircuitBreaker_TripsAfterFailures(t *testing.T) {
	cb := resilience.NewCircuitBreaker("test")

	boom := errors.New("downstream failure")
	for i := 0; i < 6; i++ {
		cb.Execute(func() (interface{}, error) { return nil, boom })
	}

	_, err := cb.Execute(func() (interface{}, error) { return nil, nil })
	if err == nil {
		t.Fatal("expected open circuit to reject the call")
	}
}
