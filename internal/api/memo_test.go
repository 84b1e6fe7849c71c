package api

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoCallerCancelDoesNotFailWaiters(t *testing.T) {
	m := NewMemo[string]()
	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context) (string, error) {
		close(started)
		select {
		case <-release:
			return "payload", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := m.Do(firstCtx, 7, fetch)
		firstErr <- err
	}()
	<-started

	type result struct {
		v   string
		err error
	}
	second := make(chan result, 1)
	go func() {
		v, err := m.Do(context.Background(), 7, func(context.Context) (string, error) {
			return "", errors.New("second fetch should not run")
		})
		second <- result{v, err}
	}()

	cancelFirst()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Errorf("first caller error = %v, want context.Canceled", err)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)

	select {
	case res := <-second:
		if res.err != nil || res.v != "payload" {
			t.Errorf("second caller = %q, %v, want payload, nil", res.v, res.err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("second caller did not return")
	}
	if v, ok := m.Get(7); !ok || v != "payload" {
		t.Errorf("Get(7) = %q, %v, want payload, true", v, ok)
	}
}

func TestMemoFailureNotStored(t *testing.T) {
	m := NewMemo[int]()
	boom := errors.New("boom")
	if _, err := m.Do(context.Background(), 1, func(context.Context) (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("error = %v, want boom", err)
	}
	if m.Len() != 0 {
		t.Errorf("Len = %d, want 0", m.Len())
	}
	v, err := m.Do(context.Background(), 1, func(context.Context) (int, error) { return 3, nil })
	if err != nil || v != 3 {
		t.Errorf("Do = %d, %v, want 3, nil", v, err)
	}
}
