package dispatch

import (
	"io"
	"log/slog"
	"testing"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatchOrder(t *testing.T) {
	d := New(quietLogger())

	var calls []string
	d.Subscribe("save", func(any) { calls = append(calls, "first") })
	d.Subscribe("save", func(any) { calls = append(calls, "second") })
	d.AfterEach(func(any) { calls = append(calls, "after") })

	d.Dispatch("save", nil)

	want := []string{"first", "second", "after"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls[%d] = %q, want %q", i, calls[i], want[i])
		}
	}
}

func TestDispatchPayload(t *testing.T) {
	d := New(quietLogger())

	var got any
	d.Subscribe("set", func(payload any) { got = payload })
	d.Dispatch("set", 42)

	if got != 42 {
		t.Errorf("payload = %v, want 42", got)
	}
}

func TestMissingCommandStillFiresAfterEach(t *testing.T) {
	d := New(quietLogger())

	fired := 0
	d.AfterEach(func(any) { fired++ })

	d.Dispatch("nobody-home", nil)

	if fired != 1 {
		t.Errorf("after-each fired %d times, want 1", fired)
	}
}

func TestUnsubscribe(t *testing.T) {
	d := New(quietLogger())

	calls := 0
	unsub := d.Subscribe("tick", func(any) { calls++ })

	d.Dispatch("tick", nil)
	unsub()
	unsub() // idempotent
	d.Dispatch("tick", nil)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if d.HandlerCount("tick") != 0 {
		t.Errorf("HandlerCount = %d, want 0", d.HandlerCount("tick"))
	}
}

func TestUnsubscribeMidDispatch(t *testing.T) {
	d := New(quietLogger())

	var unsubSecond func()
	secondCalls := 0

	d.Subscribe("go", func(any) { unsubSecond() })
	unsubSecond = d.Subscribe("go", func(any) { secondCalls++ })

	// Removal lands after the in-flight snapshot: the second handler
	// still runs this dispatch, then never again.
	d.Dispatch("go", nil)
	if secondCalls != 1 {
		t.Errorf("second handler ran %d times in first dispatch, want 1", secondCalls)
	}

	d.Dispatch("go", nil)
	if secondCalls != 1 {
		t.Errorf("second handler ran after unsubscribe")
	}
}

func TestDuplicateSubscriptionAbsorbed(t *testing.T) {
	d := New(quietLogger())

	calls := 0
	handler := func(any) { calls++ }

	first := d.Subscribe("once", handler)
	second := d.Subscribe("once", handler)

	if d.HandlerCount("once") != 1 {
		t.Fatalf("HandlerCount = %d, want 1", d.HandlerCount("once"))
	}

	d.Dispatch("once", nil)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}

	// The duplicate's unsubscribe is a no-op; the original survives it.
	second()
	d.Dispatch("once", nil)
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}

	first()
	if d.HandlerCount("once") != 0 {
		t.Errorf("HandlerCount = %d, want 0", d.HandlerCount("once"))
	}
}

func TestNilHandlerIgnored(t *testing.T) {
	d := New(quietLogger())

	unsub := d.Subscribe("x", nil)
	unsub()
	if d.HandlerCount("x") != 0 {
		t.Errorf("nil handler registered")
	}

	d.AfterEach(nil)
	d.Dispatch("x", nil) // must not panic
}

func TestAfterEachUnsubscribe(t *testing.T) {
	d := New(quietLogger())

	calls := 0
	unsub := d.AfterEach(func(any) { calls++ })

	d.Dispatch("a", nil)
	unsub()
	d.Dispatch("b", nil)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
