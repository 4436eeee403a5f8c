package order

import (
	"errors"
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusPreparing, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusReady, false},
		{StatusPending, StatusDelivered, false},
		{StatusPreparing, StatusReady, true},
		{StatusPreparing, StatusCancelled, true},
		{StatusPreparing, StatusDelivered, false},
		{StatusReady, StatusDelivered, true},
		{StatusReady, StatusCancelled, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusDelivered, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusPreparing, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.ok {
			t.Errorf("%s -> %s: got %v, want %v", c.from, c.to, got, c.ok)
		}
	}
}

func TestTransition_AppendsHistory(t *testing.T) {
	now := time.Now()
	o := &Order{Status: StatusPending, StatusHistory: []StatusEntry{{Status: StatusPending}}}
	if err := Transition(o, StatusPreparing, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Status != StatusPreparing {
		t.Fatalf("status = %s", o.Status)
	}
	if len(o.StatusHistory) != 2 {
		t.Fatalf("history length = %d, want 2", len(o.StatusHistory))
	}
	last := o.StatusHistory[1]
	if last.Status != StatusPreparing || !last.Timestamp.Equal(now) {
		t.Fatalf("history tail = %+v", last)
	}
	if o.DeliveredAt != nil {
		t.Fatalf("DeliveredAt set on non-delivery transition")
	}
}

func TestTransition_DeliveredStampsTime(t *testing.T) {
	now := time.Now()
	o := &Order{Status: StatusReady}
	if err := Transition(o, StatusDelivered, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.DeliveredAt == nil || !o.DeliveredAt.Equal(now) {
		t.Fatalf("DeliveredAt = %v, want %v", o.DeliveredAt, now)
	}
}

func TestTransition_IllegalLeavesOrderUntouched(t *testing.T) {
	o := &Order{Status: StatusDelivered, StatusHistory: []StatusEntry{{Status: StatusDelivered}}}
	err := Transition(o, StatusCancelled, time.Now())
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("got %v, want ErrInvalidTransition", err)
	}
	if o.Status != StatusDelivered || len(o.StatusHistory) != 1 {
		t.Fatalf("order mutated on illegal transition: %+v", o)
	}
}

func TestNormalizePaymentMethod(t *testing.T) {
	cases := map[string]string{
		"cash": "CASH", "CASH": "CASH", "Cash ": "CASH",
		"upi": "UPI", "card": "CARD",
	}
	for in, want := range cases {
		got, ok := NormalizePaymentMethod(in)
		if !ok || got != want {
			t.Errorf("NormalizePaymentMethod(%q) = %q, %v", in, got, ok)
		}
	}
	if _, ok := NormalizePaymentMethod("cheque"); ok {
		t.Error("cheque accepted")
	}
}
