package order

import (
	"errors"
	"time"
)

var ErrInvalidTransition = errors.New("illegal order status transition")

// transitions lists the legal next states from each state. Delivered and
// Cancelled are terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusDelivered},
	StatusDelivered: {},
	StatusCancelled: {},
}

func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Cancellable reports whether the owner may still cancel the order.
func Cancellable(s Status) bool {
	return s == StatusPending || s == StatusPreparing
}

// Transition moves the order to next, appending to the status history.
// Entering Delivered stamps the actual delivery time. The order is left
// untouched on an illegal transition.
func Transition(o *Order, next Status, now time.Time) error {
	if !CanTransition(o.Status, next) {
		return ErrInvalidTransition
	}
	o.Status = next
	o.StatusHistory = append(o.StatusHistory, StatusEntry{Status: next, Timestamp: now})
	if next == StatusDelivered {
		t := now
		o.DeliveredAt = &t
	}
	o.UpdatedAt = now
	return nil
}
