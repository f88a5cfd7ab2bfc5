// Package fsm adapts error returning handlers to looplab/fsm callbacks.
package fsm

import (
	"context"
	"errors"

	"github.com/looplab/fsm"
)

// WrapEvent turns fn into a callback that stores a returned error on the
// event, which looplab/fsm then reports from FSM.Event.
func WrapEvent(fn func(ctx context.Context, event *fsm.Event) error) fsm.Callback {
	return func(ctx context.Context, event *fsm.Event) {
		if err := fn(ctx, event); err != nil {
			event.Err = err
		}
	}
}

// IsNoop reports whether err only says the event did not change state.
func IsNoop(err error) bool {
	var noTransition fsm.NoTransitionError
	return errors.As(err, &noTransition)
}
