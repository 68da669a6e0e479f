package logger

import (
	"context"
)

// Recover traps panics and displays them as a fatal error with stack trace.
// Usage: defer logger.Recover(ctx)
func Recover(ctx context.Context) {
	if r := recover(); r != nil {
		// Suppress further panics during recovery to prevent loops
		defer func() {
			_ = recover()
		}()

		// Check if it's already a FatalError (intentional panic)
		if _, ok := r.(FatalError); ok {
			return
		}

		// We skip 2 frames: Recover + runtime.panic
		FatalWithStackSkip(ctx, 2, "panic: %v", r)
	}
}
