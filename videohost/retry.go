// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package videohost

import (
	"context"
	"time"
)

// RetryPolicy bound how often a failed network call is repeated and
// how long to wait between attempts.
// The wait grows linearly: attempt n sleeps n*Backoff.
type RetryPolicy struct {
	// MaxAttempts is the total number of tries, including the
	// first one.
	MaxAttempts int

	// Backoff is the base delay between attempts.
	Backoff time.Duration
}

// DefaultRetryPolicy is shared by all checkers unless overridden.
var DefaultRetryPolicy = RetryPolicy{
	MaxAttempts: 3,
	Backoff:     2 * time.Second,
}

// Wait sleep for the delay of the given attempt (1-based), or return
// early when the context is done.
func (pol RetryPolicy) Wait(ctx context.Context, attempt int) error {
	var timer = time.NewTimer(time.Duration(attempt) * pol.Backoff)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
