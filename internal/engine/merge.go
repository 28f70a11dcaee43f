package engine

import (
	"context"
	"fmt"
)

// MergeAfterLogin folds the pre-login guest cart into the server cart.
// Runs once per login, right after the credential becomes valid.
//
// The guest lines go up in one bulk call; the server adds quantities to
// any lines it already has. Only after the call reports success is the
// guest slot cleared, so a failed merge leaves the pre-login items on
// disk for a later retry and the remote cart is treated as untouched.
// The returned bool reports whether anything was merged; an empty
// guest slot terminates immediately with zero network calls.
func (e *Engine) MergeAfterLogin(ctx context.Context) (bool, error) {
	id := e.sessions.Current()
	if !id.Authenticated {
		return false, ErrNotAuthenticated
	}

	guest := e.local.Load()
	if guest.Empty() {
		return false, nil
	}

	if err := e.remote.BulkAdd(ctx, guest.Refs()); err != nil {
		return false, fmt.Errorf("%w: %w", ErrMergeFailed, err)
	}

	merged, err := e.remote.Fetch(ctx)
	if err != nil {
		// The bulk call landed but the confirming fetch did not. Keep
		// the guest slot so nothing is silently lost; the next fetch
		// resolves the server state.
		return false, fmt.Errorf("%w: %w", ErrMergeFailed, err)
	}
	if e.sessions.Current() != id {
		e.logger.Printf("discarding stale merge result")
		return false, nil
	}

	e.replace(merged)
	if err := e.local.Clear(); err != nil {
		e.logger.Printf("clear guest cart slot after merge: %v", err)
	}
	return true, nil
}
