package shared

import (
	"context"
	"errors"
	"time"
)

// MaxConflictAttempts acota los reintentos transparentes ante ConcurrencyConflict.
const MaxConflictAttempts = 3

// RetryOnConflict reintenta fn solo cuando falla por ErrConcurrencyConflict.
// Cualquier otro error se devuelve tal cual en el primer intento.
func RetryOnConflict(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 1; attempt <= MaxConflictAttempts; attempt++ {
		err = fn()
		if err == nil || !errors.Is(err, ErrConcurrencyConflict) {
			return err
		}
		if attempt == MaxConflictAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 5 * time.Millisecond):
		}
	}
	return err
}
