package geo

import (
	"context"
	"time"
)

// locateTimeout bounds how long position acquisition may take before
// the caller proceeds without one.
const locateTimeout = 5 * time.Second

// Source supplies the device's current position. Implementations are
// expected to honor context cancellation; accuracy is the source's
// concern.
type Source interface {
	CurrentPosition(ctx context.Context) (Position, error)
}

// Locate acquires the current position on a best-effort basis. It
// resolves to (zero, false) rather than an error when no source is
// available, the source fails, or the 5 second budget runs out.
// Positions are never cached.
func Locate(ctx context.Context, source Source) (Position, bool) {
	if source == nil {
		return Position{}, false
	}

	ctx, cancel := context.WithTimeout(ctx, locateTimeout)
	defer cancel()

	type outcome struct {
		pos Position
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		pos, err := source.CurrentPosition(ctx)
		done <- outcome{pos, err}
	}()

	select {
	case <-ctx.Done():
		return Position{}, false
	case result := <-done:
		if result.err != nil {
			return Position{}, false
		}
		return result.pos, true
	}
}
