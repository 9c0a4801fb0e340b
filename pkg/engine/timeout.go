package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chazu/dioptra/pkg/scene"
)

// DefaultEvalTimeout bounds a single evaluation unless WithTimeout says
// otherwise.
const DefaultEvalTimeout = 5 * time.Second

var (
	// ErrEvalTimeout is returned when a program runs past the engine timeout.
	ErrEvalTimeout = errors.New("evaluation timed out")
	// ErrSuperseded is returned when a newer Evaluate call started before
	// this one finished.
	ErrSuperseded = errors.New("evaluation superseded by a newer request")
)

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout sets the per-evaluation time limit. Non-positive values keep
// the default.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// outcome is what an evaluation goroutine hands back, tagged with the
// generation it was started under.
type outcome struct {
	gen  uint64
	desc *scene.Description
	errs []EvalError
	err  error
}

// next starts a new generation. Every in-flight evaluation from an older
// generation becomes stale.
func (e *Engine) next() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.generation++
	return e.generation
}

// current returns the newest generation.
func (e *Engine) current() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generation
}

// await blocks until results delivers, ctx ends or the engine timeout
// elapses. A stale outcome is dropped. The channel must be buffered so an
// abandoned goroutine can still deliver and exit.
func (e *Engine) await(ctx context.Context, results <-chan outcome) (*scene.Description, []EvalError, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	select {
	case o := <-results:
		if now := e.current(); o.gen != now {
			return nil, nil, fmt.Errorf("%w (generation %d, now %d)", ErrSuperseded, o.gen, now)
		}
		return o.desc, o.errs, o.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, nil, fmt.Errorf("%w after %s", ErrEvalTimeout, e.timeout)
		}
		return nil, nil, fmt.Errorf("evaluation abandoned: %w", ctx.Err())
	}
}
