// Package engine provides the scene language for dioptra.
// It wraps zygomys in a sandboxed environment and produces a
// scene.Description from user source code.
package engine

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chazu/dioptra/pkg/scene"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error, a runtime error in user code or a validation error.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// EvalWarning represents a non-fatal warning produced during evaluation.
type EvalWarning struct {
	Line      int
	Col       int
	Message   string
	ElementID scene.ElementID
}

// EvalResult bundles the full output of an evaluation for callers that
// want validation folded in.
type EvalResult struct {
	Description *scene.Description
	Errors      []EvalError
	Warnings    []EvalWarning
}

// Engine wraps the zygomys interpreter for scene evaluation.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64
	timeout    time.Duration
}

// NewEngine creates a new Engine instance.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{timeout: DefaultEvalTimeout}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate takes scene source code and produces a new Description.
// Each call creates a fresh zygomys sandbox for deterministic evaluation.
//
// Return semantics:
//   - On success: returns description + nil errors + nil error
//   - On parse/eval failure: returns nil description + eval errors + nil error
//   - On fatal failure (timeout, panic, superseded): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*scene.Description, []EvalError, error) {
	return e.EvaluateContext(context.Background(), source)
}

// EvaluateContext is Evaluate with a caller-supplied context. When ctx ends
// first the sandbox keeps running in the background and its result is
// discarded.
func (e *Engine) EvaluateContext(ctx context.Context, source string) (*scene.Description, []EvalError, error) {
	gen := e.next()
	results := make(chan outcome, 1)

	go func() {
		o := outcome{gen: gen}
		defer func() {
			if r := recover(); r != nil {
				o = outcome{gen: gen, err: fmt.Errorf("panic during evaluation: %v", r)}
			}
			results <- o
		}()
		o.desc, o.errs, o.err = evaluate(source, gen)
	}()

	return e.await(ctx, results)
}

// EvaluateFull evaluates source and runs every validation tier on the
// result. Validation errors are reported as EvalErrors and clear the
// description; warnings never do.
func (e *Engine) EvaluateFull(source string) EvalResult {
	d, evalErrs, err := e.Evaluate(source)
	if err != nil {
		return EvalResult{Errors: []EvalError{{Message: err.Error()}}}
	}
	if len(evalErrs) > 0 {
		return EvalResult{Errors: evalErrs}
	}

	vr := scene.ValidateAll(d)
	res := EvalResult{Description: d}
	for _, ve := range vr.Errors {
		res.Errors = append(res.Errors, EvalError{Message: ve.Message})
	}
	for _, w := range vr.Warnings {
		res.Warnings = append(res.Warnings, EvalWarning{Message: w.Message, ElementID: w.ElementID})
	}
	if len(res.Errors) > 0 {
		res.Description = nil
	}
	return res
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func evaluate(source string, gen uint64) (*scene.Description, []EvalError, error) {
	d := scene.New()
	d.Version = gen

	// Empty source is a valid program that produces an empty scene.
	if strings.TrimSpace(source) == "" {
		return d, nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	b := registerBuiltins(env, d)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		errs := parseZygomysError(err)
		if b.failed != nil {
			errs[0].Message = b.failed.Error()
		}
		return nil, errs, nil
	}
	return d, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
// It attempts to extract line number information from the error message.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	// zygomys formats parse errors as "Error on line N: <details>\n"
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
			}}
		}
	}

	// Fallback: no line info available.
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
