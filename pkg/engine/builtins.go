package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/chazu/dioptra/pkg/scene"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms scene source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: max-depth -> max_depth
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpElementRef is returned by every element form so scene code can bind
// elements to variables and print them.
type sexpElementRef struct {
	id   scene.ElementID
	kind scene.ElementKind
	name string
}

func (r *sexpElementRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s %q)", r.kind, r.name)
}
func (r *sexpElementRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// form decodes the arguments of one element form. The first error sticks;
// later calls become no-ops so a builtin can read every field and check
// err once.
type form struct {
	name string // form name, for messages
	pa   kwArgs
	used map[string]bool
	err  error
}

func newForm(name string, args []zygo.Sexp) *form {
	return &form{name: name, pa: parseArgs(args), used: make(map[string]bool)}
}

func (f *form) fail(format string, args ...any) {
	if f.err == nil {
		f.err = fmt.Errorf(f.name+": "+format, args...)
	}
}

func (f *form) lookup(key string, required bool) (zygo.Sexp, bool) {
	f.used[key] = true
	v, ok := f.pa.kw[key]
	if !ok && required {
		f.fail("missing :%s", key)
	}
	return v, ok
}

func (f *form) float(key string, dst *float64, required bool) {
	v, ok := f.lookup(key, required)
	if !ok || f.err != nil {
		return
	}
	x, err := toFloat64(v)
	if err != nil {
		f.fail("%s: %v", key, err)
		return
	}
	*dst = x
}

func (f *form) integer(key string, dst *int, required bool) {
	v, ok := f.lookup(key, required)
	if !ok || f.err != nil {
		return
	}
	n, err := toInt(v)
	if err != nil {
		f.fail("%s: %v", key, err)
		return
	}
	*dst = n
}

func (f *form) keyword(key string, dst *string, required bool) {
	v, ok := f.lookup(key, required)
	if !ok || f.err != nil {
		return
	}
	s, err := toKeywordString(v)
	if err != nil {
		f.fail("%s: %v", key, err)
		return
	}
	*dst = s
}

// label returns the optional leading name argument.
func (f *form) label() string {
	if len(f.pa.positional) == 0 || f.err != nil {
		return ""
	}
	s, err := toString(f.pa.positional[0])
	if err != nil {
		f.fail("name: %v", err)
		return ""
	}
	return s
}

// finish reports the first decoding error, or an unknown keyword or stray
// positional argument.
func (f *form) finish() error {
	if f.err != nil {
		return f.err
	}
	var unknown []string
	for k := range f.pa.kw {
		if !f.used[k] {
			unknown = append(unknown, ":"+k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%s: unknown keyword %s", f.name, strings.Join(unknown, ", "))
	}
	if len(f.pa.positional) > 1 {
		return fmt.Errorf("%s: unexpected argument %s", f.name, f.pa.positional[1].SexpString(nil))
	}
	return nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an integer. Floats are accepted when they are whole.
// maxExactFloat is the largest magnitude at which every float64 integer
// is exact.
const maxExactFloat = 1 << 53

func toInt(s zygo.Sexp) (int, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return int(v.Val), nil
	case *zygo.SexpFloat:
		if math.Abs(v.Val) > maxExactFloat {
			return 0, fmt.Errorf("integer %.4g out of range", v.Val)
		}
		if v.Val == math.Trunc(v.Val) {
			return int(v.Val), nil
		}
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_z) and plain strings ("z").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// builder collects elements into a description during one evaluation.
type builder struct {
	desc *scene.Description
	anon map[scene.ElementKind]int

	// failed is the first error a builtin returned. zygomys buries it in
	// its own message, so evaluate reports it directly.
	failed error
}

func (b *builder) fail(err error) (zygo.Sexp, error) {
	if b.failed == nil {
		b.failed = err
	}
	return zygo.SexpNull, err
}

// add registers an element and returns its reference. Unnamed elements get
// a per-kind sequence name so IDs stay deterministic.
func (b *builder) add(kind scene.ElementKind, name string, data scene.ElementData) zygo.Sexp {
	if name == "" {
		b.anon[kind]++
		name = fmt.Sprintf("%s-%d", kind, b.anon[kind])
	}
	id := scene.NewElementID(kind.String() + "/" + name)
	b.desc.Add(&scene.Element{ID: id, Kind: kind, Name: name, Data: data})
	return &sexpElementRef{id: id, kind: kind, name: name}
}

// registerBuiltins installs the scene builtins into a zygomys environment.
// The builtins append to d in call order.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, d *scene.Description) *builder {
	b := &builder{desc: d, anon: make(map[scene.ElementKind]int)}

	env.AddGlobal("pi", &zygo.SexpFloat{Val: math.Pi})

	// (deg 45)
	env.AddFunction("deg", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return b.fail(fmt.Errorf("deg requires exactly 1 argument, got %d", len(args)))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return b.fail(fmt.Errorf("deg: %w", err))
		}
		return &zygo.SexpFloat{Val: x * math.Pi / 180}, nil
	})

	// (mirror "m1" :vertex 15 :radius 15 :aperture (deg 45) :kind :concave)
	env.AddFunction("mirror", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f := newForm("mirror", args)
		label := f.label()
		var md scene.MirrorData
		f.float("vertex", &md.Vertex, true)
		f.float("radius", &md.Radius, true)
		f.float("aperture", &md.Aperture, true)
		f.keyword("kind", &md.Kind, false)
		if err := f.finish(); err != nil {
			return b.fail(err)
		}
		return b.add(scene.ElementMirror, label, md), nil
	})

	// (lens "l1" :center 0 :radius 12 :separation 0.5 :index 1.38 :shape :convergent)
	env.AddFunction("lens", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f := newForm("lens", args)
		label := f.label()
		ld := scene.LensData{Shape: "convergent"}
		f.float("center", &ld.Center, true)
		f.float("radius", &ld.Radius, true)
		f.float("separation", &ld.Separation, true)
		f.float("index", &ld.Index, true)
		f.keyword("shape", &ld.Shape, false)
		if err := f.finish(); err != nil {
			return b.fail(err)
		}
		return b.add(scene.ElementLens, label, ld), nil
	})

	// (dioptre "d1" :center 0 :radius 5 :from (- (/ pi 2)) :to (/ pi 2)
	//          :n-left 1 :n-right 1.5 :side :right)
	env.AddFunction("dioptre", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f := newForm("dioptre", args)
		label := f.label()
		fd := scene.InterfaceData{NLeft: 1, NRight: 1}
		f.float("center", &fd.Center, true)
		f.float("radius", &fd.Radius, true)
		f.float("from", &fd.ThetaMin, true)
		f.float("to", &fd.ThetaMax, true)
		f.float("n-left", &fd.NLeft, false)
		f.float("n-right", &fd.NRight, false)
		f.keyword("side", &fd.Side, true)
		if err := f.finish(); err != nil {
			return b.fail(err)
		}
		return b.add(scene.ElementInterface, label, fd), nil
	})

	// (source "sun" :x -10 :y 0 :rays 100 :mode :parallel :height 4)
	// (source "lamp" :x -6 :y 3 :rays 9 :half-angle (deg 10))
	env.AddFunction("source", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f := newForm("source", args)
		label := f.label()
		sd := scene.SourceData{Rays: 1, Mode: "point"}
		f.float("x", &sd.X, true)
		f.float("y", &sd.Y, false)
		f.integer("rays", &sd.Rays, false)
		f.keyword("mode", &sd.Mode, false)
		f.float("half-angle", &sd.HalfAngle, false)
		f.float("height", &sd.Height, false)
		if err := f.finish(); err != nil {
			return b.fail(err)
		}
		return b.add(scene.ElementSource, label, sd), nil
	})

	// (settings :reach 40 :max-depth 16)
	env.AddFunction("settings", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f := newForm("settings", args)
		f.float("reach", &d.Defaults.Reach, false)
		f.integer("max-depth", &d.Defaults.MaxDepth, false)
		if err := f.finish(); err != nil {
			return b.fail(err)
		}
		if len(f.pa.positional) > 0 {
			return b.fail(fmt.Errorf("settings takes keyword arguments only"))
		}
		return zygo.SexpNull, nil
	})

	return b
}
