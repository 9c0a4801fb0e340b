package optics

import (
	"fmt"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// DefaultMaxDepth bounds the number of redirections along one light path.
// Facing mirrors can otherwise bounce a ray forever.
const DefaultMaxDepth = 64

// Option configures a Scene.
type Option func(*Scene)

// WithReach sets how far uncontacted rays extend along x.
func WithReach(reach float64) Option {
	return func(s *Scene) {
		if reach > 0 {
			s.reach = reach
		}
	}
}

// WithMaxDepth sets the redirection cap. Values below zero are ignored.
func WithMaxDepth(depth int) Option {
	return func(s *Scene) {
		if depth >= 0 {
			s.maxDepth = depth
		}
	}
}

// Scene owns the registered surfaces. Surfaces are appended while the
// scene is built; tracing only reads them.
type Scene struct {
	surfaces   []Surface
	interfaces []SurfaceID
	mirrors    []SurfaceID

	reach    float64
	maxDepth int
}

// NewScene returns an empty scene.
func NewScene(opts ...Option) *Scene {
	s := &Scene{reach: DefaultReach, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reach returns the configured ray reach.
func (s *Scene) Reach() float64 { return s.reach }

// MaxDepth returns the configured redirection cap.
func (s *Scene) MaxDepth() int { return s.maxDepth }

// AddMirror registers m and returns its ID.
func (s *Scene) AddMirror(m *Mirror) SurfaceID {
	id := s.add(m)
	s.mirrors = append(s.mirrors, id)
	return id
}

// AddInterface registers f and returns its ID.
func (s *Scene) AddInterface(f *Interface) SurfaceID {
	id := s.add(f)
	s.interfaces = append(s.interfaces, id)
	return id
}

// AddLens registers both faces of l, left face first.
func (s *Scene) AddLens(l *Lens) [2]SurfaceID {
	faces := l.Interfaces()
	return [2]SurfaceID{s.AddInterface(faces[0]), s.AddInterface(faces[1])}
}

func (s *Scene) add(surf Surface) SurfaceID {
	s.surfaces = append(s.surfaces, surf)
	return SurfaceID(len(s.surfaces) - 1)
}

// Surface returns the surface with the given ID, or nil.
func (s *Scene) Surface(id SurfaceID) Surface {
	if id < 0 || int(id) >= len(s.surfaces) {
		return nil
	}
	return s.surfaces[id]
}

// Surfaces returns all surfaces in registration order.
func (s *Scene) Surfaces() []Surface {
	return append([]Surface(nil), s.surfaces...)
}

// Len returns the number of registered surfaces.
func (s *Scene) Len() int { return len(s.surfaces) }

// scanOrder lists the surfaces a ray checks, in order: interfaces in
// registration order (reversed for Backward rays), then every mirror.
func (s *Scene) scanOrder(t Travel) []SurfaceID {
	order := make([]SurfaceID, 0, len(s.surfaces))
	if t == Backward {
		for i := len(s.interfaces) - 1; i >= 0; i-- {
			order = append(order, s.interfaces[i])
		}
	} else {
		order = append(order, s.interfaces...)
	}
	return append(order, s.mirrors...)
}

// Event records one contact along a light path.
type Event struct {
	Kind    EventKind `json:"kind"`
	Ray     int       `json:"ray"`   // index of the incoming ray
	Child   int       `json:"child"` // index of the spawned ray, -1 if none
	Surface SurfaceID `json:"surface"`
	Point   v2.Vec    `json:"point"`
	Redirection
	Err error `json:"-"` // ErrUndefinedRefraction when the branch ended here
}

// Stats summarizes a trace.
type Stats struct {
	Seeds        int `json:"seeds"`
	Rays         int `json:"rays"`
	Reflections  int `json:"reflections"`
	Refractions  int `json:"refractions"`
	Undefined    int `json:"undefined"`
	DepthLimited int `json:"depth_limited"`
}

// Result is the output of a trace. Rays are grouped by seed in emission
// order; within a seed each ray precedes the ray it spawned.
type Result struct {
	Rays   []Ray
	Events []Event
	Stats  Stats
}

// Children returns the rays spawned by the ray at index i.
func (res *Result) Children(i int) []Ray {
	var out []Ray
	for _, r := range res.Rays {
		if r.Parent == i {
			out = append(out, r)
		}
	}
	return out
}

// Path returns the chain of rays starting at index i.
func (res *Result) Path(i int) []Ray {
	var path []Ray
	for i >= 0 && i < len(res.Rays) {
		r := res.Rays[i]
		path = append(path, r)
		if r.Termination != Redirected {
			break
		}
		i++
	}
	return path
}

// Seeds returns the indices of rays emitted directly by sources.
func (res *Result) Seeds() []int {
	var seeds []int
	for _, r := range res.Rays {
		if r.Parent < 0 {
			seeds = append(seeds, r.Index)
		}
	}
	return seeds
}

// Trace emits every source's rays and propagates each one. Sources are
// validated first; an invalid source fails the whole trace.
func (s *Scene) Trace(sources ...*Source) (*Result, error) {
	for i, src := range sources {
		if src == nil {
			return nil, fmt.Errorf("source %d: %w: nil source", i, ErrInvalidSource)
		}
		if err := src.Validate(); err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
	}

	res := &Result{}
	for _, src := range sources {
		for _, seed := range src.Emit(s.reach) {
			s.propagate(seed, res)
		}
	}
	return res, nil
}

// Propagate traces a single seed ray.
func (s *Scene) Propagate(seed Ray) *Result {
	res := &Result{}
	s.propagate(seed, res)
	return res
}

// propagate expands one seed with an explicit work stack. Each popped ray
// resolves at most one contact and pushes at most one child.
func (s *Scene) propagate(seed Ray, res *Result) {
	seed.Parent = -1
	seed.Depth = 0
	res.Stats.Seeds++

	stack := []Ray{seed}
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		r.Index = len(res.Rays)
		child, ok := s.resolve(&r, res)
		res.Rays = append(res.Rays, r)
		res.Stats.Rays++
		if ok {
			stack = append(stack, child)
		}
	}
}

// resolve finds the first valid contact for r in scan order, truncates r
// there and builds the child ray. It records an Event for every contact.
func (s *Scene) resolve(r *Ray, res *Result) (Ray, bool) {
	r.Termination = Exited

	for _, id := range s.scanOrder(r.Travel) {
		surf := s.surfaces[id]
		p, ok := surf.Contact(*r)
		if !ok {
			continue
		}
		r.truncate(p.X)

		red, err := surf.Redirect(*r, p)
		ev := Event{Ray: r.Index, Child: -1, Surface: id, Point: p, Redirection: red}
		if surf.Kind() == SurfaceMirror {
			ev.Kind = Reflection
		} else {
			ev.Kind = Refraction
		}

		if err != nil {
			r.Termination = UndefinedRefraction
			ev.Err = err
			res.Stats.Undefined++
			res.Events = append(res.Events, ev)
			return Ray{}, false
		}
		if ev.Kind == Reflection {
			res.Stats.Reflections++
		} else {
			res.Stats.Refractions++
		}
		if r.Depth >= s.maxDepth {
			r.Termination = DepthLimited
			res.Stats.DepthLimited++
			res.Events = append(res.Events, ev)
			return Ray{}, false
		}

		child := NewRay(p, red.Angle, red.Travel, s.reach)
		child.Parent = r.Index
		child.Surface = id
		child.Depth = r.Depth + 1

		r.Termination = Redirected
		// The child is appended right after its parent.
		ev.Child = r.Index + 1
		res.Events = append(res.Events, ev)
		return child, true
	}
	return Ray{}, false
}
