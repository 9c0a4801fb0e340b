package scene

// ElementKind enumerates the kinds of scene elements.
type ElementKind int

const (
	ElementMirror    ElementKind = iota // spherical mirror
	ElementLens                         // two-faced lens
	ElementInterface                    // single refractive face
	ElementSource                       // ray emitter
)

func (k ElementKind) String() string {
	switch k {
	case ElementMirror:
		return "mirror"
	case ElementLens:
		return "lens"
	case ElementInterface:
		return "interface"
	case ElementSource:
		return "source"
	default:
		return "unknown"
	}
}

// IsSurface reports whether elements of this kind register surfaces.
func (k ElementKind) IsSurface() bool {
	return k == ElementMirror || k == ElementLens || k == ElementInterface
}

// Element is one named entry of a scene description.
type Element struct {
	ID   ElementID   `json:"id"`
	Kind ElementKind `json:"kind"`
	Name string      `json:"name,omitempty"`
	Data ElementData `json:"data"`
}

// ElementData is the interface for kind-specific element payloads.
type ElementData interface {
	elementData() // marker method restricting implementations to this package
}

// MirrorData describes a spherical mirror. Kind is "", "concave" or
// "convex"; when empty the sign of Radius decides.
type MirrorData struct {
	Vertex   float64 `json:"vertex"`
	Radius   float64 `json:"radius"`
	Aperture float64 `json:"aperture"` // half aperture, radians
	Kind     string  `json:"kind,omitempty"`
}

func (MirrorData) elementData() {}

// LensData describes a lens. Shape is "convergent" or "divergent".
type LensData struct {
	Center     float64 `json:"center"`
	Radius     float64 `json:"radius"`
	Separation float64 `json:"separation"`
	Index      float64 `json:"index"`
	Shape      string  `json:"shape"`
}

func (LensData) elementData() {}

// InterfaceData describes a single refractive face. Side is "left" or "right".
type InterfaceData struct {
	Center   float64 `json:"center"`
	Radius   float64 `json:"radius"`
	ThetaMin float64 `json:"theta_min"`
	ThetaMax float64 `json:"theta_max"`
	NLeft    float64 `json:"n_left"`
	NRight   float64 `json:"n_right"`
	Side     string  `json:"side"`
}

func (InterfaceData) elementData() {}

// SourceData describes a ray source. Mode is "point" or "parallel".
type SourceData struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	HalfAngle float64 `json:"half_angle,omitempty"`
	Rays      int     `json:"rays"`
	Mode      string  `json:"mode"`
	Height    float64 `json:"height,omitempty"`
}

func (SourceData) elementData() {}

// kindOf returns the element kind a payload belongs to.
func kindOf(d ElementData) (ElementKind, bool) {
	switch d.(type) {
	case MirrorData:
		return ElementMirror, true
	case LensData:
		return ElementLens, true
	case InterfaceData:
		return ElementInterface, true
	case SourceData:
		return ElementSource, true
	}
	return 0, false
}
