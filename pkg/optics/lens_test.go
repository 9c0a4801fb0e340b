package optics

import (
	"errors"
	"math"
	"testing"
)

func TestNewLensInvalidShape(t *testing.T) {
	_, err := NewLens(0, 12, 0.5, 1.38, LensShape(7))
	if !errors.Is(err, ErrInvalidLensShape) {
		t.Fatalf("expected ErrInvalidLensShape, got %v", err)
	}

	// Shape is checked before geometry.
	_, err = NewLens(0, 0, 0, 0, LensShape(-1))
	if !errors.Is(err, ErrInvalidLensShape) {
		t.Fatalf("expected ErrInvalidLensShape for degenerate lens with bad shape, got %v", err)
	}

	if _, err := ParseLensShape("concave"); !errors.Is(err, ErrInvalidLensShape) {
		t.Errorf("ParseLensShape(concave): expected ErrInvalidLensShape, got %v", err)
	}
	if s, err := ParseLensShape("Divergent"); err != nil || s != Divergent {
		t.Errorf("ParseLensShape(Divergent) = %v, %v", s, err)
	}
}

func TestNewLensDegenerate(t *testing.T) {
	tests := []struct {
		name                     string
		radius, separation, index float64
	}{
		{"zero radius", 0, 0.5, 1.5},
		{"negative radius", -12, 0.5, 1.5},
		{"zero separation", 12, 0, 1.5},
		{"separation beyond radius", 12, 13, 1.5},
		{"zero index", 12, 0.5, 0},
		{"infinite radius", math.Inf(1), 0.5, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLens(0, tt.radius, tt.separation, tt.index, Convergent)
			if !errors.Is(err, ErrDegenerateGeometry) {
				t.Errorf("expected ErrDegenerateGeometry, got %v", err)
			}
		})
	}
}

func TestLensFaces(t *testing.T) {
	type face struct {
		center     float64
		side       Side
		nl, nr     float64
		xmin, xmax float64
	}
	tests := []struct {
		name  string
		shape LensShape
		want  [2]face
	}{
		{
			name:  "convergent",
			shape: Convergent,
			want: [2]face{
				{center: 11.5, side: Left, nl: 1, nr: 1.38, xmin: -0.5, xmax: 0},
				{center: -11.5, side: Right, nl: 1.38, nr: 1, xmin: 0, xmax: 0.5},
			},
		},
		{
			name:  "divergent",
			shape: Divergent,
			want: [2]face{
				{center: -12.5, side: Right, nl: 1, nr: 1.38, xmin: -1, xmax: -0.5},
				{center: 12.5, side: Left, nl: 1.38, nr: 1, xmin: 0.5, xmax: 1},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := mustLens(t, 0, 12, 0.5, 1.38, tt.shape)
			for i, f := range l.Interfaces() {
				w := tt.want[i]
				if !near(f.Center, w.center, tol) || f.Side != w.side {
					t.Errorf("face %d: center %v side %v, want %v %v", i, f.Center, f.Side, w.center, w.side)
				}
				if f.NLeft != w.nl || f.NRight != w.nr {
					t.Errorf("face %d: indices %v/%v, want %v/%v", i, f.NLeft, f.NRight, w.nl, w.nr)
				}
				b := f.Bounds()
				if !near(b.XMin, w.xmin, 1e-9) || !near(b.XMax, w.xmax, 1e-9) {
					t.Errorf("face %d: x bounds [%v, %v], want [%v, %v]", i, b.XMin, b.XMax, w.xmin, w.xmax)
				}
			}
			if want := math.Sqrt(144 - 11.5*11.5); !near(l.Aperture(), want, 1e-9) {
				t.Errorf("aperture = %v, want %v", l.Aperture(), want)
			}
		})
	}
}

func TestLensShiftedCenter(t *testing.T) {
	l := mustLens(t, 5, 12, 0.5, 1.5, Convergent)
	faces := l.Interfaces()
	if !near(faces[0].Center, 16.5, tol) || !near(faces[1].Center, -6.5, tol) {
		t.Errorf("face centers = %v, %v; want 16.5, -6.5", faces[0].Center, faces[1].Center)
	}
	if b := faces[0].Bounds(); !near(b.XMin, 4.5, tol) {
		t.Errorf("entry vertex at %v, want 4.5", b.XMin)
	}
}
