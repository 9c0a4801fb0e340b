package optics

import (
	"errors"
	"math"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

func TestSourceValidate(t *testing.T) {
	tests := []struct {
		name    string
		src     Source
		wantErr bool
	}{
		{"point fan", Source{Count: 5, HalfAngle: 0.3, Mode: Point}, false},
		{"parallel bundle", Source{Count: 100, Height: 4, Mode: Parallel}, false},
		{"zero count", Source{Count: 0, Mode: Point}, true},
		{"negative count", Source{Count: -3, Mode: Parallel, Height: 1}, true},
		{"right angle fan", Source{Count: 3, HalfAngle: math.Pi / 2, Mode: Point}, true},
		{"negative half angle", Source{Count: 3, HalfAngle: -0.1, Mode: Point}, true},
		{"negative height", Source{Count: 3, Height: -1, Mode: Parallel}, true},
		{"nan origin", Source{Origin: v2.Vec{X: math.NaN()}, Count: 1, Mode: Point}, true},
		{"unknown mode", Source{Count: 1, Mode: SourceMode(4)}, true},
		{"count at cap", Source{Count: MaxSourceRays, Mode: Parallel, Height: 1}, false},
		{"count over cap", Source{Count: MaxSourceRays + 1, Mode: Point}, true},
		{"huge count", Source{Count: math.MaxInt, Mode: Parallel, Height: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.src.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSource) {
					t.Errorf("expected ErrInvalidSource, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestPointSourceEmit(t *testing.T) {
	src := Source{Origin: v2.Vec{X: -8, Y: 1}, HalfAngle: 0.4, Count: 5, Mode: Point}
	rays := src.Emit(DefaultReach)
	if len(rays) != 5 {
		t.Fatalf("emitted %d rays, want 5", len(rays))
	}
	want := []float64{-0.4, -0.2, 0, 0.2, 0.4}
	for i, r := range rays {
		if !near(r.Angle, want[i], 1e-12) {
			t.Errorf("ray %d angle = %v, want %v", i, r.Angle, want[i])
		}
		if r.Origin != src.Origin || r.Travel != Forward {
			t.Errorf("ray %d origin %v travel %v", i, r.Origin, r.Travel)
		}
		if r.Extent.End != 12 {
			t.Errorf("ray %d extent end %v, want 12", i, r.Extent.End)
		}
	}
}

func TestParallelSourceEmit(t *testing.T) {
	src := Source{Origin: v2.Vec{X: -10, Y: 0}, Count: 100, Mode: Parallel, Height: 4}
	rays := src.Emit(DefaultReach)
	if len(rays) != 100 {
		t.Fatalf("emitted %d rays, want 100", len(rays))
	}
	if !near(rays[0].Origin.Y, -2, 1e-12) || !near(rays[99].Origin.Y, 2, 1e-12) {
		t.Errorf("bundle spans [%v, %v], want [-2, 2]", rays[0].Origin.Y, rays[99].Origin.Y)
	}
	for i, r := range rays {
		if r.Angle != 0 || r.Origin.X != -10 {
			t.Fatalf("ray %d: origin %v angle %v", i, r.Origin, r.Angle)
		}
		if i > 0 && r.Origin.Y <= rays[i-1].Origin.Y {
			t.Fatalf("ray %d not above ray %d", i, i-1)
		}
	}

	// The bundle is centered on the axis whatever the source height.
	src.Origin.Y = 3
	if rays := src.Emit(DefaultReach); !near(rays[0].Origin.Y, -2, 1e-12) || !near(rays[99].Origin.Y, 2, 1e-12) {
		t.Errorf("raised source bundle spans [%v, %v], want [-2, 2]", rays[0].Origin.Y, rays[99].Origin.Y)
	}
}

func TestSingleRaySourceTakesLowEnd(t *testing.T) {
	point := Source{Origin: v2.Vec{X: 0, Y: 2}, HalfAngle: 0.5, Count: 1, Mode: Point}
	if rays := point.Emit(DefaultReach); len(rays) != 1 || rays[0].Angle != -0.5 || rays[0].Origin != point.Origin {
		t.Errorf("single point ray = %+v", rays)
	}
	par := Source{Origin: v2.Vec{X: 0, Y: 2}, Count: 1, Mode: Parallel, Height: 6}
	if rays := par.Emit(DefaultReach); len(rays) != 1 || rays[0].Origin.Y != -3 || rays[0].Angle != 0 {
		t.Errorf("single parallel ray = %+v", rays)
	}
	flat := Source{Count: 1, Mode: Point}
	if rays := flat.Emit(DefaultReach); len(rays) != 1 || rays[0].Angle != 0 {
		t.Errorf("single ray of a zero-width fan = %+v", rays)
	}
}
