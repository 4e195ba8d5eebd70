// Package placement scatters points on the ground plane with a minimum
// separation between any two of them.
package placement

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

var (
	// ErrExhausted is returned when a point could not be placed within the attempt budget.
	ErrExhausted = errors.New("placement: attempts exhausted")
	// ErrInvalidArgument is returned for a non-positive attempt budget or an empty area.
	ErrInvalidArgument = errors.New("placement: invalid argument")
)

const maxPrealloc = 1024

// Point is a position on the XZ plane.
type Point struct {
	X, Z float32
}

// Rect is a half-open area [MinX, MinX+Width) x [MinZ, MinZ+Depth).
type Rect struct {
	MinX, MinZ   float32
	Width, Depth float32
}

// Contains reports whether p lies inside the half-open area.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X < r.MinX+r.Width &&
		p.Z >= r.MinZ && p.Z < r.MinZ+r.Depth
}

// Distance is the Euclidean distance between two points.
func Distance(a, b Point) float32 {
	dx := float64(a.X - b.X)
	dz := float64(a.Z - b.Z)
	return float32(math.Sqrt(dx*dx + dz*dz))
}

// Scatter draws count points uniformly inside area, rejecting any candidate
// closer than minSeparation to a point already accepted. Each point gets at
// most maxAttempts draws. When a point cannot be placed the points accepted so
// far are returned together with an error wrapping ErrExhausted.
func Scatter(rng *rand.Rand, area Rect, count int, minSeparation float32, maxAttempts int) ([]Point, error) {
	if maxAttempts <= 0 {
		return nil, fmt.Errorf("%w: maxAttempts must be positive, got %d", ErrInvalidArgument, maxAttempts)
	}
	if area.Width <= 0 || area.Depth <= 0 {
		return nil, fmt.Errorf("%w: empty area %+v", ErrInvalidArgument, area)
	}
	if count <= 0 {
		return nil, nil
	}

	// count comes from config and may be far larger than what fits
	points := make([]Point, 0, min(count, maxPrealloc))
	for len(points) < count {
		placed := false
		for attempt := 0; attempt < maxAttempts; attempt++ {
			candidate := Point{
				X: area.MinX + rng.Float32()*area.Width,
				Z: area.MinZ + rng.Float32()*area.Depth,
			}
			if separated(candidate, points, minSeparation) {
				points = append(points, candidate)
				placed = true
				break
			}
		}
		if !placed {
			return points, fmt.Errorf("%w: placed %d of %d points after %d attempts", ErrExhausted, len(points), count, maxAttempts)
		}
	}
	return points, nil
}

func separated(candidate Point, accepted []Point, minSeparation float32) bool {
	for _, p := range accepted {
		if Distance(candidate, p) < minSeparation {
			return false
		}
	}
	return true
}
