package picking

import (
	"math"

	"scenequery/internal/bounds"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a half-line from Origin along the unit vector Direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at parametric distance t.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// ScreenToWorldRay returns the unit world-space direction through the pixel
// (screenX, screenY), with screen Y growing downwards. A non-positive
// viewport size is treated as a click at the screen center. A singular
// projection falls back to the view's forward axis; a singular view yields a
// NaN direction, which IntersectBox treats as a miss.
func ScreenToWorldRay(screenX, screenY, screenW, screenH float32, projection, view mgl32.Mat4) mgl32.Vec3 {
	var x, y float32
	if screenW > 0 && screenH > 0 {
		x = 2*screenX/screenW - 1
		y = 1 - 2*screenY/screenH
	}

	clip := mgl32.Vec4{x, y, -1, 1}
	eye := projection.Inv().Mul4x1(clip)
	// Keep only the direction in eye space.
	eye = mgl32.Vec4{eye.X(), eye.Y(), -1, 0}

	return view.Inv().Mul4x1(eye).Vec3().Normalize()
}

// CameraPosition returns the eye position encoded in a view matrix.
func CameraPosition(view mgl32.Mat4) mgl32.Vec3 {
	return view.Inv().Col(3).Vec3()
}

// ScreenRay combines CameraPosition and ScreenToWorldRay.
func ScreenRay(screenX, screenY, screenW, screenH float32, projection, view mgl32.Mat4) Ray {
	return Ray{
		Origin:    CameraPosition(view),
		Direction: ScreenToWorldRay(screenX, screenY, screenW, screenH, projection, view),
	}
}

// IntersectBox intersects a ray with b using the slab method and returns the
// entry distance and point. A ray starting inside the box hits at distance 0
// on its origin. Invalid boxes and rays with a NaN or infinite component
// never hit.
func IntersectBox(origin, direction mgl32.Vec3, b bounds.Box) (distance float32, point mgl32.Vec3, ok bool) {
	if !b.IsValid() || !finite(origin) || !finite(direction) {
		return 0, mgl32.Vec3{}, false
	}
	lo, hi := b.Min(), b.Max()

	tmin := float32(math.Inf(-1))
	tmax := float32(math.Inf(1))
	for a := 0; a < 3; a++ {
		if direction[a] == 0 {
			// Parallel to this slab: no constraint unless the origin is outside it.
			if origin[a] < lo[a] || origin[a] > hi[a] {
				return 0, mgl32.Vec3{}, false
			}
			continue
		}

		inv := 1 / direction[a]
		t1 := (lo[a] - origin[a]) * inv
		t2 := (hi[a] - origin[a]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	// Written so that a NaN slab bound is a miss.
	if !(tmin <= tmax) || tmax < 0 {
		return 0, mgl32.Vec3{}, false
	}
	if tmin < 0 {
		tmin = 0
	}
	return tmin, origin.Add(direction.Mul(tmin)), true
}

func finite(v mgl32.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(float64(c)) || math.IsInf(float64(c), 0) {
			return false
		}
	}
	return true
}
