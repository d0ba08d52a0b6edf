package culling

import (
	"scenequery/internal/bounds"
	"scenequery/internal/config"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/go-gl/mathgl/mgl32"
)

// Result is the outcome of testing a box against the frustum.
type Result int

const (
	Outside Result = iota
	Intersecting
	Inside
)

func (r Result) String() string {
	switch r {
	case Outside:
		return "outside"
	case Intersecting:
		return "intersecting"
	case Inside:
		return "inside"
	default:
		return "unknown"
	}
}

// Plane indices, in extraction order.
const (
	PlaneLeft = iota
	PlaneRight
	PlaneBottom
	PlaneTop
	PlaneNear
	PlaneFar
)

var planeNames = [6]string{"left", "right", "bottom", "top", "near", "far"}

// Plane is the half-space Normal·p + D >= 0.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// Distance returns the signed distance of pt to the plane. It is a true
// distance only when the plane is normalized.
func (p Plane) Distance(pt mgl32.Vec3) float32 {
	return p.Normal.Dot(pt) + p.D
}

// Frustum holds the six camera planes of the current frame.
// It is owned by the render thread and is not safe for concurrent use.
type Frustum struct {
	// NearBias is added to the near plane distance when rejecting boxes.
	NearBias float32
	// Epsilon is the normal length at or under which a plane is left
	// unnormalized.
	Epsilon float32

	planes     [6]Plane
	degenerate bool
}

// NewFrustum returns a frustum using the current config tuning. Until Update
// is called every plane is zero, so every valid box classifies Inside.
func NewFrustum() *Frustum {
	return &Frustum{
		NearBias: config.GetNearPlaneBias(),
		Epsilon:  config.GetPlaneEpsilon(),
	}
}

// Update extracts the planes from projection*view.
//
// Side and far planes use the Gribb-Hartmann row combinations. The near plane
// is row 2 of the clip matrix on its own rather than row3+row2.
func (f *Frustum) Update(projection, view mgl32.Mat4) {
	clip := projection.Mul4(view)

	// Matrix is in column-major order in mgl32
	m00, m01, m02, m03 := clip[0], clip[4], clip[8], clip[12]
	m10, m11, m12, m13 := clip[1], clip[5], clip[9], clip[13]
	m20, m21, m22, m23 := clip[2], clip[6], clip[10], clip[14]
	m30, m31, m32, m33 := clip[3], clip[7], clip[11], clip[15]

	f.planes[PlaneLeft] = Plane{mgl32.Vec3{m30 + m00, m31 + m01, m32 + m02}, m33 + m03}
	f.planes[PlaneRight] = Plane{mgl32.Vec3{m30 - m00, m31 - m01, m32 - m02}, m33 - m03}
	f.planes[PlaneBottom] = Plane{mgl32.Vec3{m30 + m10, m31 + m11, m32 + m12}, m33 + m13}
	f.planes[PlaneTop] = Plane{mgl32.Vec3{m30 - m10, m31 - m11, m32 - m12}, m33 - m13}
	f.planes[PlaneNear] = Plane{mgl32.Vec3{m20, m21, m22}, m23}
	f.planes[PlaneFar] = Plane{mgl32.Vec3{m30 - m20, m31 - m21, m32 - m22}, m33 - m23}

	f.degenerate = false
	for i := range f.planes {
		if !f.normalize(i) {
			f.degenerate = true
		}
	}
}

func (f *Frustum) normalize(i int) bool {
	p := f.planes[i]
	l := p.Normal.Len()
	if l <= f.Epsilon {
		degeneratePlanes.Inc()
		logs.Warn(errors.New("degenerate frustum plane").
			WithTag("plane", planeNames[i]).
			WithTag("length", l))
		return false
	}
	f.planes[i] = Plane{p.Normal.Mul(1 / l), p.D / l}
	return true
}

// Planes returns the planes in left, right, bottom, top, near, far order.
func (f *Frustum) Planes() [6]Plane { return f.planes }

// Degenerate reports whether the last Update left a plane unnormalized.
func (f *Frustum) Degenerate() bool { return f.degenerate }

// Classify tests b against the six planes. Invalid boxes are Outside.
func (f *Frustum) Classify(b bounds.Box) Result {
	if !b.IsValid() {
		return Outside
	}
	min, max := b.Min(), b.Max()

	var inner [6]mgl32.Vec3
	for i := range f.planes {
		p := f.planes[i]
		// outer is the corner farthest along the normal, inner the nearest
		outer, in := max, min
		for a := 0; a < 3; a++ {
			if p.Normal[a] < 0 {
				outer[a], in[a] = min[a], max[a]
			}
		}
		inner[i] = in

		d := p.Distance(outer)
		if i == PlaneNear {
			d += f.NearBias
		}
		if d < 0 {
			return Outside
		}
	}

	for i := range f.planes {
		if f.planes[i].Distance(inner[i]) < 0 {
			return Intersecting
		}
	}
	return Inside
}

// ContainsPoint reports whether p lies in all six half-spaces.
func (f *Frustum) ContainsPoint(p mgl32.Vec3) bool {
	for i := range f.planes {
		if f.planes[i].Distance(p) < 0 {
			return false
		}
	}
	return true
}
