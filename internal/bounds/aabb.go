package bounds

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	posInf = float32(math.Inf(1))
	negInf = float32(math.Inf(-1))
)

// Box is an axis-aligned bounding box that may be invalid.
// The zero value is invalid. An invalid box never carries geometry: every
// operation checks validity first and min/max must not be read from it.
type Box struct {
	min   mgl32.Vec3
	max   mgl32.Vec3
	valid bool
}

// Empty returns an invalid box holding the +inf/-inf sentinels, ready to be
// grown with Expand.
func Empty() Box {
	return Box{
		min: mgl32.Vec3{posInf, posInf, posInf},
		max: mgl32.Vec3{negInf, negInf, negInf},
	}
}

// NewBox returns a valid box spanning min..max. Callers are responsible for
// min <= max componentwise.
func NewBox(min, max mgl32.Vec3) Box {
	return Box{min: min, max: max, valid: true}
}

// FromCenterSize creates a box from a center point and full size dimensions.
func FromCenterSize(center, size mgl32.Vec3) Box {
	half := size.Mul(0.5)
	return NewBox(center.Sub(half), center.Add(half))
}

// FromVertices scans a flat coordinate buffer, reading an (x, y, z) triple at
// offset, offset+stride, ... until a triple would run past the end.
// Returns an invalid box for an empty buffer, stride < 3 or no complete triple.
func FromVertices(coords []float32, stride, offset int) Box {
	b := Empty()
	if len(coords) == 0 || stride < 3 || offset < 0 {
		return b
	}
	for i := offset; i+2 < len(coords); i += stride {
		b.Expand(mgl32.Vec3{coords[i], coords[i+1], coords[i+2]})
	}
	return b
}

// IsValid reports whether the box holds geometry.
func (b Box) IsValid() bool { return b.valid }

// Min returns the lower corner. Unspecified when the box is invalid.
func (b Box) Min() mgl32.Vec3 { return b.min }

// Max returns the upper corner. Unspecified when the box is invalid.
func (b Box) Max() mgl32.Vec3 { return b.max }

// Center returns (min+max)/2.
func (b Box) Center() mgl32.Vec3 { return b.min.Add(b.max).Mul(0.5) }

// Size returns the extents max-min.
func (b Box) Size() mgl32.Vec3 { return b.max.Sub(b.min) }

// Reset returns the box to the invalid sentinel state.
func (b *Box) Reset() { *b = Empty() }

// Expand grows the box to include p. An invalid box becomes the degenerate
// box at p.
func (b *Box) Expand(p mgl32.Vec3) {
	if !b.valid {
		b.min, b.max, b.valid = p, p, true
		return
	}
	for i := 0; i < 3; i++ {
		if p[i] < b.min[i] {
			b.min[i] = p[i]
		}
		if p[i] > b.max[i] {
			b.max[i] = p[i]
		}
	}
}

// Corners returns the 8 corners, indexed by bit 0 = x, bit 1 = y, bit 2 = z
// (bit set picks max).
func (b Box) Corners() [8]mgl32.Vec3 {
	var c [8]mgl32.Vec3
	for i := range c {
		c[i] = b.min
		if i&1 != 0 {
			c[i][0] = b.max[0]
		}
		if i&2 != 0 {
			c[i][1] = b.max[1]
		}
		if i&4 != 0 {
			c[i][2] = b.max[2]
		}
	}
	return c
}

// Transform maps the 8 corners through m with perspective division and
// returns the axis-aligned bound of the result. After a rotation this is a
// conservative, possibly loose bound.
func (b Box) Transform(m mgl32.Mat4) Box {
	if !b.valid {
		return Empty()
	}
	out := Empty()
	for _, c := range b.Corners() {
		p := m.Mul4x1(c.Vec4(1))
		// Points at infinity (w == 0) keep their homogeneous xyz.
		if w := p.W(); w != 0 && w != 1 {
			p = p.Mul(1 / w)
		}
		out.Expand(p.Vec3())
	}
	return out
}

// Merge returns the union of b and o. An invalid operand is ignored; two
// invalid operands yield an invalid box.
func (b Box) Merge(o Box) Box {
	switch {
	case !b.valid && !o.valid:
		return Empty()
	case !o.valid:
		return b
	case !b.valid:
		return o
	}
	out := b
	for i := 0; i < 3; i++ {
		out.min[i] = min(b.min[i], o.min[i])
		out.max[i] = max(b.max[i], o.max[i])
	}
	return out
}

// Contains reports whether p lies inside the box, faces included.
func (b Box) Contains(p mgl32.Vec3) bool {
	if !b.valid {
		return false
	}
	return p.X() >= b.min.X() && p.X() <= b.max.X() &&
		p.Y() >= b.min.Y() && p.Y() <= b.max.Y() &&
		p.Z() >= b.min.Z() && p.Z() <= b.max.Z()
}

// Intersects reports whether the two boxes overlap, touching faces included.
func (b Box) Intersects(o Box) bool {
	if !b.valid || !o.valid {
		return false
	}
	return b.min.X() <= o.max.X() && b.max.X() >= o.min.X() &&
		b.min.Y() <= o.max.Y() && b.max.Y() >= o.min.Y() &&
		b.min.Z() <= o.max.Z() && b.max.Z() >= o.min.Z()
}

func (b Box) String() string {
	if !b.valid {
		return "Box{invalid}"
	}
	return fmt.Sprintf("Box{min: %v, max: %v}", b.min, b.max)
}
