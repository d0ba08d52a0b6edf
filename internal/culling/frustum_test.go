package culling

import (
	"testing"

	"scenequery/internal/bounds"
	"scenequery/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProjection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(60), 1, 0.1, 100)
}

// Camera at the origin looking down -Z.
func testFrustum() *Frustum {
	f := NewFrustum()
	f.Update(testProjection(), mgl32.LookAtV(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}))
	return f
}

func box(minX, minY, minZ, maxX, maxY, maxZ float32) bounds.Box {
	return bounds.NewBox(mgl32.Vec3{minX, minY, minZ}, mgl32.Vec3{maxX, maxY, maxZ})
}

func TestFrustumPlanesAreNormalized(t *testing.T) {
	f := testFrustum()
	require.False(t, f.Degenerate())
	for i, p := range f.Planes() {
		assert.InDelta(t, 1, p.Normal.Len(), 1e-5, "plane %s", planeNames[i])
	}

	// Near plane comes from row 2 alone: it faces the camera's view direction.
	near := f.Planes()[PlaneNear]
	assert.InDelta(t, -1, near.Normal.Z(), 1e-5)
	assert.InDelta(t, -0.1998, near.D, 1e-3)

	far := f.Planes()[PlaneFar]
	assert.InDelta(t, 100, far.Distance(mgl32.Vec3{}), 0.1)
}

func TestFrustumClassify(t *testing.T) {
	f := testFrustum()

	tests := []struct {
		name string
		box  bounds.Box
		want Result
	}{
		{"inside with margin", box(-1, -1, -11, 1, 1, -9), Inside},
		{"beyond far plane", box(-1, -1, -200, 1, 1, -150), Outside},
		{"behind camera", box(-1, -1, 5, 1, 1, 10), Outside},
		{"left of frustum", box(-40, -1, -11, -30, 1, -9), Outside},
		{"above frustum", box(-1, 30, -11, 1, 40, -9), Outside},
		{"straddles right plane", box(5, -1, -11, 6.5, 1, -9), Intersecting},
		{"straddles far plane", box(-1, -1, -105, 1, 1, -95), Intersecting},
		{"contains the frustum", box(-500, -500, -500, 500, 500, 500), Intersecting},
		{"invalid", bounds.Box{}, Outside},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, f.Classify(tt.box))
		})
	}
}

func TestFrustumNearBias(t *testing.T) {
	f := testFrustum()
	// Just in front of the near plane cut at ~0.2 but within the bias.
	b := box(-0.01, -0.01, -0.18, 0.01, 0.01, -0.16)

	require.Equal(t, Intersecting, f.Classify(b))

	f.NearBias = 0
	require.Equal(t, Outside, f.Classify(b))
}

func TestFrustumFollowsView(t *testing.T) {
	f := NewFrustum()
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	f.Update(testProjection(), view)

	require.Equal(t, Inside, f.Classify(box(-1, -1, -1, 1, 1, 1)))
	require.Equal(t, Outside, f.Classify(box(-1, -1, 11, 1, 1, 12)))
	require.True(t, f.ContainsPoint(mgl32.Vec3{}))
	require.False(t, f.ContainsPoint(mgl32.Vec3{0, 0, 20}))
}

func TestFrustumDegeneratePlanes(t *testing.T) {
	before := testutil.ToFloat64(degeneratePlanes)

	f := NewFrustum()
	require.NotPanics(t, func() {
		f.Update(mgl32.Mat4{}, mgl32.Ident4())
	})
	require.True(t, f.Degenerate())
	require.Equal(t, float64(6), testutil.ToFloat64(degeneratePlanes)-before)

	for _, b := range []bounds.Box{box(-1, -1, -1, 1, 1, 1), bounds.Box{}, box(1e6, 1e6, 1e6, 2e6, 2e6, 2e6)} {
		r := f.Classify(b)
		require.Contains(t, []Result{Outside, Intersecting, Inside}, r)
	}

	f.Update(testProjection(), mgl32.Ident4())
	require.False(t, f.Degenerate())
}

func TestResultString(t *testing.T) {
	require.Equal(t, "outside", Outside.String())
	require.Equal(t, "intersecting", Intersecting.String())
	require.Equal(t, "inside", Inside.String())
	require.Equal(t, "unknown", Result(9).String())
}

func TestCull(t *testing.T) {
	s := scene.New()
	inside := s.Spawn(box(-1, -1, -1, 1, 1, 1), mgl32.Translate3D(0, 0, -10))
	behind := s.Spawn(box(-1, -1, -1, 1, 1, 1), mgl32.Translate3D(0, 0, 10))
	edge := s.Spawn(box(-1, -1, -1, 1, 1, 1), mgl32.Translate3D(5.8, 0, -10))
	stale := s.Spawn(box(-1, -1, -1, 1, 1, 1), mgl32.Translate3D(0, 0, -20))
	require.NoError(t, s.Add(scene.NewEntity(1000, nil)))

	s.UpdateBounds()
	stale.SetTransform(mgl32.Translate3D(0, 0, -30))

	visible := Cull(testFrustum(), s.All())
	require.Len(t, visible, 2)
	require.Same(t, inside, visible[0])
	require.Same(t, edge, visible[1])

	require.True(t, inside.Volume().Visible())
	require.True(t, edge.Volume().Visible())
	require.False(t, behind.Volume().Visible())
	require.False(t, stale.Volume().Visible())
}

func BenchmarkClassify(b *testing.B) {
	f := testFrustum()
	boxes := []bounds.Box{
		box(-1, -1, -11, 1, 1, -9),
		box(5, -1, -11, 6.5, 1, -9),
		box(-1, -1, 5, 1, 1, 10),
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = f.Classify(boxes[i%len(boxes)])
	}
}
