package bounds

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

func TestVolumeLifecycle(t *testing.T) {
	v := NewVolume(unitBox())
	require.True(t, v.Dirty())

	_, ok := v.World()
	require.False(t, ok, "dirty volume must not expose a world box")

	v.Recompute(mgl32.Translate3D(0, 5, 0))
	require.False(t, v.Dirty())
	w, ok := v.World()
	require.True(t, ok)
	require.Equal(t, mgl32.Vec3{-1, 4, -1}, w.Min())
	require.Equal(t, mgl32.Vec3{1, 6, 1}, w.Max())

	v.MarkDirty()
	_, ok = v.World()
	require.False(t, ok)
}

func TestVolumeRecomputeIsIdempotent(t *testing.T) {
	m := mgl32.Translate3D(1, 2, 3).Mul4(mgl32.HomogRotate3DZ(0.3))
	v := NewVolume(unitBox())

	v.Recompute(m)
	first, _ := v.World()
	v.Recompute(m)
	second, _ := v.World()
	require.Equal(t, first, second)
}

func TestVolumeSetLocalMarksDirty(t *testing.T) {
	v := NewVolume(unitBox())
	v.Recompute(mgl32.Ident4())
	require.False(t, v.Dirty())

	v.SetLocal(NewBox(mgl32.Vec3{}, mgl32.Vec3{2, 2, 2}))
	require.True(t, v.Dirty())
	require.Equal(t, mgl32.Vec3{2, 2, 2}, v.Local().Max())
}

func TestVolumeInvalidLocal(t *testing.T) {
	v := NewVolume(Box{})
	v.Recompute(mgl32.Ident4())
	w, ok := v.World()
	require.True(t, ok)
	require.False(t, w.IsValid())
}
