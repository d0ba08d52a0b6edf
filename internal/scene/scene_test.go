package scene

import (
	"testing"

	"scenequery/internal/bounds"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

func unitBox() bounds.Box {
	return bounds.NewBox(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})
}

func TestSceneSpawnAndGet(t *testing.T) {
	s := New()
	a := s.Spawn(unitBox(), mgl32.Ident4())
	b := s.Spawn(unitBox(), mgl32.Translate3D(3, 0, 0))
	require.NotEqual(t, a.ID, b.ID)
	require.Equal(t, 2, s.Len())

	got, err := s.Get(b.ID)
	require.NoError(t, err)
	require.Same(t, b, got)

	_, err = s.Get(999)
	require.Error(t, err)
}

func TestSceneAddDuplicate(t *testing.T) {
	s := New()
	require.NoError(t, s.Add(NewEntity(7, nil)))
	require.Error(t, s.Add(NewEntity(7, nil)))

	// Spawn skips ids taken by Add.
	for i := 0; i < 8; i++ {
		e := s.Spawn(unitBox(), mgl32.Ident4())
		require.NotEqual(t, EntityID(7), e.ID)
	}
}

func TestSceneAddNil(t *testing.T) {
	s := New()
	require.Error(t, s.Add(nil))
	require.Zero(t, s.Len())
}

func TestSceneRemoveKeepsOrder(t *testing.T) {
	s := New()
	var ids []EntityID
	for i := 0; i < 4; i++ {
		ids = append(ids, s.Spawn(unitBox(), mgl32.Ident4()).ID)
	}

	require.NoError(t, s.Remove(ids[1]))
	require.Error(t, s.Remove(ids[1]))

	all := s.All()
	require.Len(t, all, 3)
	require.Equal(t, ids[0], all[0].ID)
	require.Equal(t, ids[2], all[1].ID)
	require.Equal(t, ids[3], all[2].ID)

	got, err := s.Get(ids[3])
	require.NoError(t, err)
	require.Equal(t, ids[3], got.ID)
}

func TestSceneWithBounds(t *testing.T) {
	s := New()
	withVolume := s.Spawn(unitBox(), mgl32.Ident4())
	require.NoError(t, s.Add(NewEntity(100, nil)))

	entities := s.WithBounds()
	require.Len(t, entities, 1)
	require.Same(t, withVolume, entities[0])
}

func TestSceneUpdateBounds(t *testing.T) {
	s := New()
	e := s.Spawn(unitBox(), mgl32.Translate3D(0, 0, -10))

	_, ok := e.WorldBox()
	require.False(t, ok)

	require.Equal(t, 1, s.UpdateBounds())
	require.Equal(t, 0, s.UpdateBounds())

	box, ok := e.WorldBox()
	require.True(t, ok)
	require.Equal(t, mgl32.Vec3{-1, -1, -11}, box.Min())

	e.SetTransform(mgl32.Translate3D(0, 2, 0))
	_, ok = e.WorldBox()
	require.False(t, ok)

	require.Equal(t, 1, s.UpdateBounds())
	box, ok = e.WorldBox()
	require.True(t, ok)
	require.Equal(t, mgl32.Vec3{1, 3, 1}, box.Max())
}

func TestEntityWithoutVolume(t *testing.T) {
	e := NewEntity(1, nil)
	e.SetTransform(mgl32.Translate3D(1, 1, 1))

	_, ok := e.WorldBox()
	require.False(t, ok)

	e.SetVolume(bounds.NewVolume(unitBox()))
	require.True(t, e.Volume().Dirty())
}
