package graphics

import (
	"testing"

	"scenequery/internal/picking"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraDefaults(t *testing.T) {
	c := NewCamera(800, 400)
	require.Equal(t, float32(2), c.AspectRatio)

	front := c.Front()
	assert.InDelta(t, 0, front.X(), 1e-6)
	assert.InDelta(t, 0, front.Y(), 1e-6)
	assert.InDelta(t, -1, front.Z(), 1e-6)

	c.SetViewport(10, 0)
	require.Equal(t, float32(2), c.AspectRatio)
}

func TestCameraRotateClampsPitch(t *testing.T) {
	c := NewCamera(1, 1)
	c.Rotate(0, 200)
	require.Equal(t, 89.0, c.Pitch)
	c.Rotate(90, -500)
	require.Equal(t, -89.0, c.Pitch)
	require.Equal(t, 0.0, c.Yaw)
}

func TestCameraMove(t *testing.T) {
	c := NewCamera(1, 1)
	c.Move(2, 3, 1)
	assert.InDelta(t, 3, c.Position.X(), 1e-5)
	assert.InDelta(t, 1, c.Position.Y(), 1e-5)
	assert.InDelta(t, -2, c.Position.Z(), 1e-5)
}

func TestCameraMatricesRoundTripThroughPicking(t *testing.T) {
	c := NewCamera(640, 480)
	c.Position = mgl32.Vec3{4, 2, 9}
	c.Rotate(30, -10)

	view := c.GetViewMatrix()
	pos := picking.CameraPosition(view)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, c.Position[i], pos[i], 1e-4)
	}

	dir := picking.ScreenToWorldRay(320, 240, 640, 480, c.GetProjectionMatrix(), view)
	front := c.Front()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, front[i], dir[i], 1e-4)
	}
}
