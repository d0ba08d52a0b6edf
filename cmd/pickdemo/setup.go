package main

import (
	"scenequery/internal/bounds"
	"scenequery/internal/scene"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

func setupWindow(conf demoConfig) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(conf.Width, conf.Height, "pickdemo", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return nil, err
	}

	// Pacing is done by the frame limiter
	glfw.SwapInterval(0)

	gl.Enable(gl.DEPTH_TEST)
	return window, nil
}

// buildScene lays out a grid of boxes of varying heights on the XZ plane.
// Every fourth box spins so its volume is dirtied each frame.
func buildScene(conf demoConfig) (*scene.Scene, []*scene.Entity) {
	s := scene.New()
	var spinning []*scene.Entity

	half := float32(conf.Grid-1) * conf.Spacing / 2
	for i := 0; i < conf.Grid; i++ {
		for j := 0; j < conf.Grid; j++ {
			h := 0.5 + float32((i*7+j*3)%5)*0.4
			local := bounds.NewBox(mgl32.Vec3{-0.5, 0, -0.5}, mgl32.Vec3{0.5, h, 0.5})
			x := float32(i)*conf.Spacing - half
			z := float32(j)*conf.Spacing - half

			e := s.Spawn(local, mgl32.Translate3D(x, 0, z))
			if (i+j)%4 == 0 {
				spinning = append(spinning, e)
			}
		}
	}
	return s, spinning
}
