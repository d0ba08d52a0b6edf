package main

import (
	"scenequery/internal/graphics"
	"scenequery/internal/picking"
	"scenequery/internal/scene"

	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	lookSensitivity = 0.2
	moveSpeed       = 8.0
)

// inputState tracks mouse-look dragging between cursor callbacks.
type inputState struct {
	dragging     bool
	lastX, lastY float64
}

func setupInputHandlers(window *glfw.Window, cam *graphics.Camera, s *scene.Scene, svc *picking.Service, selected *scene.EntityID, state *inputState) {
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if state.dragging {
			cam.Rotate((xpos-state.lastX)*lookSensitivity, (state.lastY-ypos)*lookSensitivity)
		}
		state.lastX, state.lastY = xpos, ypos
	})

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		switch button {
		case glfw.MouseButtonRight:
			state.dragging = action == glfw.Press
		case glfw.MouseButtonLeft:
			if action != glfw.Press {
				return
			}
			x, y := w.GetCursorPos()
			width, height := w.GetSize()
			svc.Enqueue(float32(x), float32(y), float32(width), float32(height), s,
				cam.GetProjectionMatrix(), cam.GetViewMatrix(),
				func(hit picking.Hit, ok bool) {
					if !ok {
						logs.WithTag("previous", *selected).Debug("pick missed")
						*selected = 0
						return
					}
					*selected = hit.Entity.ID
					logs.WithTag("entity", hit.Entity.ID).
						WithTag("distance", hit.Distance).
						Info("entity picked")
				})
		}
	})

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		cam.SetViewport(width, height)
	})
}

func handleMovement(window *glfw.Window, cam *graphics.Camera, dt float64) {
	step := float32(moveSpeed * dt)
	var forward, right, up float32
	if window.GetKey(glfw.KeyW) == glfw.Press {
		forward += step
	}
	if window.GetKey(glfw.KeyS) == glfw.Press {
		forward -= step
	}
	if window.GetKey(glfw.KeyD) == glfw.Press {
		right += step
	}
	if window.GetKey(glfw.KeyA) == glfw.Press {
		right -= step
	}
	if window.GetKey(glfw.KeySpace) == glfw.Press {
		up += step
	}
	if window.GetKey(glfw.KeyLeftShift) == glfw.Press {
		up -= step
	}
	if forward != 0 || right != 0 || up != 0 {
		cam.Move(forward, right, up)
	}
}
