package main

import (
	"time"

	"scenequery/internal/bounds"
	"scenequery/internal/culling"
	"scenequery/internal/frame"
	"scenequery/internal/graphics"
	"scenequery/internal/picking"
	"scenequery/internal/profiling"
	"scenequery/internal/scene"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	slowFrame   = 20 * time.Millisecond
	reportEvery = 5 * time.Second
)

var (
	boxColor      = mgl32.Vec3{0.85, 0.85, 0.85}
	selectedColor = mgl32.Vec3{1.0, 0.35, 0.1}
)

func run(conf demoConfig) error {
	if err := glfw.Init(); err != nil {
		return errors.New("initializing glfw failed").Wrap(err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(conf)
	if err != nil {
		return errors.New("creating window failed").Wrap(err)
	}

	boxes := graphics.NewBoxRenderer()
	if err := boxes.Init(); err != nil {
		return errors.New("initializing box renderer failed").Wrap(err)
	}
	defer boxes.Dispose()

	cam := graphics.NewCamera(window.GetFramebufferSize())
	cam.FOV = conf.FOV
	cam.Position = mgl32.Vec3{0, 6, float32(conf.Grid) * conf.Spacing / 2}
	cam.Pitch = -15

	sc, spinning := buildScene(conf)
	frustum := culling.NewFrustum()
	svc := picking.NewService()
	limiter := frame.NewLimiter(conf.FPSLimit, slowFrame)

	var selected scene.EntityID
	setupInputHandlers(window, cam, sc, svc, &selected, &inputState{})

	logs.WithTag("entities", sc.Len()).
		WithTag("spinning", len(spinning)).
		Info("pickdemo started")

	start := time.Now()
	last := start
	lastReport := start
	for !window.ShouldClose() {
		limiter.Begin()
		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now
		profiling.ResetFrame()

		handleMovement(window, cam, dt)
		spin(spinning, float32(now.Sub(start).Seconds()))

		proj := cam.GetProjectionMatrix()
		view := cam.GetViewMatrix()

		sc.UpdateBounds()
		frustum.Update(proj, view)
		visible := culling.Cull(frustum, sc.WithBounds())
		svc.FlushPending(visible)

		render(boxes, visible, selected, view, proj)

		func() { defer profiling.Track("glfw.SwapBuffers")(); window.SwapBuffers() }()
		glfw.PollEvents()

		if took := limiter.Wait(); limiter.IsSlow(took) {
			logs.WithTag("duration", took.String()).
				WithTag("visible", len(visible)).
				WithTag("top", profiling.TopN(5)).
				Debug("slow frame")
		}

		if time.Since(lastReport) >= reportEvery {
			lastReport = time.Now()
			stats := limiter.Report()
			logs.WithTag("frames", stats.Frames).
				WithTag("slow", stats.Slow).
				WithTag("late", stats.Late).
				WithTag("average", stats.Average().String()).
				WithTag("worst", stats.Worst.String()).
				Info("frame report")
		}
	}
	return nil
}

func spin(entities []*scene.Entity, t float32) {
	for _, e := range entities {
		pos := e.Transform().Col(3)
		rot := mgl32.HomogRotate3DY(t + float32(e.ID)*0.1)
		e.SetTransform(mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).Mul4(rot))
	}
}

func render(r *graphics.BoxRenderer, visible []*scene.Entity, selected scene.EntityID, view, proj mgl32.Mat4) {
	defer profiling.Track("pickdemo.render")()

	gl.ClearColor(0.1, 0.12, 0.16, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	plain := make([]bounds.Box, 0, len(visible))
	var highlighted []bounds.Box
	for _, e := range visible {
		b, ok := e.WorldBox()
		if !ok {
			continue
		}
		if e.ID == selected {
			highlighted = append(highlighted, b)
			continue
		}
		plain = append(plain, b)
	}

	r.Draw(plain, boxColor, view, proj)
	r.Draw(highlighted, selectedColor, view, proj)
}
