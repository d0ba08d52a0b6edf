package graphics

import (
	"scenequery/internal/bounds"
	"scenequery/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const boxVertexShader = `#version 410 core
layout(location = 0) in vec3 aPos;
uniform mat4 model;
uniform mat4 view;
uniform mat4 proj;
void main() {
	gl_Position = proj * view * model * vec4(aPos, 1.0);
}
`

const boxFragmentShader = `#version 410 core
uniform vec3 color;
out vec4 FragColor;
void main() {
	FragColor = vec4(color, 1.0);
}
`

// Unit cube edges centered on the origin, as line pairs.
var cubeWireframeVertices = []float32{
	// Front face
	-0.5, -0.5, 0.5, 0.5, -0.5, 0.5,
	0.5, -0.5, 0.5, 0.5, 0.5, 0.5,
	0.5, 0.5, 0.5, -0.5, 0.5, 0.5,
	-0.5, 0.5, 0.5, -0.5, -0.5, 0.5,

	// Back face
	-0.5, -0.5, -0.5, 0.5, -0.5, -0.5,
	0.5, -0.5, -0.5, 0.5, 0.5, -0.5,
	0.5, 0.5, -0.5, -0.5, 0.5, -0.5,
	-0.5, 0.5, -0.5, -0.5, -0.5, -0.5,

	// Connecting edges
	-0.5, -0.5, 0.5, -0.5, -0.5, -0.5,
	0.5, -0.5, 0.5, 0.5, -0.5, -0.5,
	0.5, 0.5, 0.5, 0.5, 0.5, -0.5,
	-0.5, 0.5, 0.5, -0.5, 0.5, -0.5,
}

// BoxRenderer draws world-space boxes as wireframes.
type BoxRenderer struct {
	shader *Shader
	vao    uint32
	vbo    uint32
}

func NewBoxRenderer() *BoxRenderer {
	return &BoxRenderer{}
}

// Init compiles the shader and uploads the cube. Needs a current GL context.
func (r *BoxRenderer) Init() error {
	var err error
	r.shader, err = NewShader(boxVertexShader, boxFragmentShader)
	if err != nil {
		return err
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeWireframeVertices)*4, gl.Ptr(cubeWireframeVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	return nil
}

// Draw renders every valid box in color.
func (r *BoxRenderer) Draw(boxes []bounds.Box, color mgl32.Vec3, view, projection mgl32.Mat4) {
	defer profiling.Track("graphics.BoxRenderer.Draw")()

	r.shader.Use()
	r.shader.SetMatrix4("proj", projection)
	r.shader.SetMatrix4("view", view)
	r.shader.SetVector3("color", color)

	gl.BindVertexArray(r.vao)
	gl.LineWidth(1.0)
	for _, b := range boxes {
		if !b.IsValid() {
			continue
		}
		c, s := b.Center(), b.Size()
		model := mgl32.Translate3D(c.X(), c.Y(), c.Z()).Mul4(mgl32.Scale3D(s.X(), s.Y(), s.Z()))
		r.shader.SetMatrix4("model", model)
		gl.DrawArrays(gl.LINES, 0, int32(len(cubeWireframeVertices)/3))
	}
}

// Dispose cleans up OpenGL resources
func (r *BoxRenderer) Dispose() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.shader != nil {
		r.shader.Delete()
	}
}
