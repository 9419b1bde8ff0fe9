// Package renderer draws the viewer's cube faces with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/Faultbox/cubeview/internal/engine/camera"
	"github.com/Faultbox/cubeview/internal/engine/shader"
	"github.com/Faultbox/cubeview/internal/engine/texture"
	"github.com/Faultbox/cubeview/internal/logger"
	"github.com/Faultbox/cubeview/internal/viewer"
	"github.com/Faultbox/cubeview/pkg/math"
)

// fallbackColor is used for faces with neither image nor valid background.
var fallbackColor = colorful.Color{R: 0.2, G: 0.25, B: 0.33}

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background string // hex clear colour
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	program *shader.Program
	log     *zap.Logger

	quadVAO uint32
	quadVBO uint32

	// Zero means the face has no texture.
	textures [viewer.FaceCount]uint32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	// Back faces stay enabled; depth sorts them behind the front ones.
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	bg := clearColor(cfg.Background)
	gl.ClearColor(float32(bg.R), float32(bg.G), float32(bg.B), 1.0)

	var err error
	r.program, err = shader.Compile(faceVertexShader, faceFragmentShader,
		"uMVP", "uColor", "uShade", "uTexture", "uHasTexture")
	if err != nil {
		return nil, fmt.Errorf("failed to create face shader: %w", err)
	}

	r.createQuad()
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	return r, nil
}

// LoadFaces uploads the face images. A face whose image fails to load is
// drawn with its background colour and the failure is logged.
func (r *Renderer) LoadFaces(faces [viewer.FaceCount]viewer.Face) {
	for i, f := range faces {
		if f.Image == "" {
			continue
		}
		img, err := texture.Load(f.Image)
		if err != nil {
			r.log.Warn("face image unavailable, using background",
				zap.Int("face", i),
				zap.String("path", f.Image),
				zap.Error(err),
			)
			continue
		}
		r.textures[i] = upload(img)
		r.log.Debug("face texture loaded",
			zap.Int("face", i),
			zap.String("format", img.Format),
			zap.Int("width", img.Width()),
			zap.Int("height", img.Height()),
		)
	}
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for i, tex := range r.textures {
		if tex != 0 {
			gl.DeleteTextures(1, &r.textures[i])
		}
	}
	if r.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &r.quadVAO)
	}
	if r.quadVBO != 0 {
		gl.DeleteBuffers(1, &r.quadVBO)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize. Width and height are drawable pixels.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Draw clears the frame and draws all six faces.
func (r *Renderer) Draw(v *viewer.Viewer) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	viewProj := camera.ForCube(v.EdgeLength()).ViewProjection(r.config.Width, r.config.Height)
	faces := v.Faces()

	r.program.Use()
	gl.BindVertexArray(r.quadVAO)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(r.program.Uniform("uTexture"), 0)

	for i, t := range v.Placements() {
		mvp := faceMVP(viewProj, t, v.EdgeLength()).Float32()
		gl.UniformMatrix4fv(r.program.Uniform("uMVP"), 1, false, &mvp[0])

		c := faceColor(faces[i])
		gl.Uniform3f(r.program.Uniform("uColor"), float32(c.R), float32(c.G), float32(c.B))
		gl.Uniform1f(r.program.Uniform("uShade"), faceShade(t.Normal()))

		if tex := r.textures[i]; tex != 0 {
			gl.BindTexture(gl.TEXTURE_2D, tex)
			gl.Uniform1i(r.program.Uniform("uHasTexture"), 1)
		} else {
			gl.BindTexture(gl.TEXTURE_2D, 0)
			gl.Uniform1i(r.program.Uniform("uHasTexture"), 0)
		}

		gl.DrawArrays(gl.TRIANGLES, 0, 6)
	}

	gl.BindVertexArray(0)
}

// ReadPixels reads back the last drawn frame as RGBA, bottom row first.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	if width <= 0 || height <= 0 {
		return nil, 0, 0
	}
	pixels = make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}

// faceMVP stretches the unit quad to the edge length and places it.
func faceMVP(viewProj math.Mat4, t viewer.Transform, edge float64) math.Mat4 {
	return viewProj.Mul(t.Matrix()).Mul(math.Scale(edge, edge, 1))
}

// faceShade darkens faces as they turn away from the camera.
func faceShade(n math.Vec3) float32 {
	z := n.Z
	if z < 0 {
		z = 0
	}
	return float32(0.55 + 0.45*z)
}

func faceColor(f viewer.Face) colorful.Color {
	if c, ok := f.Color(); ok {
		return c
	}
	return fallbackColor
}

func clearColor(hex string) colorful.Color {
	if c, err := colorful.Hex(hex); err == nil {
		return c
	}
	return colorful.Color{R: 0.1, G: 0.1, B: 0.15}
}

// createQuad builds the unit face quad in the z=0 plane, facing +Z.
func (r *Renderer) createQuad() {
	vertices := []float32{
		// Position         // UV
		-0.5, -0.5, 0, 0, 0,
		0.5, -0.5, 0, 1, 0,
		0.5, 0.5, 0, 1, 1,

		-0.5, -0.5, 0, 0, 0,
		0.5, 0.5, 0, 1, 1,
		-0.5, 0.5, 0, 0, 1,
	}

	gl.GenVertexArrays(1, &r.quadVAO)
	gl.BindVertexArray(r.quadVAO)

	gl.GenBuffers(1, &r.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 5*4, nil)
	gl.EnableVertexAttribArray(0)

	// UV attribute (location = 1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 5*4, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
}

// upload copies a decoded image into a new texture. Rows are flipped since
// GL expects the first row at the bottom.
func upload(img *texture.Image) uint32 {
	rgba := texture.FlipVertical(img.RGBA)

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Width()), int32(img.Height()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

const faceVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aUV;

uniform mat4 uMVP;

out vec2 vUV;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	vUV = aUV;
}
`

const faceFragmentShader = `
#version 410 core

in vec2 vUV;
out vec4 FragColor;

uniform vec3 uColor;
uniform float uShade;
uniform sampler2D uTexture;
uniform int uHasTexture;

void main() {
	vec3 base = uColor;
	if (uHasTexture == 1) {
		vec4 t = texture(uTexture, vUV);
		base = mix(uColor, t.rgb, t.a);
	}
	FragColor = vec4(base * uShade, 1.0);
}
`
