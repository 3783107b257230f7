// Command preview renders a scene progressively and shows every pass in an
// OpenGL window as it completes. Press Esc or close the window to stop.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime"
	"strings"

	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var (
	vertexShaderSource = `
		#version 410 core
		layout(location = 0) in vec2 position;
		layout(location = 1) in vec2 texCoord;
		out vec2 uv;
		void main() {
			uv = texCoord;
			gl_Position = vec4(position, 0.0, 1.0);
		}
	` + "\x00"

	fragmentShaderSource = `
		#version 410 core
		in vec2 uv;
		out vec4 fragColor;
		uniform sampler2D frame;
		void main() {
			fragColor = texture(frame, uv);
		}
	` + "\x00"
)

var (
	quadVertices = []float32{-1, -1, 1, -1, -1, 1, 1, 1}
	// Image rows are stored top-down, so v is flipped
	texCoords = []float32{0, 1, 1, 1, 0, 0, 1, 0}
)

func buildShader(vertexShaderSource, fragmentShaderSource string) uint32 {
	vertex := gl.CreateShader(gl.VERTEX_SHADER)
	cvs, freeVertex := gl.Strs(vertexShaderSource)
	gl.ShaderSource(vertex, 1, cvs, nil)
	freeVertex()
	gl.CompileShader(vertex)
	checkShaderCompileErrors(vertex, "VERTEX")

	fragment := gl.CreateShader(gl.FRAGMENT_SHADER)
	cfs, freeFragment := gl.Strs(fragmentShaderSource)
	gl.ShaderSource(fragment, 1, cfs, nil)
	freeFragment()
	gl.CompileShader(fragment)
	checkShaderCompileErrors(fragment, "FRAGMENT")

	program := gl.CreateProgram()
	gl.AttachShader(program, vertex)
	gl.AttachShader(program, fragment)
	gl.LinkProgram(program)
	checkProgramLinkErrors(program)

	gl.DeleteShader(vertex)
	gl.DeleteShader(fragment)

	return program
}

func checkShaderCompileErrors(shader uint32, shaderType string) {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logMsg := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logMsg))
		log.Printf("[%s SHADER COMPILE ERROR]:\n%s\n", shaderType, strings.TrimSpace(logMsg))
	}
}

func checkProgramLinkErrors(program uint32) {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logMsg := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logMsg))
		log.Printf("[PROGRAM LINK ERROR]:\n%s\n", strings.TrimSpace(logMsg))
	}
}

// newQuad uploads a fullscreen triangle strip with texture coordinates
func newQuad() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	var vbo [2]uint32
	gl.GenBuffers(2, &vbo[0])

	gl.BindBuffer(gl.ARRAY_BUFFER, vbo[0])
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 0, nil)

	gl.BindBuffer(gl.ARRAY_BUFFER, vbo[1])
	gl.BufferData(gl.ARRAY_BUFFER, len(texCoords)*4, gl.Ptr(texCoords), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 0, nil)

	gl.BindVertexArray(0)
	return vao
}

// newFrameTexture allocates an empty RGBA texture of the render size
func newFrameTexture(width, height int) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	return tex
}

func createScene(f *flags) (*scene.Scene, error) {
	s, err := scene.Create(f.scene)
	if err != nil {
		return nil, err
	}
	override := renderer.SamplingConfig{SamplesPerPixel: f.samples}
	if f.width > 0 {
		base := s.SamplingConfig
		override.Width = f.width
		override.Height = max(1, f.width*base.Height/base.Width)
	}
	if err := s.Configure(override); err != nil {
		return nil, err
	}
	return s, nil
}

// startRender runs the progressive render in the background. Only the most
// recent pass is kept in the returned channel, which is closed when
// rendering ends.
func startRender(ctx context.Context, s *scene.Scene, f *flags) (<-chan renderer.PassResult, error) {
	pr, err := renderer.NewProgressiveRaytracer(s, renderer.ProgressiveConfig{
		TileSize:       32,
		InitialSamples: 1,
		MaxPasses:      f.passes,
		NumWorkers:     f.workers,
	}, renderer.NewDefaultLogger())
	if err != nil {
		return nil, err
	}

	passChan, _, errChan := pr.RenderProgressive(ctx, renderer.RenderOptions{})
	frames := make(chan renderer.PassResult, 1)

	go func() {
		defer close(frames)
		for result := range passChan {
			select {
			case <-frames:
			default:
			}
			frames <- result
		}
		if err := <-errChan; err != nil && err != context.Canceled {
			log.Printf("render failed: %v", err)
		}
	}()

	return frames, nil
}

func main() {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		log.Fatalln("failed to initialize glfw:", err)
	}
	defer glfw.Terminate()

	f, err := NewFlags()
	if err != nil {
		fmt.Printf("%s\n", err.Error())
		flag.Usage()
		return
	}

	s, err := createScene(f)
	if err != nil {
		log.Fatalln("failed to create scene:", err)
	}
	renderWidth, renderHeight := s.SamplingConfig.Width, s.SamplingConfig.Height

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	title := fmt.Sprintf("Path tracer: %s", f.scene)
	window, err := glfw.CreateWindow(renderWidth*f.scale, renderHeight*f.scale, title, nil, nil)
	if err != nil {
		panic(err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		log.Fatalln("failed to initialize gl:", err)
	}
	log.Println("OpenGL version", gl.GoStr(gl.GetString(gl.VERSION)))

	blitProgram := buildShader(vertexShaderSource, fragmentShaderSource)
	gl.UseProgram(blitProgram)
	gl.Uniform1i(gl.GetUniformLocation(blitProgram, gl.Str("frame\x00")), 0)

	quad := newQuad()
	tex := newFrameTexture(renderWidth, renderHeight)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	frames, err := startRender(ctx, s, f)
	if err != nil {
		log.Fatalln("failed to start render:", err)
	}

	for !window.ShouldClose() {
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
		}

		select {
		case result, ok := <-frames:
			if !ok {
				frames = nil
				break
			}
			gl.BindTexture(gl.TEXTURE_2D, tex)
			gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(renderWidth), int32(renderHeight),
				gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(result.Image.Pix))
			window.SetTitle(fmt.Sprintf("%s - pass %d, %.1f samples/pixel", title, result.PassNumber, result.Stats.AverageSamples))
		default:
		}

		w, h := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0, 0, 0, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		gl.UseProgram(blitProgram)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, tex)
		gl.BindVertexArray(quad)
		gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
		window.SwapBuffers()
		glfw.PollEvents()
	}
}
