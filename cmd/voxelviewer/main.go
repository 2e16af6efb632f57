// Command voxelviewer is a thin reference host for the world manager: it
// drives an orbiting camera around the origin, streams chunks in, and
// uploads each completed mesh to a VAO/VBO/EBO. It has no gameplay,
// physics, or input beyond closing the window — everything else a real
// game adds is the host's job, not the core's.
package main

import (
	"flag"
	"math"
	"runtime"
	"time"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"
	"go.uber.org/zap"

	"voxelcore/internal/chunk"
	"voxelcore/internal/config"
	"voxelcore/internal/logging"
	"voxelcore/internal/template"
	"voxelcore/internal/world"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	cfgPath := flag.String("config", "", "path to a YAML config file (uses built-in defaults if empty)")
	templatePath := flag.String("template", "", "path to a .vwt template pack (optional)")
	seed := flag.Int64("seed", 1, "world seed")
	flag.Parse()

	logger, flush := logging.Init("info")
	defer flush()
	closer.Bind(func() { logger.Sync() })

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			logging.Log.Fatal("failed to load config", zap.Error(err))
		}
		cfg = loaded
	}

	var tmpl *template.Template
	if *templatePath != "" {
		t, err := template.Load(*templatePath)
		if err != nil {
			logging.Log.Fatal("failed to load template", zap.Error(err))
		}
		tmpl = t
	}

	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()
	defer closer.Close()

	window, err := setupWindow()
	if err != nil {
		panic(err)
	}

	shader, err := newShader()
	if err != nil {
		panic(err)
	}
	defer shader.delete()

	mgr := world.New(cfg, *seed, tmpl)
	defer mgr.Shutdown()

	uploads := make(map[chunk.Pos]*upload)
	defer func() {
		for _, u := range uploads {
			u.delete()
		}
	}()

	cam := &orbitCamera{radius: 4000, height: 1500, speed: 0.15}

	lastStream := time.Now()
	lastLOD := time.Now()
	lastBudget := time.Now()
	lastFrame := time.Now()

	streamInterval := time.Duration(cfg.ChunkUpdateIntervalMS) * time.Millisecond
	lodInterval := time.Duration(cfg.LODUpdateIntervalMS) * time.Millisecond
	budgetInterval := time.Duration(cfg.MemoryCheckIntervalMS) * time.Millisecond

	for !window.ShouldClose() {
		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now

		cam.advance(dt)

		if now.Sub(lastStream) >= streamInterval {
			mgr.StreamTick(cam.eye())
			lastStream = now
		}
		if now.Sub(lastLOD) >= lodInterval {
			mgr.LODTick()
			lastLOD = now
		}
		if now.Sub(lastBudget) >= budgetInterval {
			mgr.EnforceBudget()
			lastBudget = now
		}
		mgr.DispatchTick()
		mgr.ApplyResults()

		syncUploads(mgr, uploads)

		view := mgl32.LookAtV(cam.eye(), mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 1})
		proj := mgl32.Perspective(mgl32.DegToRad(60), 1280.0/720.0, 1, 200000)

		gl.ClearColor(0.53, 0.81, 0.92, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		shader.use()
		shader.setMat4("uView", view)
		shader.setMat4("uProj", proj)
		for _, u := range uploads {
			u.draw()
		}

		window.SwapBuffers()
		glfw.PollEvents()
	}
}

func setupWindow() (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(1280, 720, "voxelviewer", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return nil, err
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	glfw.SwapInterval(1)
	return window, nil
}

// orbitCamera sweeps a fixed-radius circle around the origin at a
// constant angular speed — just enough motion to exercise streaming and
// LOD transitions without any input handling.
type orbitCamera struct {
	radius, height, speed float32
	angle                 float64
}

func (o *orbitCamera) advance(dt float64) { o.angle += dt * float64(o.speed) }

func (o *orbitCamera) eye() mgl32.Vec3 {
	x := o.radius * float32(math.Cos(o.angle))
	y := o.radius * float32(math.Sin(o.angle))
	return mgl32.Vec3{x, y, o.height}
}

// upload is one chunk's GPU-resident mesh.
type upload struct {
	vao, vbo, ebo uint32
	indexCount    int32
	generation    uint64
}

type vertex struct {
	pos, normal mgl32.Vec3
	color       [4]float32
}

func newUpload(mesh chunk.MeshData, gen uint64) *upload {
	verts := make([]vertex, len(mesh.Positions))
	for i := range mesh.Positions {
		v := vertex{pos: mesh.Positions[i]}
		if i < len(mesh.Normals) {
			v.normal = mesh.Normals[i]
		}
		if i < len(mesh.Colors) {
			c := mesh.Colors[i]
			v.color = [4]float32{float32(c[0]) / 255, float32(c[1]) / 255, float32(c[2]) / 255, float32(c[3]) / 255}
		} else {
			v.color = [4]float32{1, 1, 1, 1}
		}
		verts[i] = v
	}

	u := &upload{indexCount: int32(len(mesh.Indices)), generation: gen}
	gl.GenVertexArrays(1, &u.vao)
	gl.GenBuffers(1, &u.vbo)
	gl.GenBuffers(1, &u.ebo)

	gl.BindVertexArray(u.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, u.vbo)
	if len(verts) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(verts)*int(unsafe.Sizeof(vertex{})), gl.Ptr(verts), gl.STATIC_DRAW)
	}

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, u.ebo)
	if len(mesh.Indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)
	}

	stride := int32(unsafe.Sizeof(vertex{}))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Sizeof(mgl32.Vec3{}))))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, gl.PtrOffset(2*int(unsafe.Sizeof(mgl32.Vec3{}))))

	gl.BindVertexArray(0)
	return u
}

func (u *upload) draw() {
	if u.indexCount == 0 {
		return
	}
	gl.BindVertexArray(u.vao)
	gl.DrawElements(gl.TRIANGLES, u.indexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
}

func (u *upload) delete() {
	gl.DeleteBuffers(1, &u.vbo)
	gl.DeleteBuffers(1, &u.ebo)
	gl.DeleteVertexArrays(1, &u.vao)
}

// syncUploads keeps the GPU upload map in step with the manager's active
// chunks: new Ready chunks get uploaded, chunks whose mesh generation
// changed are re-uploaded, and chunks no longer active are freed.
func syncUploads(mgr *world.Manager, uploads map[chunk.Pos]*upload) {
	seen := make(map[chunk.Pos]struct{}, len(uploads))
	mgr.ForEachActive(func(pos chunk.Pos, c *chunk.Chunk) {
		seen[pos] = struct{}{}
		if c.State() != chunk.Ready {
			return
		}
		if u, ok := uploads[pos]; ok && u.generation == c.Generation() {
			return
		}
		if u, ok := uploads[pos]; ok {
			u.delete()
		}
		uploads[pos] = newUpload(c.Mesh(), c.Generation())
	})
	for pos, u := range uploads {
		if _, ok := seen[pos]; !ok {
			u.delete()
			delete(uploads, pos)
		}
	}
}

