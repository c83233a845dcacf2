// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/offscreen"
	"github.com/gogpu/wgpu/hal"
)

// fillVertexStride is the byte stride per vertex in the fill pipeline.
// Layout per vertex:
//
//	position (vec2<f32>) = 8 bytes  (location 0, clip space)
//	color    (vec4<f32>) = 16 bytes (location 1)
//
// Total = 24 bytes per vertex.
const fillVertexStride = 24

// copyRowAlignment is the required alignment of BytesPerRow in
// texture-to-buffer copies.
const copyRowAlignment = 256

// gpuWaitTimeout bounds every fence wait.
const gpuWaitTimeout = 5 * time.Second

// RendererOptions configures a Renderer's offscreen target.
type RendererOptions struct {
	// Format is the color format of the target textures.
	Format gputypes.TextureFormat
	// Order is the channel order of Format's bytes.
	Order offscreen.ChannelOrder
	// SampleCount is 1, or the MSAA sample count.
	SampleCount uint32
	// SPIRV compiles the shader to SPIR-V instead of passing WGSL.
	SPIRV bool
}

// Renderer draws canvas commands into offscreen hal textures.
//
// With a sample count above one it renders into an MSAA texture that is
// resolved into a single-sample texture at the end of every pass. Readback
// always copies the single-sample texture.
type Renderer struct {
	device hal.Device
	queue  hal.Queue
	opts   RendererOptions

	shader     hal.ShaderModule
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline

	msaaTex     hal.Texture
	msaaView    hal.TextureView
	resolveTex  hal.Texture
	resolveView hal.TextureView

	// copied is set when the resolve texture was last used as a copy source.
	copied bool
	closed bool

	width, height uint32
}

var _ offscreen.Renderer = (*Renderer)(nil)

// NewRenderer creates a renderer on device and queue. Textures and the
// pipeline are created by Configure.
func NewRenderer(device hal.Device, queue hal.Queue, opts RendererOptions) *Renderer {
	if opts.SampleCount == 0 {
		opts.SampleCount = 1
	}
	return &Renderer{device: device, queue: queue, opts: opts}
}

// Name returns the renderer identifier.
func (r *Renderer) Name() string { return Name }

// Size returns the current texture dimensions.
func (r *Renderer) Size() (uint32, uint32) { return r.width, r.height }

// Configure creates the pipeline on first use, (re)creates the textures when
// the size changes and clears them to transparent black. The pixel ratio does
// not scale the target.
func (r *Renderer) Configure(width, height int, _ float64) error {
	if r.closed {
		return offscreen.ErrClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", offscreen.ErrInvalidSize, width, height)
	}
	w, h := uint32(width), uint32(height) //nolint:gosec // checked positive above
	if err := r.ensureTextures(w, h); err != nil {
		return fmt.Errorf("ensure textures: %w", err)
	}
	if r.pipeline == nil {
		if err := r.createPipeline(); err != nil {
			return fmt.Errorf("create pipeline: %w", err)
		}
	}
	return r.submitPass(nil, 0, gputypes.LoadOpClear)
}

// Render draws cmds over the current contents.
func (r *Renderer) Render(cmds []offscreen.Command) error {
	if r.closed {
		return offscreen.ErrClosed
	}
	if r.resolveTex == nil {
		return offscreen.ErrNoFramebuffer
	}
	for _, cmd := range cmds {
		if cmd.Kind != offscreen.CommandClearRect {
			return fmt.Errorf("device: unsupported command %s", cmd.Kind)
		}
	}

	vertexData, vertexCount := buildFillVertices(cmds, int(r.width), int(r.height))
	if vertexCount == 0 {
		return nil
	}
	vertBuf, err := r.createAndUploadBuffer("offscreen_fill_verts", vertexData,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("create vertex buffer: %w", err)
	}
	defer r.device.DestroyBuffer(vertBuf)

	offscreen.Logger().Debug("device: render", "commands", len(cmds), "vertices", vertexCount)
	return r.submitPass(vertBuf, vertexCount, gputypes.LoadOpLoad)
}

// ReadPixels copies the resolve texture into a FrameBuffer in the target's
// channel order.
func (r *Renderer) ReadPixels() (*offscreen.FrameBuffer, error) {
	if r.closed {
		return nil, offscreen.ErrClosed
	}
	if r.resolveTex == nil {
		return nil, offscreen.ErrNoFramebuffer
	}
	w, h := r.width, r.height
	rowBytes := w * 4
	paddedRow := alignUp(rowBytes, copyRowAlignment)
	bufSize := uint64(paddedRow) * uint64(h)

	stagingBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "offscreen_staging",
		Size:  bufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer r.device.DestroyBuffer(stagingBuf)

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "offscreen_readback_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("offscreen_readback"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	// The resolve texture leaves the render pass as a color attachment;
	// the copy needs it as a transfer source.
	if !r.copied {
		encoder.TransitionTextures([]hal.TextureBarrier{{
			Texture: r.resolveTex,
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageRenderAttachment,
				NewUsage: gputypes.TextureUsageCopySrc,
			},
		}})
		r.copied = true
	}
	encoder.CopyTextureToBuffer(r.resolveTex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: paddedRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: r.resolveTex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	if err := r.submit(encoder); err != nil {
		return nil, err
	}

	readback := make([]byte, bufSize)
	if err := r.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return nil, fmt.Errorf("readback: %w", err)
	}

	fb := offscreen.NewFrameBuffer(int(w), int(h), r.opts.Order)
	stripRowPadding(fb.Pix, readback, int(rowBytes), int(paddedRow), int(h))
	offscreen.Logger().Debug("device: readback", "width", w, "height", h, "bytes", bufSize)
	return fb, nil
}

// Close releases all GPU resources. The device is not destroyed.
func (r *Renderer) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.destroyPipeline()
	r.destroyTextures()
	return nil
}

// submitPass encodes one render pass drawing vertexCount vertices from
// vertBuf (none when vertBuf is nil), submits it and waits.
func (r *Renderer) submitPass(vertBuf hal.Buffer, vertexCount uint32, load gputypes.LoadOp) error {
	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "offscreen_fill_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("offscreen_fill"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	if r.copied {
		encoder.TransitionTextures([]hal.TextureBarrier{{
			Texture: r.resolveTex,
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageCopySrc,
				NewUsage: gputypes.TextureUsageRenderAttachment,
			},
		}})
		r.copied = false
	}

	attachment := hal.RenderPassColorAttachment{
		View:       r.resolveView,
		LoadOp:     load,
		StoreOp:    gputypes.StoreOpStore,
		ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 0},
	}
	if r.msaaView != nil {
		attachment.View = r.msaaView
		attachment.ResolveTarget = r.resolveView
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label:            "offscreen_fill_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{attachment},
	})
	if vertBuf != nil && vertexCount > 0 {
		rp.SetPipeline(r.pipeline)
		rp.SetVertexBuffer(0, vertBuf, 0)
		rp.Draw(vertexCount, 1, 0, 0)
	}
	rp.End()

	return r.submit(encoder)
}

// submit ends encoding, submits the command buffer and waits for it.
func (r *Renderer) submit(encoder hal.CommandEncoder) error {
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	fence, err := r.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer r.device.DestroyFence(fence)

	if err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := r.device.Wait(fence, 1, gpuWaitTimeout)
	if err != nil {
		return fmt.Errorf("wait for GPU: %w", err)
	}
	if !fenceOK {
		return ErrGPUTimeout
	}
	return nil
}

// ensureTextures creates or recreates the target textures if the requested
// dimensions differ from the current size.
func (r *Renderer) ensureTextures(w, h uint32) error {
	if r.width == w && r.height == h && r.resolveTex != nil {
		return nil
	}
	r.destroyTextures()

	size := hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1}

	if r.opts.SampleCount > 1 {
		msaaTex, err := r.device.CreateTexture(&hal.TextureDescriptor{
			Label:         "offscreen_msaa",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   r.opts.SampleCount,
			Dimension:     gputypes.TextureDimension2D,
			Format:        r.opts.Format,
			Usage:         gputypes.TextureUsageRenderAttachment,
		})
		if err != nil {
			return fmt.Errorf("create MSAA texture: %w", err)
		}
		r.msaaTex = msaaTex

		msaaView, err := r.device.CreateTextureView(msaaTex, r.viewDescriptor("offscreen_msaa_view"))
		if err != nil {
			r.destroyTextures()
			return fmt.Errorf("create MSAA view: %w", err)
		}
		r.msaaView = msaaView
	}

	resolveTex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "offscreen_resolve",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        r.opts.Format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		r.destroyTextures()
		return fmt.Errorf("create resolve texture: %w", err)
	}
	r.resolveTex = resolveTex

	resolveView, err := r.device.CreateTextureView(resolveTex, r.viewDescriptor("offscreen_resolve_view"))
	if err != nil {
		r.destroyTextures()
		return fmt.Errorf("create resolve view: %w", err)
	}
	r.resolveView = resolveView

	r.width = w
	r.height = h
	r.copied = false
	return nil
}

func (r *Renderer) viewDescriptor(label string) *hal.TextureViewDescriptor {
	return &hal.TextureViewDescriptor{
		Label:         label,
		Format:        r.opts.Format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	}
}

// destroyTextures releases all texture resources and resets dimensions.
func (r *Renderer) destroyTextures() {
	if r.resolveView != nil {
		r.device.DestroyTextureView(r.resolveView)
		r.resolveView = nil
	}
	if r.resolveTex != nil {
		r.device.DestroyTexture(r.resolveTex)
		r.resolveTex = nil
	}
	if r.msaaView != nil {
		r.device.DestroyTextureView(r.msaaView)
		r.msaaView = nil
	}
	if r.msaaTex != nil {
		r.device.DestroyTexture(r.msaaTex)
		r.msaaTex = nil
	}
	r.width = 0
	r.height = 0
}

// createPipeline compiles the fill shader and creates a pipeline that
// replaces the target color (no blending).
func (r *Renderer) createPipeline() error {
	src, err := shaderSource(r.opts.SPIRV)
	if err != nil {
		return err
	}
	shader, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "offscreen_fill_shader",
		Source: src,
	})
	if err != nil {
		return fmt.Errorf("create fill shader: %w", err)
	}
	r.shader = shader

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "offscreen_fill_pipe_layout",
	})
	if err != nil {
		r.destroyPipeline()
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	pipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "offscreen_fill_pipeline",
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: "vs_main",
			Buffers:    fillVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     r.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    r.opts.Format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: r.opts.SampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		r.destroyPipeline()
		return fmt.Errorf("create render pipeline: %w", err)
	}
	r.pipeline = pipeline
	return nil
}

// destroyPipeline releases all pipeline resources in reverse creation order.
func (r *Renderer) destroyPipeline() {
	if r.pipeline != nil {
		r.device.DestroyRenderPipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.pipeLayout != nil {
		r.device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.shader != nil {
		r.device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
}

// createAndUploadBuffer creates a GPU buffer and uploads data.
func (r *Renderer) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	r.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// fillVertexLayout returns the vertex buffer layout for the fill pipeline.
func fillVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: fillVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatFloat32x4, Offset: 8, ShaderLocation: 1}, // color
			},
		},
	}
}

// buildFillVertices converts commands into clip-space quads, 6 vertices
// (2 triangles) each. Rectangles are clipped to the target first; commands
// covering nothing produce no vertices.
func buildFillVertices(cmds []offscreen.Command, width, height int) ([]byte, uint32) {
	buf := make([]byte, 0, len(cmds)*6*fillVertexStride)
	var count uint32
	for _, cmd := range cmds {
		b := cmd.Bounds(width, height)
		if b.Empty() {
			continue
		}
		x0, y0 := toClip(b.Min.X, b.Min.Y, width, height)
		x1, y1 := toClip(b.Max.X, b.Max.Y, width, height)
		c := cmd.Color.NRGBA()
		color := [4]float32{
			float32(c.R) / 255,
			float32(c.G) / 255,
			float32(c.B) / 255,
			float32(c.A) / 255,
		}

		// Triangle 1: TL, TR, BL. Triangle 2: TR, BR, BL.
		corners := [6][2]float32{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y0}, {x1, y1}, {x0, y1}}
		for _, p := range corners {
			buf = appendFillVertex(buf, p[0], p[1], color)
			count++
		}
	}
	return buf, count
}

// toClip maps a pixel coordinate (origin top-left, y down) to clip space.
func toClip(x, y, width, height int) (float32, float32) {
	return float32(2*float64(x)/float64(width) - 1), float32(1 - 2*float64(y)/float64(height))
}

func appendFillVertex(buf []byte, x, y float32, c [4]float32) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(x))
	buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(y))
	for _, v := range c {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	return buf
}

// stripRowPadding copies rows of rowBytes from src, whose rows are
// paddedRow bytes apart, into the tightly packed dst.
func stripRowPadding(dst, src []byte, rowBytes, paddedRow, rows int) {
	for y := 0; y < rows; y++ {
		copy(dst[y*rowBytes:(y+1)*rowBytes], src[y*paddedRow:y*paddedRow+rowBytes])
	}
}

func alignUp(n, align uint32) uint32 {
	return (n + align - 1) / align * align
}
