// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package graph implements the render graph: a per-frame DAG of passes
// over named logical resources.
//
// A renderer declares passes and their reads and writes, names one
// resource the back buffer, then calls Compile. Compile sorts the
// passes, resolves each resource's usage over time, allocates physical
// GPU resources sized by the union of their usages, and requests
// render passes, framebuffers, pipelines and descriptor sets from the
// resource cache. Execute then walks the physical passes in order,
// emitting exactly the pipeline barriers the transition table calls
// for, and finally blits the back buffer into the acquired swapchain
// image.
//
// Compile is idempotent: while the declarations are unchanged it
// returns the same physical-pass list without rebuilding.
package graph

import (
	"log/slog"
	"sort"

	"github.com/gogpu/forge/cache"
	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/types"
)

// Graph is a render graph over one device.
type Graph struct {
	device hal.Device
	cache  *cache.Cache

	resources     []*resource
	resourceIndex map[string]int

	passes    []*Pass
	passIndex map[string]int

	backBufferTag    string
	backBufferExtent types.Extent2D

	// declErr holds the first declaration error; Compile reports it.
	declErr error

	sorted   []int
	passDeps map[int]map[int]struct{}
	state    resourceState

	physicalImages  []hal.Texture
	physicalBuffers []hal.Buffer
	physicalPasses  []physicalPass

	compiled    bool
	dirty       bool
	initialized bool
}

// physicalPass is one compiled pass: the cached GPU objects plus the
// callback.
type physicalPass struct {
	passIndex int
	tag       string

	renderPass  hal.RenderPass
	framebuffer hal.Framebuffer
	layout      hal.PipelineLayout
	pipeline    hal.Pipeline
	sets        []hal.DescriptorSet

	renderArea  types.Extent2D
	clearValues []types.ClearValue

	descriptorSetsUpdated bool
	onExecute             ExecuteFunc
}

// New creates an empty graph over a device and its resource cache.
func New(device hal.Device, c *cache.Cache) *Graph {
	return &Graph{
		device:        device,
		cache:         c,
		resourceIndex: make(map[string]int),
		passIndex:     make(map[string]int),
		passDeps:      make(map[int]map[int]struct{}),
		state:         newResourceState(),
	}
}

// SetBackBufferSize sets the reference extent for swapchain-relative
// resources.
func (g *Graph) SetBackBufferSize(width, height uint32) {
	if g.backBufferExtent.Width != width || g.backBufferExtent.Height != height {
		g.backBufferExtent = types.Extent2D{Width: width, Height: height}
		g.markDirty()
	}
}

// SetBackBuffer names the resource the graph presents from. The back
// buffer is always given transfer-src usage for the final blit.
func (g *Graph) SetBackBuffer(tag string) {
	g.backBufferTag = tag
	g.state.totalImageUsage[tag] |= types.TextureUsageTransferSrc
	g.markDirty()
}

// AddPass returns the pass with the given tag, creating it on first
// use.
func (g *Graph) AddPass(tag string, queue QueueFlags) *Pass {
	if i, ok := g.passIndex[tag]; ok {
		return g.passes[i]
	}
	p := newPass(g, len(g.passes), tag, queue)
	g.passIndex[tag] = p.index
	g.passes = append(g.passes, p)
	g.markDirty()
	return p
}

// PassOrder returns the compiled execution order as pass tags.
func (g *Graph) PassOrder() []string {
	tags := make([]string, len(g.physicalPasses))
	for i := range g.physicalPasses {
		tags[i] = g.physicalPasses[i].tag
	}
	return tags
}

// PhysicalImage returns the physical texture compiled for a logical
// image tag.
func (g *Graph) PhysicalImage(tag string) (hal.Texture, bool) {
	i, ok := g.resourceIndex[tag]
	if !ok || g.resources[i].kind != resourceImage || !g.compiled {
		return nil, false
	}
	return g.physicalImages[g.resources[i].physical], true
}

// PhysicalBuffer returns the physical buffer compiled for a logical
// buffer tag.
func (g *Graph) PhysicalBuffer(tag string) (hal.Buffer, bool) {
	i, ok := g.resourceIndex[tag]
	if !ok || g.resources[i].kind != resourceBuffer || !g.compiled {
		return nil, false
	}
	return g.physicalBuffers[g.resources[i].physical], true
}

func (g *Graph) markDirty() {
	g.dirty = true
}

func (g *Graph) declareError(err error) {
	if g.declErr == nil {
		g.declErr = err
	}
}

// imageResource returns the image resource for tag, creating it on
// first use.
func (g *Graph) imageResource(tag string) *resource {
	if i, ok := g.resourceIndex[tag]; ok {
		return g.resources[i]
	}
	r := &resource{kind: resourceImage, index: len(g.resources), tag: tag, physical: -1}
	g.resourceIndex[tag] = r.index
	g.resources = append(g.resources, r)
	return r
}

// bufferResource returns the buffer resource for tag, creating it on
// first use.
func (g *Graph) bufferResource(tag string) *resource {
	if i, ok := g.resourceIndex[tag]; ok {
		return g.resources[i]
	}
	r := &resource{kind: resourceBuffer, index: len(g.resources), tag: tag, physical: -1}
	g.resourceIndex[tag] = r.index
	g.resources = append(g.resources, r)
	return r
}

func (g *Graph) lookupResource(tag string) (*resource, bool) {
	i, ok := g.resourceIndex[tag]
	if !ok {
		return nil, false
	}
	return g.resources[i], true
}

// Compile sorts the passes, resolves the resource state table and
// builds the physical resources and passes. A second call with
// unchanged declarations is a no-op.
func (g *Graph) Compile() error {
	if g.declErr != nil {
		return g.declErr
	}
	if g.compiled && !g.dirty {
		return nil
	}

	g.releasePhysical()
	g.sorted = nil
	g.passDeps = make(map[int]map[int]struct{})
	g.state = newResourceState()
	if g.backBufferTag != "" {
		g.state.totalImageUsage[g.backBufferTag] |= types.TextureUsageTransferSrc
	}

	if err := g.sortPasses(); err != nil {
		return err
	}
	g.resolveResourceState()
	if err := g.buildPhysicalResources(); err != nil {
		return err
	}
	if err := g.buildPhysicalPasses(); err != nil {
		return err
	}

	g.compiled = true
	g.dirty = false
	g.initialized = false

	hal.Logger().Info("graph compiled",
		slog.Int("passes", len(g.physicalPasses)),
		slog.Int("images", len(g.physicalImages)),
		slog.Int("buffers", len(g.physicalBuffers)))
	return nil
}

// sortPasses topologically orders the passes, starting from every
// writer of the back buffer and walking read dependencies. Cycles are
// detected with on-stack coloring; the recursion depth bound from the
// pass count stays as a backstop.
func (g *Graph) sortPasses() error {
	i, ok := g.resourceIndex[g.backBufferTag]
	if !ok {
		return &CompileError{Resource: g.backBufferTag, Wrapped: ErrMissingBackBuffer}
	}
	backBuffer := g.resources[i]
	if len(backBuffer.writtenIn) == 0 {
		return &CompileError{Resource: g.backBufferTag, Wrapped: ErrNoBackBufferWriter}
	}

	g.sorted = append(g.sorted, backBuffer.writtenIn...)
	onStack := make([]bool, len(g.passes))
	roots := append([]int(nil), g.sorted...)
	for _, passIdx := range roots {
		if err := g.traverseDeps(passIdx, 0, onStack); err != nil {
			return err
		}
	}

	// Reverse, then dedup keeping the first occurrence.
	for l, r := 0, len(g.sorted)-1; l < r; l, r = l+1, r-1 {
		g.sorted[l], g.sorted[r] = g.sorted[r], g.sorted[l]
	}
	seen := make(map[int]struct{}, len(g.sorted))
	out := g.sorted[:0]
	for _, p := range g.sorted {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	g.sorted = out
	return nil
}

func (g *Graph) traverseDeps(passIdx int, depth int, onStack []bool) error {
	pass := g.passes[passIdx]
	if depth > len(g.passes) {
		return &CompileError{Pass: pass.tag, Wrapped: ErrCycle}
	}
	if onStack[passIdx] {
		return &CompileError{Pass: pass.tag, Wrapped: ErrCycle}
	}
	onStack[passIdx] = true
	defer func() { onStack[passIdx] = false }()

	deps := g.passDeps[passIdx]
	if deps == nil {
		deps = make(map[int]struct{})
		g.passDeps[passIdx] = deps
	}
	for _, tag := range sortedKeys(pass.inImages) {
		if res, ok := g.lookupResource(tag); ok {
			for _, writer := range res.writtenIn {
				deps[writer] = struct{}{}
			}
		}
	}
	for _, tag := range sortedKeys(pass.inBuffers) {
		if res, ok := g.lookupResource(tag); ok {
			for _, writer := range res.writtenIn {
				deps[writer] = struct{}{}
			}
		}
	}

	for _, dep := range sortedDeps(deps) {
		g.sorted = append(g.sorted, dep)
		if err := g.traverseDeps(dep, depth+1, onStack); err != nil {
			return err
		}
	}
	return nil
}

// resolveResourceState records, pass by pass in execution order, each
// touched resource's transition from its previous usage. After the
// walk, every resource's first-use transition is patched to source
// from its final usage — closing the ring across frames.
func (g *Graph) resolveResourceState() {
	lastImage := make(map[string]types.TextureUsage)
	lastBuffer := make(map[string]types.BufferUsage)

	for _, passIdx := range g.sorted {
		pass := g.passes[passIdx]
		imageTransitions := g.state.imageTransitionsOf(pass.tag)
		bufferTransitions := g.state.bufferTransitionsOf(pass.tag)

		for _, tag := range sortedKeys(pass.inBuffers) {
			usage := pass.inBuffers[tag]
			if _, seen := lastBuffer[tag]; !seen {
				g.state.bufferFirstUse[tag] = pass.tag
			}
			bufferTransitions[tag] = bufferTransition{src: lastBuffer[tag], dst: usage}
			g.state.totalBufferUsage[tag] |= usage
			lastBuffer[tag] = usage
			g.state.bufferLastUse[tag] = pass.tag
		}
		for _, resIdx := range pass.outBuffers {
			res := g.resources[resIdx]
			usage := res.writeBufferUsage
			if _, seen := lastBuffer[res.tag]; !seen {
				g.state.bufferFirstUse[res.tag] = pass.tag
			}
			bufferTransitions[res.tag] = bufferTransition{src: lastBuffer[res.tag], dst: usage}
			g.state.totalBufferUsage[res.tag] |= usage
			lastBuffer[res.tag] = usage
			g.state.bufferLastUse[res.tag] = pass.tag
		}
		for _, tag := range sortedKeys(pass.inImages) {
			usage := pass.inImages[tag]
			if _, seen := lastImage[tag]; !seen {
				g.state.imageFirstUse[tag] = pass.tag
			}
			imageTransitions[tag] = imageTransition{src: lastImage[tag], dst: usage}
			g.state.totalImageUsage[tag] |= usage
			lastImage[tag] = usage
			g.state.imageLastUse[tag] = pass.tag
		}
		for _, resIdx := range pass.outImages {
			res := g.resources[resIdx]
			usage := res.writeImageUsage
			if _, seen := lastImage[res.tag]; !seen {
				g.state.imageFirstUse[res.tag] = pass.tag
			}
			imageTransitions[res.tag] = imageTransition{src: lastImage[res.tag], dst: usage}
			g.state.totalImageUsage[res.tag] |= usage
			lastImage[res.tag] = usage
			g.state.imageLastUse[res.tag] = pass.tag
		}
	}

	for tag, passTag := range g.state.bufferFirstUse {
		tr := g.state.perPassBuffer[passTag][tag]
		tr.src = lastBuffer[tag]
		g.state.perPassBuffer[passTag][tag] = tr
	}
	for tag, passTag := range g.state.imageFirstUse {
		tr := g.state.perPassImage[passTag][tag]
		tr.src = lastImage[tag]
		g.state.perPassImage[passTag][tag] = tr
	}
}

// buildPhysicalResources allocates one physical image or buffer per
// logical resource, sized by the union of every usage the frame
// declares for it.
func (g *Graph) buildPhysicalResources() error {
	g.physicalImages = g.physicalImages[:0]
	g.physicalBuffers = g.physicalBuffers[:0]

	for _, res := range g.resources {
		if !res.hasInfo {
			continue
		}
		switch res.kind {
		case resourceImage:
			info := res.image
			extent := info.Extent
			if info.SizeType == SizeSwapchainRelative {
				scaled := types.ScaleExtent(g.backBufferExtent, info.Factor)
				extent = types.Extent3D{Width: scaled.Width, Height: scaled.Height, Depth: 1}
			}
			levels := info.Levels
			if levels == 0 {
				levels = 1
			}
			layers := info.Layers
			if layers == 0 {
				layers = 1
			}
			samples := info.Samples
			if samples == 0 {
				samples = types.Samples1
			}
			spec := types.TextureSpec{
				Type:        types.Texture2D,
				Format:      info.Format,
				Extent:      extent,
				ArrayLayers: layers,
				MipLevels:   levels,
				Samples:     samples,
				Usage:       g.state.totalImageUsage[res.tag],
			}
			tex, err := g.device.CreateTexture(&spec)
			if err != nil {
				return err
			}
			res.physical = len(g.physicalImages)
			g.physicalImages = append(g.physicalImages, tex)

		case resourceBuffer:
			spec := types.BufferSpec{
				Size:      res.buffer.Size,
				Usage:     g.state.totalBufferUsage[res.tag],
				Placement: types.MemoryDeviceLocal,
			}
			buf, err := g.device.CreateBuffer(&spec)
			if err != nil {
				return err
			}
			res.physical = len(g.physicalBuffers)
			g.physicalBuffers = append(g.physicalBuffers, buf)
		}
	}
	return nil
}

// buildPhysicalPasses builds, for each pass in execution order, the
// attachment descriptions from its writes and requests the render
// pass, framebuffer, pipeline layout, pipeline and descriptor sets
// from the cache.
func (g *Graph) buildPhysicalPasses() error {
	g.physicalPasses = g.physicalPasses[:0]

	for _, passIdx := range g.sorted {
		pass := g.passes[passIdx]
		pp := physicalPass{passIndex: passIdx, tag: pass.tag, onExecute: pass.onExecute}

		var attachments []types.AttachmentDescription
		var colorRefs []types.AttachmentReference
		var depthRef *types.AttachmentReference
		var views []hal.TextureView
		var clears []types.ClearValue
		var fbWidth, fbHeight uint32

		imageTransitions := g.state.perPassImage[pass.tag]

		for _, resIdx := range pass.outImages {
			res := g.resources[resIdx]
			// Only attachment writes become render-pass attachments;
			// storage writes are synchronized by the barrier alone.
			if res.writeImageUsage&(types.TextureUsageColorAttachment|
				types.TextureUsageDepthStencilAttachment) == 0 {
				continue
			}
			attIndex := len(attachments)
			phys := g.physicalImages[res.physical]
			extent := phys.Spec().Extent
			if extent.Width > fbWidth {
				fbWidth = extent.Width
			}
			if extent.Height > fbHeight {
				fbHeight = extent.Height
			}
			views = append(views, phys.View())

			final := imageTransitions[res.tag].dst.Layout()
			attachments = append(attachments, types.AttachmentDescription{
				Format:         res.image.Format,
				Samples:        phys.Spec().Samples,
				LoadOp:         res.image.LoadOp,
				StoreOp:        types.StoreOpStore,
				StencilLoadOp:  types.LoadOpDontCare,
				StencilStoreOp: types.StoreOpDontCare,
				InitialLayout:  types.LayoutUndefined,
				FinalLayout:    final,
			})

			ref := types.AttachmentReference{Attachment: uint32(attIndex), Layout: final}
			if res.writeImageUsage == types.TextureUsageDepthStencilAttachment {
				depthRef = &ref
				clears = append(clears, types.ClearDepthStencil(1, 0))
			} else {
				colorRefs = append(colorRefs, ref)
				clears = append(clears, types.ClearColor(0.2, 0.2, 0.2, 1))
			}
		}

		if len(attachments) > 0 {
			rpSpec := types.RenderPassSpec{
				Attachments: attachments,
				Subpasses: []types.SubpassInfo{{
					ColorRefs:       colorRefs,
					DepthStencilRef: depthRef,
				}},
			}
			rp, err := g.cache.RequestRenderPass(&rpSpec)
			if err != nil {
				return err
			}
			pp.renderPass = rp

			fb, err := g.cache.RequestFramebuffer(&hal.FramebufferDescriptor{
				RenderPass:  rp,
				Attachments: views,
				Extent:      types.Extent2D{Width: fbWidth, Height: fbHeight},
				Layers:      1,
			})
			if err != nil {
				return err
			}
			pp.framebuffer = fb
			pp.renderArea = types.Extent2D{Width: fbWidth, Height: fbHeight}
			pp.clearValues = clears
		}

		if pass.shader != nil {
			layout, err := g.cache.RequestPipelineLayout(pass.shader)
			if err != nil {
				return err
			}
			pp.layout = layout

			if pp.renderPass != nil {
				state := types.DefaultPipelineState(len(colorRefs))
				if pass.state != nil {
					state = *pass.state
				}
				pipeline, err := g.cache.RequestGraphicsPipeline(&hal.GraphicsPipelineDescriptor{
					Shader:     pass.shader,
					Layout:     layout,
					RenderPass: pp.renderPass,
					Subpass:    0,
					State:      state,
				})
				if err != nil {
					return err
				}
				pp.pipeline = pipeline
			}

			setLayouts := layout.SetLayouts()
			pp.sets = make([]hal.DescriptorSet, len(setLayouts))
			for _, sl := range setLayouts {
				if sl == nil {
					continue
				}
				set, err := g.device.CreateDescriptorSet(sl)
				if err != nil {
					return err
				}
				pp.sets[sl.SetIndex()] = set
			}
		}

		g.physicalPasses = append(g.physicalPasses, pp)
	}
	return nil
}

// releasePhysical frees resources from a previous compile. The caller
// guarantees the device is idle when recompiling.
func (g *Graph) releasePhysical() {
	for _, t := range g.physicalImages {
		g.device.DestroyTexture(t)
	}
	g.physicalImages = nil
	for _, b := range g.physicalBuffers {
		g.device.DestroyBuffer(b)
	}
	g.physicalBuffers = nil
	for i := range g.physicalPasses {
		for _, set := range g.physicalPasses[i].sets {
			if set != nil {
				g.device.FreeDescriptorSet(set)
			}
		}
	}
	g.physicalPasses = nil
}

// sortedKeys returns a map's keys in ascending order, for
// deterministic iteration.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedDeps(deps map[int]struct{}) []int {
	out := make([]int, 0, len(deps))
	for d := range deps {
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}
