package cmdlist

import (
	"fmt"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/types"
)

// recordingContext captures replayed calls in order.
type recordingContext struct {
	calls []string
}

func (r *recordingContext) log(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recordingContext) BeginRendering(layout *hal.RenderingLayout) {
	r.log("begin-rendering(%d)", len(layout.ColorAttachments))
}
func (r *recordingContext) EndRendering()              { r.log("end-rendering") }
func (r *recordingContext) SetViewport(v types.Rect2D) { r.log("viewport(%dx%d)", v.Width, v.Height) }
func (r *recordingContext) SetScissor(s types.Rect2D)  { r.log("scissor(%dx%d)", s.Width, s.Height) }
func (r *recordingContext) SetDepthBias(a, b, c float32) {
	r.log("depth-bias(%g,%g,%g)", a, b, c)
}
func (r *recordingContext) SetLineWidth(w float32)           { r.log("line-width(%g)", w) }
func (r *recordingContext) SetBlendConstants(gputypes.Color) { r.log("blend-constants") }
func (r *recordingContext) BindPipeline(_ hal.Pipeline, sets []hal.DescriptorSet) {
	r.log("bind-pipeline(sets=%d)", len(sets))
}
func (r *recordingContext) BindVertexBuffer(_ hal.Buffer, offset uint64) {
	r.log("bind-vertex(%d)", offset)
}
func (r *recordingContext) Draw(v, i, fv, fi uint32) { r.log("draw(%d,%d,%d,%d)", v, i, fv, fi) }
func (r *recordingContext) DrawIndexed(_ hal.Buffer, ic, inst, fi uint32, vo int32, finst uint32) {
	r.log("draw-indexed(%d,%d,%d,%d,%d)", ic, inst, fi, vo, finst)
}
func (r *recordingContext) DrawIndexedIndirect(_ hal.Buffer, _ hal.Buffer, off, count, stride uint32) {
	r.log("draw-indexed-indirect(%d,%d,%d)", off, count, stride)
}
func (r *recordingContext) Dispatch(x, y, z uint32) { r.log("dispatch(%d,%d,%d)", x, y, z) }
func (r *recordingContext) DispatchIndirect(_ hal.Buffer, off uint32) {
	r.log("dispatch-indirect(%d)", off)
}
func (r *recordingContext) CopyBuffer(_, _ hal.Buffer, regions []types.BufferCopy) {
	r.log("copy-buffer(regions=%d)", len(regions))
}
func (r *recordingContext) CopyBufferToTexture(_ hal.Buffer, _ hal.Texture, regions []types.BufferTextureCopyRegion) {
	r.log("copy-buffer-to-texture(regions=%d)", len(regions))
}
func (r *recordingContext) BlitTexture(_ hal.Texture, _ types.TextureUsage, _ hal.Texture, _ types.TextureUsage) {
	r.log("blit")
}
func (r *recordingContext) GenTextureMipmaps(hal.Texture) { r.log("gen-mipmaps") }
func (r *recordingContext) AddTransitions(_, _ types.PipelineStageFlags,
	m []hal.MemoryTransition, b []hal.BufferTransition, t []hal.TextureTransition) {
	r.log("barrier(m=%d,b=%d,t=%d)", len(m), len(b), len(t))
}
func (r *recordingContext) AddTextureTransition(_ hal.Texture, l types.TextureLayout) {
	r.log("texture-transition(%v)", l)
}

func TestReplayPreservesInsertionOrder(t *testing.T) {
	l := New()
	l.SetViewport(types.Rect2D{Width: 800, Height: 600})
	l.SetScissor(types.Rect2D{Width: 800, Height: 600})
	l.BindPipeline(nil, nil)
	l.BindVertexBuffer(nil, 64)
	l.Draw(3, 1, 0, 0)
	l.DrawIndexed(DrawIndexedParams{IndexCount: 36, InstanceCount: 2, VertexOffset: -4})
	l.Dispatch(8, 8, 1)
	l.EndRendering()

	ctx := &recordingContext{}
	l.Replay(ctx)

	want := []string{
		"viewport(800x600)",
		"scissor(800x600)",
		"bind-pipeline(sets=0)",
		"bind-vertex(64)",
		"draw(3,1,0,0)",
		"draw-indexed(36,2,0,-4,0)",
		"dispatch(8,8,1)",
		"end-rendering",
	}
	if len(ctx.calls) != len(want) {
		t.Fatalf("call count = %d, want %d: %v", len(ctx.calls), len(want), ctx.calls)
	}
	for i := range want {
		if ctx.calls[i] != want[i] {
			t.Errorf("call[%d] = %q, want %q", i, ctx.calls[i], want[i])
		}
	}
}

func TestReplaySpansChunks(t *testing.T) {
	l := New()
	const n = commandChunkSize*2 + 37
	for i := 0; i < n; i++ {
		l.Draw(uint32(i), 1, 0, 0)
	}
	if l.Len() != n {
		t.Fatalf("Len = %d, want %d", l.Len(), n)
	}

	ctx := &recordingContext{}
	l.Replay(ctx)
	if len(ctx.calls) != n {
		t.Fatalf("replayed %d calls, want %d", len(ctx.calls), n)
	}
	for i, call := range ctx.calls {
		if call != fmt.Sprintf("draw(%d,1,0,0)", i) {
			t.Fatalf("call[%d] = %q", i, call)
		}
	}
}

func TestTailsAreCopied(t *testing.T) {
	l := New()
	regions := []types.BufferTextureCopyRegion{{BufferOffset: 128, MipLevel: 1}}
	l.CopyBufferToTexture(nil, nil, regions)

	// Caller reuse of the slice must not leak into the recording.
	regions[0].BufferOffset = 999

	var got []types.BufferTextureCopyRegion
	for c := l.head; c != nil; c = c.next {
		got = c.copyRegions
	}
	if len(got) != 1 || got[0].BufferOffset != 128 || got[0].MipLevel != 1 {
		t.Errorf("recorded region = %+v", got)
	}
}

func TestResetReusesChunks(t *testing.T) {
	l := New()
	for i := 0; i < 10; i++ {
		l.Draw(1, 1, 0, 0)
	}
	firstChunk := l.chunks[0]

	l.Reset()
	if l.Len() != 0 || l.head != nil {
		t.Fatal("Reset left commands behind")
	}

	l.Dispatch(1, 1, 1)
	if l.chunks[0] != firstChunk {
		t.Error("Reset did not reuse chunk memory")
	}

	ctx := &recordingContext{}
	l.Replay(ctx)
	if len(ctx.calls) != 1 || ctx.calls[0] != "dispatch(1,1,1)" {
		t.Errorf("replay after reset = %v", ctx.calls)
	}
}

func TestReplayTwiceIsIdentical(t *testing.T) {
	l := New()
	l.Draw(3, 1, 0, 0)
	l.BlitTexture(nil, types.TextureUsageColorAttachment, nil, types.TextureUsageNone)

	first := &recordingContext{}
	l.Replay(first)
	second := &recordingContext{}
	l.Replay(second)

	if len(first.calls) != len(second.calls) {
		t.Fatalf("replay lengths differ: %d vs %d", len(first.calls), len(second.calls))
	}
	for i := range first.calls {
		if first.calls[i] != second.calls[i] {
			t.Errorf("replay[%d] differs: %q vs %q", i, first.calls[i], second.calls[i])
		}
	}
}
