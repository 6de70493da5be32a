package types

import "testing"

func TestFullMipLevels(t *testing.T) {
	cases := []struct {
		w, h uint32
		want uint32
	}{
		{1, 1, 1},
		{2, 2, 2},
		{256, 256, 9},
		{1024, 512, 11},
		{1920, 1080, 11},
	}
	for _, c := range cases {
		if got := FullMipLevels(c.w, c.h); got != c.want {
			t.Errorf("FullMipLevels(%d, %d) = %d, want %d", c.w, c.h, got, c.want)
		}
	}
}

func TestScaleExtent(t *testing.T) {
	base := Extent2D{Width: 1920, Height: 1080}
	half := ScaleExtent(base, 0.5)
	if half.Width != 960 || half.Height != 540 {
		t.Errorf("half = %+v", half)
	}
	tiny := ScaleExtent(Extent2D{Width: 1, Height: 1}, 0.1)
	if tiny.Width != 1 || tiny.Height != 1 {
		t.Errorf("tiny extent not clamped: %+v", tiny)
	}
}

func TestTextureUsageLayouts(t *testing.T) {
	cases := []struct {
		usage TextureUsage
		want  TextureLayout
	}{
		{TextureUsageNone, LayoutUndefined},
		{TextureUsageSampled, LayoutShaderReadOnly},
		{TextureUsageStorage, LayoutGeneral},
		{TextureUsageColorAttachment, LayoutColorAttachment},
		{TextureUsageDepthStencilAttachment, LayoutDepthStencilAttachment},
		{TextureUsageTransferSrc, LayoutTransferSrc},
		{TextureUsageTransferDst, LayoutTransferDst},
	}
	for _, c := range cases {
		if got := c.usage.Layout(); got != c.want {
			t.Errorf("usage %b layout = %v, want %v", c.usage, got, c.want)
		}
	}
}

func TestWriteUsageForcesBarriers(t *testing.T) {
	if !TextureUsageStorage.IsWrite() {
		t.Error("storage images must be write-dependent")
	}
	if TextureUsageSampled.IsWrite() {
		t.Error("sampled reads are not write-dependent")
	}
	if !BufferUsageStorage.IsWrite() {
		t.Error("storage buffers must be write-dependent")
	}
	if BufferUsageVertex.IsWrite() {
		t.Error("vertex reads are not write-dependent")
	}
}

func TestDepthFormats(t *testing.T) {
	if !FormatDepth32Float.HasDepth() || FormatDepth32Float.HasStencil() {
		t.Error("Depth32Float aspect wrong")
	}
	if !FormatDepth24PlusStencil8.HasStencil() {
		t.Error("Depth24PlusStencil8 missing stencil aspect")
	}
	if FormatRGBA8Unorm.HasDepth() {
		t.Error("color format claims depth")
	}
	if FormatRGBA8Unorm.BytesPerTexel() != 4 {
		t.Error("RGBA8 texel size wrong")
	}
}
