package spirv

import (
	"errors"
	"reflect"
	"testing"

	"github.com/gogpu/forge/internal/spvtest"
	"github.com/gogpu/forge/types"
)

func groupOf(stages map[types.ShaderStage][]byte) *types.ShaderGroupSpec {
	spec := &types.ShaderGroupSpec{Stages: make(map[types.ShaderStage]types.StageSpirv)}
	for stage, code := range stages {
		spec.Stages[stage] = types.StageSpirv{Code: code, Entry: "main"}
	}
	return spec
}

func TestReflectRejectsNonSpirv(t *testing.T) {
	_, err := ReflectGroup(groupOf(map[types.ShaderStage][]byte{
		types.StageVertex: {1, 2, 3, 4},
	}))
	if !errors.Is(err, ErrNotSpirv) {
		t.Fatalf("err = %v, want ErrNotSpirv", err)
	}
}

func TestReflectVertexInputsPackedByLocation(t *testing.T) {
	// Declare locations out of order plus a gl_ builtin to skip.
	b := spvtest.New()
	f32 := b.TypeFloat(32)
	vec3 := b.TypeVector(f32, 3)
	vec2 := b.TypeVector(f32, 2)

	uvPtr := b.TypePointer(spvtest.StorageInput, vec2)
	uv := b.Variable(uvPtr, spvtest.StorageInput)
	b.Name(uv, "inUV")
	b.Decorate(uv, spvtest.DecLocation, 1)

	posPtr := b.TypePointer(spvtest.StorageInput, vec3)
	pos := b.Variable(posPtr, spvtest.StorageInput)
	b.Name(pos, "inPosition")
	b.Decorate(pos, spvtest.DecLocation, 0)

	builtin := b.Variable(posPtr, spvtest.StorageInput)
	b.Name(builtin, "gl_VertexIndex")
	b.Decorate(builtin, spvtest.DecBuiltIn, 42)

	info, err := ReflectGroup(groupOf(map[types.ShaderStage][]byte{
		types.StageVertex: b.Bytes(),
	}))
	if err != nil {
		t.Fatalf("ReflectGroup failed: %v", err)
	}

	if len(info.VertexInputAttributes) != 2 {
		t.Fatalf("attribute count = %d, want 2", len(info.VertexInputAttributes))
	}
	first := info.VertexInputAttributes[0]
	second := info.VertexInputAttributes[1]
	if first.Name != "inPosition" || first.Location != 0 || first.Offset != 0 {
		t.Errorf("first attribute = %+v", first)
	}
	if first.Format != types.FormatRGB32Float {
		t.Errorf("first format = %v, want RGB32Float", first.Format)
	}
	if second.Name != "inUV" || second.Location != 1 || second.Offset != 12 {
		t.Errorf("second attribute = %+v", second)
	}
	if info.VertexBindingStride != 12+8 {
		t.Errorf("stride = %d, want 20", info.VertexBindingStride)
	}
}

func TestReflectMergesBindingAcrossStages(t *testing.T) {
	info, err := ReflectGroup(groupOf(map[types.ShaderStage][]byte{
		types.StageVertex:   spvtest.StageWithUniform("CameraData", 0, 0, 64),
		types.StageFragment: spvtest.StageWithUniform("CameraData", 0, 0, 64),
	}))
	if err != nil {
		t.Fatalf("ReflectGroup failed: %v", err)
	}

	if len(info.Sets) != 1 || len(info.Sets[0]) != 1 {
		t.Fatalf("sets = %+v, want one set with one binding", info.Sets)
	}
	res := info.Sets[0][0]
	if res.Type != types.ResourceUniformBuffer {
		t.Errorf("type = %v", res.Type)
	}
	if res.BlockSize != 64 {
		t.Errorf("block size = %d, want 64", res.BlockSize)
	}
	want := types.StageFlagVertex | types.StageFlagFragment
	if res.Stages != want {
		t.Errorf("stages = %b, want %b", res.Stages, want)
	}
}

func TestReflectTypeConflictIdentifiesLocation(t *testing.T) {
	_, err := ReflectGroup(groupOf(map[types.ShaderStage][]byte{
		types.StageVertex:   spvtest.StageWithUniform("Data", 0, 0, 64),
		types.StageFragment: spvtest.FragmentSampled("Data", 0, 0),
	}))
	if err == nil {
		t.Fatal("conflicting binding types did not fail")
	}
	var re *ReflectError
	if !errors.As(err, &re) {
		t.Fatalf("error type = %T", err)
	}
	if re.Stage != types.StageFragment || re.Set != 0 || re.Binding != 0 {
		t.Errorf("conflict location = stage %v set %d binding %d", re.Stage, re.Set, re.Binding)
	}
	if re.Have == re.Want {
		t.Errorf("conflict types not distinguished: %v vs %v", re.Have, re.Want)
	}
}

func TestReflectRejectsRuntimeDescriptorArrays(t *testing.T) {
	b := spvtest.New()
	f32 := b.TypeFloat(32)
	img := b.TypeImage(f32, 1, 1)
	sampled := b.TypeSampledImage(img)
	arr := b.TypeRuntimeArray(sampled)
	ptr := b.TypePointer(spvtest.StorageUniformConstant, arr)
	v := b.Variable(ptr, spvtest.StorageUniformConstant)
	b.Name(v, "bindlessTextures")
	b.Decorate(v, spvtest.DecDescriptorSet, 0)
	b.Decorate(v, spvtest.DecBinding, 0)

	_, err := ReflectGroup(groupOf(map[types.ShaderStage][]byte{
		types.StageFragment: b.Bytes(),
	}))
	if !errors.Is(err, ErrUnsupportedDescriptor) {
		t.Fatalf("err = %v, want ErrUnsupportedDescriptor", err)
	}
}

func TestReflectDescriptorArraySize(t *testing.T) {
	b := spvtest.New()
	f32 := b.TypeFloat(32)
	u32 := b.TypeInt(32, false)
	four := b.ConstantU32(u32, 4)
	img := b.TypeImage(f32, 1, 1)
	sampled := b.TypeSampledImage(img)
	arr := b.TypeArray(sampled, four)
	ptr := b.TypePointer(spvtest.StorageUniformConstant, arr)
	v := b.Variable(ptr, spvtest.StorageUniformConstant)
	b.Name(v, "shadowMaps")
	b.Decorate(v, spvtest.DecDescriptorSet, 1)
	b.Decorate(v, spvtest.DecBinding, 3)

	info, err := ReflectGroup(groupOf(map[types.ShaderStage][]byte{
		types.StageFragment: b.Bytes(),
	}))
	if err != nil {
		t.Fatalf("ReflectGroup failed: %v", err)
	}
	if len(info.Sets) != 2 {
		t.Fatalf("set count = %d, want 2", len(info.Sets))
	}
	res := info.Sets[1][0]
	if res.Type != types.ResourceSamplerWithTexture || res.ArraySize != 4 || res.Binding != 3 {
		t.Errorf("resource = %+v", res)
	}
}

func TestReflectPushConstants(t *testing.T) {
	build := func() []byte {
		b := spvtest.New()
		f32 := b.TypeFloat(32)
		vec4 := b.TypeVector(f32, 4)
		block := b.TypeStruct(vec4, vec4)
		b.Name(block, "PushData")
		b.Decorate(block, spvtest.DecBlock)
		b.MemberDecorate(block, 0, spvtest.DecOffset, 0)
		b.MemberDecorate(block, 1, spvtest.DecOffset, 16)
		ptr := b.TypePointer(spvtest.StoragePushConstant, block)
		b.Variable(ptr, spvtest.StoragePushConstant)
		return b.Bytes()
	}

	info, err := ReflectGroup(groupOf(map[types.ShaderStage][]byte{
		types.StageVertex:   build(),
		types.StageFragment: build(),
	}))
	if err != nil {
		t.Fatalf("ReflectGroup failed: %v", err)
	}
	pc := info.PushConstants
	if pc.Name != "PushData" || pc.Size != 32 {
		t.Errorf("push constants = %+v", pc)
	}
	if pc.Stages != types.StageFlagVertex|types.StageFlagFragment {
		t.Errorf("push constant stages = %b", pc.Stages)
	}
}

func TestReflectSpecializationConstants(t *testing.T) {
	b := spvtest.New()
	u32 := b.TypeInt(32, true)
	sc := b.SpecConstantU32(u32, 16)
	b.Decorate(sc, spvtest.DecSpecID, 7)
	boolType := b.TypeBool()
	flag := b.SpecConstantTrue(boolType)
	b.Decorate(flag, spvtest.DecSpecID, 2)

	info, err := ReflectGroup(groupOf(map[types.ShaderStage][]byte{
		types.StageCompute: b.Bytes(),
	}))
	if err != nil {
		t.Fatalf("ReflectGroup failed: %v", err)
	}
	if len(info.SpecializationConstants) != 2 {
		t.Fatalf("spec constant count = %d", len(info.SpecializationConstants))
	}
	// Sorted by constant id.
	if info.SpecializationConstants[0].ConstantID != 2 ||
		info.SpecializationConstants[0].Type != types.SpecConstantBool ||
		!info.SpecializationConstants[0].BoolValue {
		t.Errorf("bool constant = %+v", info.SpecializationConstants[0])
	}
	if info.SpecializationConstants[1].ConstantID != 7 ||
		info.SpecializationConstants[1].IntValue != 16 {
		t.Errorf("int constant = %+v", info.SpecializationConstants[1])
	}
}

func TestReflectDeterministic(t *testing.T) {
	stages := map[types.ShaderStage][]byte{
		types.StageVertex:   spvtest.VertexPassthrough(),
		types.StageFragment: spvtest.FragmentSampled("albedo", 0, 1),
	}
	a, err := ReflectGroup(groupOf(stages))
	if err != nil {
		t.Fatalf("first reflection failed: %v", err)
	}
	b, err := ReflectGroup(groupOf(stages))
	if err != nil {
		t.Fatalf("second reflection failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("reflection is not deterministic:\n%+v\n%+v", a, b)
	}
}
