// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spirv

import (
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/types"
)

// ReflectGroup reflects every stage of a shader group and merges the
// results into one ShaderGroupInfo.
//
// Merge policy for a (set, binding) seen in multiple stages: identical
// type, array size and block size accumulate stage flags; any mismatch
// is an error naming the stage, set and binding. Push constants allow
// at most one distinct block across the group. Specialization
// constants are fixed by their first appearance; a later mismatch is
// reported through the log sink but does not fail reflection.
func ReflectGroup(spec *types.ShaderGroupSpec) (*types.ShaderGroupInfo, error) {
	info := &types.ShaderGroupInfo{}

	for stage := types.ShaderStage(0); stage < types.StageMax; stage++ {
		stageCode, ok := spec.Stages[stage]
		if !ok {
			continue
		}
		m, err := parse(stageCode.Code)
		if err != nil {
			return nil, &ReflectError{Stage: stage, Wrapped: err}
		}
		if err := reflectStage(stage, m, info); err != nil {
			return nil, err
		}
	}

	// Canonical ordering: bindings ascend within each set.
	for _, set := range info.Sets {
		sort.Slice(set, func(i, j int) bool { return set[i].Binding < set[j].Binding })
	}
	sort.Slice(info.SpecializationConstants, func(i, j int) bool {
		return info.SpecializationConstants[i].ConstantID < info.SpecializationConstants[j].ConstantID
	})

	return info, nil
}

func reflectStage(stage types.ShaderStage, m *module, info *types.ShaderGroupInfo) error {
	for _, v := range m.vars {
		switch v.storage {
		case storageInput:
			// Vertex inputs come from the vertex stage only.

		case storagePushConstant:
			if err := reflectPushConstant(stage, m, v, info); err != nil {
				return err
			}

		case storageUniformConstant, storageUniform, storageStorageBuffer:
			res, skip, err := classifyDescriptor(stage, m, v)
			if err != nil {
				return err
			}
			if skip {
				continue
			}
			if err := mergeResource(stage, res, info); err != nil {
				return err
			}
		}
	}

	reflectSpecConstants(stage, m, info)

	if stage == types.StageVertex {
		reflectVertexInputs(m, info)
	}
	return nil
}

// classifyDescriptor maps one interface variable to a ShaderResource.
// skip is true for variables that are not descriptors (no set/binding,
// e.g. subpass inputs without decorations never occur; gl_ builtins).
func classifyDescriptor(stage types.ShaderStage, m *module, v variable) (types.ShaderResource, bool, error) {
	name := m.names[v.id]
	if strings.HasPrefix(name, "gl_") {
		return types.ShaderResource{}, true, nil
	}

	set, hasSet := m.decoration(v.id, decDescriptorSet)
	binding, hasBinding := m.decoration(v.id, decBinding)
	if !hasSet && !hasBinding {
		return types.ShaderResource{}, true, nil
	}

	pointed := m.pointee(v.typeID)
	if pointed == nil {
		return types.ShaderResource{}, true, nil
	}

	// The variable's pointee may be wrapped in descriptor arrays.
	ptr := m.types[v.typeID]
	innerID, arraySize, runtime := m.peelArrays(ptr.elem)
	if runtime {
		return types.ShaderResource{}, false, &ReflectError{
			Stage: stage, Set: set, Binding: binding, Name: name,
			Message: "dynamically sized descriptor arrays are not supported",
			Wrapped: ErrUnsupportedDescriptor,
		}
	}
	inner := m.types[innerID]
	if inner == nil {
		return types.ShaderResource{}, true, nil
	}

	res := types.ShaderResource{
		Name:      name,
		Set:       set,
		Binding:   binding,
		ArraySize: arraySize,
	}
	// Buffer blocks report their GLSL type name, like the instance
	// name is often empty or mangled.
	if tn, ok := m.names[innerID]; ok && tn != "" {
		res.Name = tn
	}

	writable := false
	switch inner.op {
	case opTypeSampler:
		res.Type = types.ResourceSampler

	case opTypeSampledImg:
		res.Type = types.ResourceSamplerWithTexture

	case opTypeImage:
		switch {
		case inner.dim == dimSubpassData:
			res.Type = types.ResourceInputAttachment
		case inner.dim == dimBuffer && inner.sampled == 1:
			res.Type = types.ResourceUniformTexelBuffer
		case inner.dim == dimBuffer:
			res.Type = types.ResourceStorageTexelBuffer
			writable = true
		case inner.sampled == 2:
			res.Type = types.ResourceStorageImage
			writable = true
		default:
			res.Type = types.ResourceTexture
		}

	case opTypeStruct:
		res.ArraySize = 1
		res.BlockSize = m.blockSize(innerID)
		bufferBlock := m.hasDecoration(innerID, decBufferBlock)
		if v.storage == storageStorageBuffer || bufferBlock {
			res.Type = types.ResourceStorageBuffer
			writable = true
		} else {
			res.Type = types.ResourceUniformBuffer
		}

	case opTypeAccelerationStructure:
		return types.ShaderResource{}, false, &ReflectError{
			Stage: stage, Set: set, Binding: binding, Name: name,
			Message: "acceleration structures are not supported",
			Wrapped: ErrUnsupportedDescriptor,
		}

	default:
		return types.ShaderResource{}, true, nil
	}

	if writable {
		res.Writable = !m.hasDecoration(v.id, decNonWritable) &&
			!m.hasDecoration(innerID, decNonWritable) &&
			!m.memberNonWritable(innerID)
	}

	return res, false, nil
}

// mergeResource folds one stage's resource into the group info,
// accumulating stage flags on agreement and failing on mismatch.
func mergeResource(stage types.ShaderStage, res types.ShaderResource, info *types.ShaderGroupInfo) error {
	setIndex := int(res.Set)
	for setIndex >= len(info.Sets) {
		info.Sets = append(info.Sets, nil)
	}

	for i := range info.Sets[setIndex] {
		exist := &info.Sets[setIndex][i]
		if exist.Binding != res.Binding {
			continue
		}
		if exist.Type != res.Type {
			return &ReflectError{
				Stage: stage, Set: res.Set, Binding: res.Binding, Name: res.Name,
				Message: "binding reused with a different resource type",
				Have:    exist.Type, Want: res.Type,
			}
		}
		if exist.ArraySize != res.ArraySize {
			return &ReflectError{
				Stage: stage, Set: res.Set, Binding: res.Binding, Name: res.Name,
				Message: "binding reused with a different array size",
			}
		}
		if exist.BlockSize != res.BlockSize {
			return &ReflectError{
				Stage: stage, Set: res.Set, Binding: res.Binding, Name: res.Name,
				Message: "binding reused with a different block size",
			}
		}
		exist.Stages |= stage.Flag()
		return nil
	}

	res.Stages = stage.Flag()
	info.Sets[setIndex] = append(info.Sets[setIndex], res)
	return nil
}

func reflectPushConstant(stage types.ShaderStage, m *module, v variable, info *types.ShaderGroupInfo) error {
	ptr := m.types[v.typeID]
	if ptr == nil {
		return nil
	}
	structID := ptr.elem
	size := m.blockSize(structID)
	name := m.names[structID]
	if name == "" {
		name = m.names[v.id]
	}

	if info.PushConstants.Stages == 0 {
		info.PushConstants = types.PushConstantRange{
			Name:   name,
			Size:   size,
			Stages: stage.Flag(),
		}
		return nil
	}

	if info.PushConstants.Size != size || info.PushConstants.Name != name {
		return &ReflectError{
			Stage: stage, Name: name,
			Message: "more than one distinct push-constant block in shader group",
		}
	}
	info.PushConstants.Stages |= stage.Flag()
	return nil
}

func reflectSpecConstants(stage types.ShaderStage, m *module, info *types.ShaderGroupInfo) {
	for _, sc := range m.specs {
		id, ok := m.decoration(sc.id, decSpecID)
		if !ok {
			continue
		}

		next := types.SpecializationConstant{
			ConstantID: id,
			Stages:     stage.Flag(),
		}
		switch {
		case sc.isBool:
			next.Type = types.SpecConstantBool
			next.BoolValue = sc.boolV
		default:
			t := m.types[sc.typeID]
			if t != nil && t.op == opTypeFloat {
				next.Type = types.SpecConstantFloat
				next.FloatValue = float32FromBits(sc.word)
			} else {
				next.Type = types.SpecConstantInt
				next.IntValue = int32(sc.word)
			}
		}

		merged := false
		for i := range info.SpecializationConstants {
			exist := &info.SpecializationConstants[i]
			if exist.ConstantID != id {
				continue
			}
			if exist.Type != next.Type || exist.IntValue != next.IntValue ||
				exist.BoolValue != next.BoolValue || exist.FloatValue != next.FloatValue {
				hal.Logger().Warn("specialization constant redeclared with different type or default",
					slog.Uint64("constant_id", uint64(id)),
					slog.String("stage", stage.String()))
			}
			exist.Stages |= stage.Flag()
			merged = true
			break
		}
		if !merged {
			info.SpecializationConstants = append(info.SpecializationConstants, next)
		}
	}
}

// reflectVertexInputs packs the vertex stage's inputs into binding 0,
// sorted by location, each offset the running sum of prior sizes.
func reflectVertexInputs(m *module, info *types.ShaderGroupInfo) {
	type input struct {
		name     string
		location uint32
		size     uint32
		format   types.Format
	}
	var inputs []input

	for _, v := range m.vars {
		if v.storage != storageInput {
			continue
		}
		name := m.names[v.id]
		if strings.HasPrefix(name, "gl_") || m.hasDecoration(v.id, decBuiltIn) {
			continue
		}
		location, ok := m.decoration(v.id, decLocation)
		if !ok {
			continue
		}

		ptr := m.types[v.typeID]
		if ptr == nil {
			continue
		}
		t := m.types[ptr.elem]
		if t == nil {
			continue
		}

		width, count, isFloat, signed := numericShape(m, t)
		if width == 0 {
			continue
		}
		inputs = append(inputs, input{
			name:     name,
			location: location,
			size:     width / 8 * count,
			format:   vertexFormat(width, count, isFloat, signed),
		})
	}

	sort.Slice(inputs, func(i, j int) bool { return inputs[i].location < inputs[j].location })

	var offset uint32
	for _, in := range inputs {
		info.VertexInputAttributes = append(info.VertexInputAttributes, types.VertexInputAttribute{
			Name:     in.name,
			Location: in.location,
			Binding:  0,
			Offset:   offset,
			Format:   in.format,
		})
		offset += in.size
	}
	info.VertexBindingStride = offset
}

// numericShape resolves a scalar or vector type to (bit width,
// component count, float?, signed?).
func numericShape(m *module, t *typeInfo) (width, count uint32, isFloat, signed bool) {
	switch t.op {
	case opTypeFloat:
		return t.width, 1, true, true
	case opTypeInt:
		return t.width, 1, false, t.signed
	case opTypeVector:
		elem := m.types[t.elem]
		if elem == nil {
			return 0, 0, false, false
		}
		w, _, f, s := numericShape(m, elem)
		return w, t.count, f, s
	}
	return 0, 0, false, false
}

func vertexFormat(width, count uint32, isFloat, signed bool) types.Format {
	if width != 32 {
		return types.FormatUndefined
	}
	if isFloat {
		switch count {
		case 1:
			return types.FormatR32Float
		case 2:
			return types.FormatRG32Float
		case 3:
			return types.FormatRGB32Float
		case 4:
			return types.FormatRGBA32Float
		}
		return types.FormatUndefined
	}
	if signed {
		switch count {
		case 1:
			return types.FormatR32Sint
		case 2:
			return types.FormatRG32Sint
		case 4:
			return types.FormatRGBA32Sint
		}
		return types.FormatUndefined
	}
	switch count {
	case 1:
		return types.FormatR32Uint
	case 2:
		return types.FormatRG32Uint
	case 4:
		return types.FormatRGBA32Uint
	}
	return types.FormatUndefined
}

func float32FromBits(w uint32) float32 {
	return math.Float32frombits(w)
}
