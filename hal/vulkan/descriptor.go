// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"github.com/gogpu/forge/hal"
	"github.com/gogpu/forge/hal/vulkan/vk"
	"github.com/gogpu/forge/types"
)

// descriptorPoolMaxSets sizes each descriptor pool; when one pool
// runs dry the device opens another.
const descriptorPoolMaxSets = 256

// CreatePipelineLayout builds one descriptor-set layout per reflected
// set plus the push-constant range.
func (d *Device) CreatePipelineLayout(shader hal.Shader) (hal.PipelineLayout, error) {
	info := shader.Info()

	setLayouts := make([]hal.DescriptorSetLayout, len(info.Sets))
	vkLayouts := make([]vk.DescriptorSetLayout, len(info.Sets))
	for set, bindings := range info.Sets {
		vkBindings := make([]vk.DescriptorSetLayoutBinding, 0, len(bindings))
		for _, b := range bindings {
			count := b.ArraySize
			if count == 0 {
				count = 1
			}
			vkBindings = append(vkBindings, vk.DescriptorSetLayoutBinding{
				Binding:         b.Binding,
				DescriptorType:  descriptorTypeToVk(b.Type),
				DescriptorCount: count,
				StageFlags:      stageFlagsOf(b.Stages),
			})
		}

		layoutInfo := vk.DescriptorSetLayoutCreateInfo{
			SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
			BindingCount: uint32(len(vkBindings)),
		}
		if len(vkBindings) > 0 {
			layoutInfo.PBindings = &vkBindings[0]
		}

		var handle vk.DescriptorSetLayout
		if result := d.cmds.CreateDescriptorSetLayout(d.handle, &layoutInfo, &handle); result != vk.Success {
			return nil, resultToError("vkCreateDescriptorSetLayout", result)
		}
		vkLayouts[set] = handle
		setLayouts[set] = &DescriptorSetLayout{
			handle:   handle,
			set:      uint32(set),
			bindings: append([]types.ShaderResource(nil), bindings...),
		}
	}

	layoutInfo := vk.PipelineLayoutCreateInfo{
		SType:          vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount: uint32(len(vkLayouts)),
	}
	if len(vkLayouts) > 0 {
		layoutInfo.PSetLayouts = &vkLayouts[0]
	}
	var pcRange vk.PushConstantRange
	if info.PushConstants.Size > 0 {
		pcRange = vk.PushConstantRange{
			StageFlags: stageFlagsOf(info.PushConstants.Stages),
			Size:       info.PushConstants.Size,
		}
		layoutInfo.PushConstantRangeCount = 1
		layoutInfo.PPushConstantRanges = &pcRange
	}

	var handle vk.PipelineLayout
	if result := d.cmds.CreatePipelineLayout(d.handle, &layoutInfo, &handle); result != vk.Success {
		return nil, resultToError("vkCreatePipelineLayout", result)
	}

	return &PipelineLayout{handle: handle, setLayouts: setLayouts}, nil
}

// DestroyPipelineLayout destroys the layout and its set layouts.
func (d *Device) DestroyPipelineLayout(layout hal.PipelineLayout) {
	l, ok := layout.(*PipelineLayout)
	if !ok {
		return
	}
	for _, sl := range l.setLayouts {
		if dsl, ok := sl.(*DescriptorSetLayout); ok && dsl.handle != vk.NullHandle {
			d.cmds.DestroyDescriptorSetLayout(d.handle, dsl.handle)
			dsl.handle = vk.NullHandle
		}
	}
	if l.handle != vk.NullHandle {
		d.cmds.DestroyPipelineLayout(d.handle, l.handle)
		l.handle = vk.NullHandle
	}
}

// CreateDescriptorSet allocates a set from the device's pools, opening
// a new pool when the current ones are exhausted.
func (d *Device) CreateDescriptorSet(layout hal.DescriptorSetLayout) (hal.DescriptorSet, error) {
	l, ok := layout.(*DescriptorSetLayout)
	if !ok || l.handle == vk.NullHandle {
		return nil, hal.ErrInvalidSpec
	}

	d.poolMu.Lock()
	defer d.poolMu.Unlock()

	for _, pool := range d.descriptorPools {
		if set, ok := d.tryAllocate(pool, l.handle); ok {
			return &DescriptorSet{handle: set, pool: pool}, nil
		}
	}

	pool, err := d.newDescriptorPool()
	if err != nil {
		return nil, err
	}
	d.descriptorPools = append(d.descriptorPools, pool)
	set, ok := d.tryAllocate(pool, l.handle)
	if !ok {
		return nil, hal.ErrDescriptorPoolExhausted
	}
	return &DescriptorSet{handle: set, pool: pool}, nil
}

func (d *Device) tryAllocate(pool vk.DescriptorPool, layout vk.DescriptorSetLayout) (vk.DescriptorSet, bool) {
	info := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     pool,
		DescriptorSetCount: 1,
		PSetLayouts:        &layout,
	}
	var set vk.DescriptorSet
	result := d.cmds.AllocateDescriptorSets(d.handle, &info, &set)
	return set, result == vk.Success
}

func (d *Device) newDescriptorPool() (vk.DescriptorPool, error) {
	sizes := []vk.DescriptorPoolSize{
		{Type: vk.DescriptorTypeCombinedImageSampler, DescriptorCount: 4 * descriptorPoolMaxSets},
		{Type: vk.DescriptorTypeSampledImage, DescriptorCount: 2 * descriptorPoolMaxSets},
		{Type: vk.DescriptorTypeSampler, DescriptorCount: descriptorPoolMaxSets},
		{Type: vk.DescriptorTypeStorageImage, DescriptorCount: descriptorPoolMaxSets},
		{Type: vk.DescriptorTypeUniformBuffer, DescriptorCount: 2 * descriptorPoolMaxSets},
		{Type: vk.DescriptorTypeStorageBuffer, DescriptorCount: 2 * descriptorPoolMaxSets},
		{Type: vk.DescriptorTypeInputAttachment, DescriptorCount: descriptorPoolMaxSets},
	}
	info := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		Flags:         vk.DescriptorPoolCreateFreeDescriptorSetBit,
		MaxSets:       descriptorPoolMaxSets,
		PoolSizeCount: uint32(len(sizes)),
		PPoolSizes:    &sizes[0],
	}
	var pool vk.DescriptorPool
	if result := d.cmds.CreateDescriptorPool(d.handle, &info, &pool); result != vk.Success {
		return 0, resultToError("vkCreateDescriptorPool", result)
	}
	return pool, nil
}

// UpdateDescriptorSet writes bindings into a set.
func (d *Device) UpdateDescriptorSet(set hal.DescriptorSet, writes []hal.DescriptorWrite) error {
	s, ok := set.(*DescriptorSet)
	if !ok {
		return hal.ErrInvalidSpec
	}

	// Info arrays must stay alive across the call; collect them first.
	var imageInfos []vk.DescriptorImageInfo
	var bufferInfos []vk.DescriptorBufferInfo
	type span struct{ start, count int }
	imageSpans := make([]span, len(writes))
	bufferSpans := make([]span, len(writes))

	for i, w := range writes {
		imageSpans[i].start = len(imageInfos)
		for _, img := range w.Images {
			info := vk.DescriptorImageInfo{ImageLayout: layoutToVk(img.Layout)}
			if v, ok := img.View.(*TextureView); ok {
				info.ImageView = v.handle
			}
			if smp, ok := img.Sampler.(*Sampler); ok && smp != nil {
				info.Sampler = smp.handle
			}
			imageInfos = append(imageInfos, info)
		}
		imageSpans[i].count = len(imageInfos) - imageSpans[i].start

		bufferSpans[i].start = len(bufferInfos)
		for _, buf := range w.Buffers {
			info := vk.DescriptorBufferInfo{Offset: buf.Offset, Range: buf.Range}
			if info.Range == 0 {
				info.Range = vk.WholeSize
			}
			if b, ok := buf.Buffer.(*Buffer); ok {
				info.Buffer = b.handle
			}
			bufferInfos = append(bufferInfos, info)
		}
		bufferSpans[i].count = len(bufferInfos) - bufferSpans[i].start
	}

	vkWrites := make([]vk.WriteDescriptorSet, 0, len(writes))
	for i, w := range writes {
		write := vk.WriteDescriptorSet{
			SType:          vk.StructureTypeWriteDescriptorSet,
			DstSet:         s.handle,
			DstBinding:     w.Binding,
			DescriptorType: descriptorTypeToVk(w.Type),
		}
		if n := imageSpans[i].count; n > 0 {
			write.DescriptorCount = uint32(n)
			write.PImageInfo = &imageInfos[imageSpans[i].start]
		}
		if n := bufferSpans[i].count; n > 0 {
			write.DescriptorCount = uint32(n)
			write.PBufferInfo = &bufferInfos[bufferSpans[i].start]
		}
		if write.DescriptorCount == 0 {
			continue
		}
		vkWrites = append(vkWrites, write)
	}

	d.cmds.UpdateDescriptorSets(d.handle, vkWrites)
	return nil
}

// FreeDescriptorSet returns a set to its pool.
func (d *Device) FreeDescriptorSet(set hal.DescriptorSet) {
	if s, ok := set.(*DescriptorSet); ok && s.handle != vk.NullHandle {
		d.cmds.FreeDescriptorSets(d.handle, s.pool, []vk.DescriptorSet{s.handle})
		s.handle = vk.NullHandle
	}
}
