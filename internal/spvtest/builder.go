// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package spvtest assembles minimal SPIR-V modules for tests. It emits
// just enough of the instruction stream for reflection: names,
// decorations, types, constants and variables. No function bodies.
package spvtest

import "encoding/binary"

// Builder assembles a SPIR-V module word by word.
type Builder struct {
	words  []uint32
	nextID uint32
}

// Storage classes mirrored for test readability.
const (
	StorageUniformConstant = 0
	StorageInput           = 1
	StorageUniform         = 2
	StoragePushConstant    = 9
	StorageStorageBuffer   = 12
)

// Decorations mirrored for test readability.
const (
	DecSpecID        = 1
	DecBlock         = 2
	DecBuiltIn       = 11
	DecNonWritable   = 24
	DecLocation      = 30
	DecBinding       = 33
	DecDescriptorSet = 34
	DecOffset        = 35
)

// New returns an empty builder.
func New() *Builder {
	return &Builder{nextID: 1}
}

// ID reserves a fresh result id.
func (b *Builder) ID() uint32 {
	id := b.nextID
	b.nextID++
	return id
}

func (b *Builder) emit(opcode uint32, operands ...uint32) {
	b.words = append(b.words, uint32(len(operands)+1)<<16|opcode)
	b.words = append(b.words, operands...)
}

func encodeString(s string) []uint32 {
	raw := append([]byte(s), 0)
	for len(raw)%4 != 0 {
		raw = append(raw, 0)
	}
	words := make([]uint32, len(raw)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(raw[i*4:])
	}
	return words
}

// Name emits OpName.
func (b *Builder) Name(target uint32, name string) {
	b.emit(5, append([]uint32{target}, encodeString(name)...)...)
}

// Decorate emits OpDecorate.
func (b *Builder) Decorate(target, decoration uint32, operands ...uint32) {
	b.emit(71, append([]uint32{target, decoration}, operands...)...)
}

// MemberDecorate emits OpMemberDecorate.
func (b *Builder) MemberDecorate(structID, member, decoration uint32, operands ...uint32) {
	b.emit(72, append([]uint32{structID, member, decoration}, operands...)...)
}

// TypeFloat emits OpTypeFloat and returns its id.
func (b *Builder) TypeFloat(width uint32) uint32 {
	id := b.ID()
	b.emit(22, id, width)
	return id
}

// TypeInt emits OpTypeInt and returns its id.
func (b *Builder) TypeInt(width uint32, signed bool) uint32 {
	id := b.ID()
	s := uint32(0)
	if signed {
		s = 1
	}
	b.emit(21, id, width, s)
	return id
}

// TypeBool emits OpTypeBool and returns its id.
func (b *Builder) TypeBool() uint32 {
	id := b.ID()
	b.emit(20, id)
	return id
}

// TypeVector emits OpTypeVector and returns its id.
func (b *Builder) TypeVector(elem, count uint32) uint32 {
	id := b.ID()
	b.emit(23, id, elem, count)
	return id
}

// TypeImage emits OpTypeImage and returns its id.
func (b *Builder) TypeImage(sampled uint32, dim uint32, sampledFlag uint32) uint32 {
	id := b.ID()
	// result, sampledType, dim, depth, arrayed, ms, sampled, format
	b.emit(25, id, sampled, dim, 0, 0, 0, sampledFlag, 0)
	return id
}

// TypeSampledImage emits OpTypeSampledImage and returns its id.
func (b *Builder) TypeSampledImage(image uint32) uint32 {
	id := b.ID()
	b.emit(27, id, image)
	return id
}

// TypeSampler emits OpTypeSampler and returns its id.
func (b *Builder) TypeSampler() uint32 {
	id := b.ID()
	b.emit(26, id)
	return id
}

// TypeStruct emits OpTypeStruct and returns its id.
func (b *Builder) TypeStruct(members ...uint32) uint32 {
	id := b.ID()
	b.emit(30, append([]uint32{id}, members...)...)
	return id
}

// TypeArray emits OpTypeArray with a fixed length constant.
func (b *Builder) TypeArray(elem, lengthConst uint32) uint32 {
	id := b.ID()
	b.emit(28, id, elem, lengthConst)
	return id
}

// TypeRuntimeArray emits OpTypeRuntimeArray and returns its id.
func (b *Builder) TypeRuntimeArray(elem uint32) uint32 {
	id := b.ID()
	b.emit(29, id, elem)
	return id
}

// TypePointer emits OpTypePointer and returns its id.
func (b *Builder) TypePointer(storage, pointee uint32) uint32 {
	id := b.ID()
	b.emit(32, id, storage, pointee)
	return id
}

// ConstantU32 emits OpConstant with one 32-bit word.
func (b *Builder) ConstantU32(typeID, value uint32) uint32 {
	id := b.ID()
	b.emit(43, typeID, id, value)
	return id
}

// SpecConstantU32 emits OpSpecConstant with one 32-bit word.
func (b *Builder) SpecConstantU32(typeID, value uint32) uint32 {
	id := b.ID()
	b.emit(50, typeID, id, value)
	return id
}

// SpecConstantTrue emits OpSpecConstantTrue.
func (b *Builder) SpecConstantTrue(typeID uint32) uint32 {
	id := b.ID()
	b.emit(48, typeID, id)
	return id
}

// Variable emits OpVariable and returns its id.
func (b *Builder) Variable(pointerType, storage uint32) uint32 {
	id := b.ID()
	b.emit(59, pointerType, id, storage)
	return id
}

// Bytes returns the finished module: header plus instructions.
func (b *Builder) Bytes() []byte {
	header := []uint32{
		0x07230203, // magic
		0x00010300, // version 1.3
		0,          // generator
		b.nextID,   // bound
		0,          // schema
	}
	all := append(header, b.words...)
	out := make([]byte, len(all)*4)
	for i, w := range all {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}

// Common prefabricated stages.

// VertexPassthrough builds a vertex stage with one vec3 input named
// "inPosition" at location 0.
func VertexPassthrough() []byte {
	b := New()
	f32 := b.TypeFloat(32)
	vec3 := b.TypeVector(f32, 3)
	ptr := b.TypePointer(StorageInput, vec3)
	pos := b.Variable(ptr, StorageInput)
	b.Name(pos, "inPosition")
	b.Decorate(pos, DecLocation, 0)
	return b.Bytes()
}

// FragmentConstant builds a fragment stage with no bindings.
func FragmentConstant() []byte {
	b := New()
	b.TypeFloat(32)
	return b.Bytes()
}

// FragmentSampled builds a fragment stage sampling one combined image
// sampler named like texName at (set, binding).
func FragmentSampled(texName string, set, binding uint32) []byte {
	b := New()
	f32 := b.TypeFloat(32)
	img := b.TypeImage(f32, 1 /* Dim2D */, 1)
	sampled := b.TypeSampledImage(img)
	ptr := b.TypePointer(StorageUniformConstant, sampled)
	v := b.Variable(ptr, StorageUniformConstant)
	b.Name(v, texName)
	b.Decorate(v, DecDescriptorSet, set)
	b.Decorate(v, DecBinding, binding)
	return b.Bytes()
}

// StageWithUniform builds a stage declaring a uniform block of the
// given size at (set, binding).
func StageWithUniform(blockName string, set, binding, size uint32) []byte {
	b := New()
	f32 := b.TypeFloat(32)
	vec4 := b.TypeVector(f32, 4)
	u32 := b.TypeInt(32, false)
	length := b.ConstantU32(u32, size/16)
	arr := b.TypeArray(vec4, length)
	block := b.TypeStruct(arr)
	b.Name(block, blockName)
	b.Decorate(block, DecBlock)
	b.MemberDecorate(block, 0, DecOffset, 0)
	b.Decorate(arr, 6 /* ArrayStride */, 16)
	ptr := b.TypePointer(StorageUniform, block)
	v := b.Variable(ptr, StorageUniform)
	b.Decorate(v, DecDescriptorSet, set)
	b.Decorate(v, DecBinding, binding)
	return b.Bytes()
}
