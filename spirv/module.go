// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spirv

import (
	"encoding/binary"
	"strings"
)

// Magic is the SPIR-V magic number in little-endian modules.
const Magic = 0x07230203

// Opcodes the reflector cares about.
const (
	opName           = 5
	opEntryPoint     = 15
	opTypeVoid       = 19
	opTypeBool       = 20
	opTypeInt        = 21
	opTypeFloat      = 22
	opTypeVector     = 23
	opTypeMatrix     = 24
	opTypeImage      = 25
	opTypeSampler    = 26
	opTypeSampledImg = 27
	opTypeArray      = 28
	opTypeRuntimeArr = 29
	opTypeStruct     = 30
	opTypePointer    = 32
	opConstantTrue   = 41
	opConstantFalse  = 42
	opConstant       = 43
	opSpecConstTrue  = 48
	opSpecConstFalse = 49
	opSpecConstant   = 50
	opVariable       = 59
	opDecorate       = 71
	opMemberDecorate = 72

	opTypeAccelerationStructure = 5341
)

// Decorations.
const (
	decSpecID        = 1
	decBlock         = 2
	decBufferBlock   = 3
	decArrayStride   = 6
	decMatrixStride  = 7
	decBuiltIn       = 11
	decNonWritable   = 24
	decLocation      = 30
	decBinding       = 33
	decDescriptorSet = 34
	decOffset        = 35
)

// Storage classes.
const (
	storageUniformConstant = 0
	storageInput           = 1
	storageUniform         = 2
	storagePushConstant    = 9
	storageStorageBuffer   = 12
)

// Image dims.
const (
	dimBuffer      = 5
	dimSubpassData = 6
)

// typeInfo is one OpType* declaration.
type typeInfo struct {
	op       uint32
	width    uint32 // int/float bit width
	signed   bool
	count    uint32 // vector components / matrix columns
	elem     uint32 // element/column/pointee type id
	lengthID uint32 // array length constant id
	members  []uint32
	storage  uint32 // pointer storage class

	// image operands
	dim     uint32
	sampled uint32
}

// variable is one OpVariable declaration.
type variable struct {
	id      uint32
	typeID  uint32 // pointer type
	storage uint32
}

// specConstant is one OpSpecConstant* declaration.
type specConstant struct {
	id     uint32
	isBool bool
	boolV  bool
	word   uint32 // raw default value for int/float
	typeID uint32
}

// module is the parsed view of one stage's bytecode: just the
// declarations reflection needs, indexed by result id.
type module struct {
	names     map[uint32]string
	dec       map[uint32]map[uint32][]uint32
	memberDec map[uint32]map[uint32]map[uint32][]uint32
	types     map[uint32]*typeInfo
	constants map[uint32]uint32
	specs     []specConstant
	vars      []variable
}

// parse walks the instruction stream. It tolerates (and skips) every
// opcode it does not know about.
func parse(code []byte) (*module, error) {
	if len(code) < 20 || len(code)%4 != 0 {
		return nil, ErrNotSpirv
	}

	words := make([]uint32, len(code)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(code[i*4:])
	}
	if words[0] != Magic {
		return nil, ErrNotSpirv
	}

	m := &module{
		names:     make(map[uint32]string),
		dec:       make(map[uint32]map[uint32][]uint32),
		memberDec: make(map[uint32]map[uint32]map[uint32][]uint32),
		types:     make(map[uint32]*typeInfo),
		constants: make(map[uint32]uint32),
	}

	// Instructions start after the five-word header.
	for at := 5; at < len(words); {
		first := words[at]
		wordCount := int(first >> 16)
		opcode := first & 0xFFFF
		if wordCount == 0 || at+wordCount > len(words) {
			return nil, ErrNotSpirv
		}
		operands := words[at+1 : at+wordCount]

		switch opcode {
		case opName:
			if len(operands) >= 2 {
				m.names[operands[0]] = decodeString(operands[1:])
			}

		case opDecorate:
			if len(operands) >= 2 {
				target, dec := operands[0], operands[1]
				if m.dec[target] == nil {
					m.dec[target] = make(map[uint32][]uint32)
				}
				m.dec[target][dec] = append([]uint32(nil), operands[2:]...)
			}

		case opMemberDecorate:
			if len(operands) >= 3 {
				target, member, dec := operands[0], operands[1], operands[2]
				if m.memberDec[target] == nil {
					m.memberDec[target] = make(map[uint32]map[uint32][]uint32)
				}
				if m.memberDec[target][member] == nil {
					m.memberDec[target][member] = make(map[uint32][]uint32)
				}
				m.memberDec[target][member][dec] = append([]uint32(nil), operands[3:]...)
			}

		case opTypeVoid, opTypeBool, opTypeSampler:
			m.types[operands[0]] = &typeInfo{op: opcode}

		case opTypeInt:
			m.types[operands[0]] = &typeInfo{op: opcode, width: operands[1], signed: operands[2] != 0}

		case opTypeFloat:
			m.types[operands[0]] = &typeInfo{op: opcode, width: operands[1]}

		case opTypeVector, opTypeMatrix:
			m.types[operands[0]] = &typeInfo{op: opcode, elem: operands[1], count: operands[2]}

		case opTypeImage:
			// result, sampledType, dim, depth, arrayed, ms, sampled, format
			m.types[operands[0]] = &typeInfo{
				op:      opcode,
				elem:    operands[1],
				dim:     operands[2],
				sampled: operands[6],
			}

		case opTypeSampledImg:
			m.types[operands[0]] = &typeInfo{op: opcode, elem: operands[1]}

		case opTypeArray:
			m.types[operands[0]] = &typeInfo{op: opcode, elem: operands[1], lengthID: operands[2]}

		case opTypeRuntimeArr:
			m.types[operands[0]] = &typeInfo{op: opcode, elem: operands[1]}

		case opTypeStruct:
			m.types[operands[0]] = &typeInfo{op: opcode, members: append([]uint32(nil), operands[1:]...)}

		case opTypePointer:
			m.types[operands[0]] = &typeInfo{op: opcode, storage: operands[1], elem: operands[2]}

		case opTypeAccelerationStructure:
			m.types[operands[0]] = &typeInfo{op: opcode}

		case opConstant:
			// resultType, result, value...
			if len(operands) >= 3 {
				m.constants[operands[1]] = operands[2]
			}

		case opConstantTrue:
			m.constants[operands[1]] = 1

		case opConstantFalse:
			m.constants[operands[1]] = 0

		case opSpecConstTrue, opSpecConstFalse:
			m.specs = append(m.specs, specConstant{
				id:     operands[1],
				typeID: operands[0],
				isBool: true,
				boolV:  opcode == opSpecConstTrue,
			})

		case opSpecConstant:
			if len(operands) >= 3 {
				m.specs = append(m.specs, specConstant{
					id:     operands[1],
					typeID: operands[0],
					word:   operands[2],
				})
			}

		case opVariable:
			// resultType, result, storageClass
			if len(operands) >= 3 {
				m.vars = append(m.vars, variable{
					id:      operands[1],
					typeID:  operands[0],
					storage: operands[2],
				})
			}
		}

		at += wordCount
	}

	return m, nil
}

// decodeString decodes a null-terminated literal string packed four
// bytes per word.
func decodeString(words []uint32) string {
	var b strings.Builder
	for _, w := range words {
		for shift := 0; shift < 32; shift += 8 {
			c := byte(w >> shift)
			if c == 0 {
				return b.String()
			}
			b.WriteByte(c)
		}
	}
	return b.String()
}

// decoration returns the first operand of a decoration on id, if set.
func (m *module) decoration(id, dec uint32) (uint32, bool) {
	ops, ok := m.dec[id][dec]
	if !ok {
		return 0, false
	}
	if len(ops) == 0 {
		return 0, true
	}
	return ops[0], true
}

// hasDecoration reports whether id carries dec.
func (m *module) hasDecoration(id, dec uint32) bool {
	_, ok := m.dec[id][dec]
	return ok
}

// pointee follows a pointer type to its pointee.
func (m *module) pointee(typeID uint32) *typeInfo {
	t := m.types[typeID]
	if t == nil {
		return nil
	}
	if t.op == opTypePointer {
		return m.types[t.elem]
	}
	return t
}

// peelArrays strips array wrappers, returning the innermost type id
// and the product of the fixed array lengths. runtime reports whether
// a runtime array was crossed.
func (m *module) peelArrays(typeID uint32) (inner uint32, arraySize uint32, runtime bool) {
	arraySize = 1
	for {
		t := m.types[typeID]
		if t == nil {
			return typeID, arraySize, runtime
		}
		switch t.op {
		case opTypeArray:
			if n, ok := m.constants[t.lengthID]; ok && n > 0 {
				arraySize *= n
			}
			typeID = t.elem
		case opTypeRuntimeArr:
			runtime = true
			typeID = t.elem
		default:
			return typeID, arraySize, runtime
		}
	}
}

// scalarSize returns the byte size of a scalar/vector/matrix/array/
// struct type, using Offset, ArrayStride and MatrixStride decorations
// where the layout requires them. Runtime arrays contribute zero.
func (m *module) scalarSize(typeID uint32) uint32 {
	t := m.types[typeID]
	if t == nil {
		return 0
	}
	switch t.op {
	case opTypeBool:
		return 4
	case opTypeInt, opTypeFloat:
		return t.width / 8
	case opTypeVector:
		return t.count * m.scalarSize(t.elem)
	case opTypeMatrix:
		if stride, ok := m.decoration(typeID, decMatrixStride); ok {
			return t.count * stride
		}
		return t.count * m.scalarSize(t.elem)
	case opTypeArray:
		n := m.constants[t.lengthID]
		if stride, ok := m.decoration(typeID, decArrayStride); ok {
			return n * stride
		}
		return n * m.scalarSize(t.elem)
	case opTypeRuntimeArr:
		return 0
	case opTypeStruct:
		return m.blockSize(typeID)
	}
	return 0
}

// blockSize computes a struct's byte size as the largest member end
// offset, the way buffer block sizes are reported.
func (m *module) blockSize(structID uint32) uint32 {
	t := m.types[structID]
	if t == nil || t.op != opTypeStruct {
		return 0
	}
	var size uint32
	for i, member := range t.members {
		var offset uint32
		if decs := m.memberDec[structID][uint32(i)]; decs != nil {
			if ops, ok := decs[decOffset]; ok && len(ops) > 0 {
				offset = ops[0]
			}
		}
		if end := offset + m.scalarSize(member); end > size {
			size = end
		}
	}
	return size
}

// memberNonWritable reports whether every member of a struct carries
// NonWritable.
func (m *module) memberNonWritable(structID uint32) bool {
	t := m.types[structID]
	if t == nil || t.op != opTypeStruct || len(t.members) == 0 {
		return false
	}
	for i := range t.members {
		decs := m.memberDec[structID][uint32(i)]
		if decs == nil {
			return false
		}
		if _, ok := decs[decNonWritable]; !ok {
			return false
		}
	}
	return true
}
