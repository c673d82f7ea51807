package asm

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/sarchlab/mipsasm/isa"
)

var memoryOperand = regexp.MustCompile(`^(-?\d+)\((\$\w+)\)$`)

// Encoder turns the tokens of one instruction into a word.
type Encoder struct {
	symbols *SymbolTable
	strict  bool
}

// NewEncoder creates an encoder that resolves labels against symbols. A nil
// table behaves as an empty one.
func NewEncoder(symbols *SymbolTable, strict bool) *Encoder {
	return &Encoder{symbols: symbols, strict: strict}
}

// Encode produces the word for tokens, the first of which is the mnemonic.
// address is the byte address of the instruction, needed by branches.
func (e *Encoder) Encode(tokens []string, address uint32) (uint32, error) {
	if len(tokens) == 0 {
		return 0, fmt.Errorf("%w: empty instruction", ErrMalformedOperand)
	}

	spec, err := isa.Lookup(tokens[0])
	if err != nil {
		return 0, err
	}

	operands := tokens[1:]
	if err := e.checkOperandCount(spec, operands); err != nil {
		return 0, err
	}

	switch spec.Shape {
	case isa.ShapeNop:
		return 0, nil
	case isa.ShapeShift:
		return e.encodeShift(spec, operands)
	case isa.ShapeJumpReg:
		return e.encodeJumpReg(spec, operands)
	case isa.ShapeArith:
		return e.encodeArith(spec, operands)
	case isa.ShapeMemory:
		return e.encodeMemory(spec, operands)
	case isa.ShapeBranch:
		return e.encodeBranch(spec, operands, address)
	case isa.ShapeImm:
		return e.encodeImm(spec, operands)
	case isa.ShapeJump:
		return e.encodeJump(spec, operands, address)
	case isa.ShapeUpperImm:
		return e.encodeUpperImm(spec, operands)
	}

	panic(fmt.Sprintf("no encoding for shape %d of %s", spec.Shape, spec.Mnemonic))
}

func (e *Encoder) checkOperandCount(spec isa.InstructionSpec, operands []string) error {
	want := spec.Shape.NumOperands()
	if len(operands) < want || (e.strict && len(operands) > want) {
		return fmt.Errorf("%w: %s takes %d operands, got %d",
			ErrMalformedOperand, spec.Mnemonic, want, len(operands))
	}

	return nil
}

func (e *Encoder) encodeShift(spec isa.InstructionSpec, ops []string) (uint32, error) {
	regs, err := registers(ops[0], ops[1])
	if err != nil {
		return 0, err
	}

	shamt, err := parseImmediate(ops[2])
	if err != nil {
		return 0, err
	}
	if err := e.checkRange("shift amount", shamt, 0, 31); err != nil {
		return 0, err
	}

	rd, rt := regs[0], regs[1]

	return isa.EncodeR(0, rt, rd, uint8(shamt), spec.Funct), nil
}

func (e *Encoder) encodeJumpReg(spec isa.InstructionSpec, ops []string) (uint32, error) {
	rs, err := isa.RegisterIndex(ops[0])
	if err != nil {
		return 0, err
	}

	return isa.EncodeR(rs, 0, 0, 0, spec.Funct), nil
}

func (e *Encoder) encodeArith(spec isa.InstructionSpec, ops []string) (uint32, error) {
	regs, err := registers(ops[0], ops[1], ops[2])
	if err != nil {
		return 0, err
	}

	rd, rs, rt := regs[0], regs[1], regs[2]

	return isa.EncodeR(rs, rt, rd, 0, spec.Funct), nil
}

func (e *Encoder) encodeMemory(spec isa.InstructionSpec, ops []string) (uint32, error) {
	rt, err := isa.RegisterIndex(ops[0])
	if err != nil {
		return 0, err
	}

	m := memoryOperand.FindStringSubmatch(strings.TrimSpace(ops[1]))
	if m == nil {
		return 0, fmt.Errorf("%w: expected offset(register), got %q",
			ErrMalformedOperand, ops[1])
	}

	offset, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad offset %q", ErrMalformedOperand, m[1])
	}
	if err := e.checkRange("offset", offset, math.MinInt16, math.MaxInt16); err != nil {
		return 0, err
	}

	rs, err := isa.RegisterIndex(m[2])
	if err != nil {
		return 0, err
	}

	return isa.EncodeI(spec.Opcode, rs, rt, uint16(offset)), nil
}

func (e *Encoder) encodeBranch(
	spec isa.InstructionSpec,
	ops []string,
	address uint32,
) (uint32, error) {
	regs, err := registers(ops[0], ops[1])
	if err != nil {
		return 0, err
	}

	target, err := e.resolveTarget(ops[2])
	if err != nil {
		return 0, err
	}
	if e.strict && target%4 != 0 {
		return 0, fmt.Errorf("%w: branch to 0x%x", ErrMisalignedTarget, target)
	}

	// Go division truncates toward zero.
	offset := (int64(target) - (int64(address) + 4)) / 4
	if err := e.checkRange("branch offset", offset, math.MinInt16, math.MaxInt16); err != nil {
		return 0, err
	}

	rs, rt := regs[0], regs[1]

	return isa.EncodeI(spec.Opcode, rs, rt, uint16(offset)), nil
}

func (e *Encoder) encodeImm(spec isa.InstructionSpec, ops []string) (uint32, error) {
	regs, err := registers(ops[0], ops[1])
	if err != nil {
		return 0, err
	}

	imm, err := parseImmediate(ops[2])
	if err != nil {
		return 0, err
	}
	if err := e.checkRange("immediate", imm, math.MinInt16, math.MaxInt16); err != nil {
		return 0, err
	}

	rt, rs := regs[0], regs[1]

	return isa.EncodeI(spec.Opcode, rs, rt, uint16(imm)), nil
}

func (e *Encoder) encodeJump(
	spec isa.InstructionSpec,
	ops []string,
	address uint32,
) (uint32, error) {
	target, err := e.resolveTarget(ops[0])
	if err != nil {
		return 0, err
	}

	if e.strict {
		if target%4 != 0 {
			return 0, fmt.Errorf("%w: jump to 0x%x", ErrMisalignedTarget, target)
		}

		region := (address + 4) & 0xf0000000
		if target&0xf0000000 != region {
			return 0, fmt.Errorf("%w: jump to 0x%x leaves the 256 MiB region 0x%08x",
				ErrOutOfRange, target, region)
		}
	}

	return isa.EncodeJ(spec.Opcode, target), nil
}

func (e *Encoder) encodeUpperImm(spec isa.InstructionSpec, ops []string) (uint32, error) {
	rt, err := isa.RegisterIndex(ops[0])
	if err != nil {
		return 0, err
	}

	imm, err := parseImmediate(ops[1])
	if err != nil {
		return 0, err
	}
	if err := e.checkRange("immediate", imm, math.MinInt16, math.MaxUint16); err != nil {
		return 0, err
	}

	return isa.EncodeI(spec.Opcode, 0, rt, uint16(imm)), nil
}

// resolveTarget turns a branch or jump operand into a byte address. Without
// strict checking an unknown label resolves to address 0.
func (e *Encoder) resolveTarget(operand string) (uint32, error) {
	operand = strings.TrimSpace(operand)

	if hasHexPrefix(operand) {
		v, err := strconv.ParseUint(operand[2:], 16, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: bad address %q", ErrMalformedOperand, operand)
		}

		if e.strict && v > math.MaxUint32 {
			return 0, fmt.Errorf("%w: address %s is wider than 32 bits", ErrOutOfRange, operand)
		}

		return uint32(v), nil
	}

	if address, ok := e.symbols.Lookup(operand); ok {
		return address, nil
	}

	if e.strict {
		return 0, fmt.Errorf("%w: %s", ErrUndefinedLabel, operand)
	}

	return 0, nil
}

func (e *Encoder) checkRange(what string, v, lo, hi int64) error {
	if !e.strict || (v >= lo && v <= hi) {
		return nil
	}

	return fmt.Errorf("%w: %s %d not in [%d, %d]", ErrOutOfRange, what, v, lo, hi)
}

func registers(names ...string) ([]uint8, error) {
	out := make([]uint8, len(names))
	for i, name := range names {
		index, err := isa.RegisterIndex(name)
		if err != nil {
			return nil, err
		}
		out[i] = index
	}

	return out, nil
}

// parseImmediate accepts signed decimal and signed 0x-prefixed hexadecimal.
// Magnitudes up to 63 bits parse; the caller range-checks or masks them.
func parseImmediate(s string) (int64, error) {
	s = strings.TrimSpace(s)

	body, negative := s, false
	if strings.HasPrefix(body, "-") {
		body, negative = body[1:], true
	}

	base := 10
	if hasHexPrefix(body) {
		body, base = body[2:], 16
	}

	// ParseUint rejects a second sign, so "--1" and "-+1" fail here.
	magnitude, err := strconv.ParseUint(body, base, 63)
	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: immediate %q is wider than 63 bits", ErrOutOfRange, s)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: bad immediate %q", ErrMalformedOperand, s)
	}

	v := int64(magnitude)
	if negative {
		v = -v
	}

	return v, nil
}

func hasHexPrefix(s string) bool {
	return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
}
