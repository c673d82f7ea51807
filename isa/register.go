package isa

import (
	"fmt"
	"strconv"
	"strings"
)

// NumRegisters is the size of the general purpose register file.
const NumRegisters = 32

// Well-known register indices.
const (
	RegZero uint8 = 0
	RegV0   uint8 = 2
	RegA0   uint8 = 4
	RegT0   uint8 = 8
	RegS0   uint8 = 16
	RegSP   uint8 = 29
	RegFP   uint8 = 30
	RegRA   uint8 = 31
)

var symbolicNames = [NumRegisters]string{
	"$zero", "$at", "$v0", "$v1", "$a0", "$a1", "$a2", "$a3",
	"$t0", "$t1", "$t2", "$t3", "$t4", "$t5", "$t6", "$t7",
	"$s0", "$s1", "$s2", "$s3", "$s4", "$s5", "$s6", "$s7",
	"$t8", "$t9", "$k0", "$k1", "$gp", "$sp", "$fp", "$ra",
}

var (
	registerIndex = make(map[string]uint8)
	canonicalName [NumRegisters]string
)

func init() {
	for i, name := range symbolicNames {
		registerIndex[name] = uint8(i)
		registerIndex["$"+strconv.Itoa(i)] = uint8(i)

		// The canonical spelling is the short one; $zero prints as $0.
		if len(name) <= 3 {
			canonicalName[i] = name
		} else {
			canonicalName[i] = "$" + strconv.Itoa(i)
		}
	}
}

// RegisterIndex resolves a register operand. Surrounding whitespace and a
// trailing comma are ignored, and letters are case insensitive.
func RegisterIndex(name string) (uint8, error) {
	key := strings.TrimSpace(name)
	key = strings.TrimSpace(strings.TrimSuffix(key, ","))

	index, ok := registerIndex[strings.ToLower(key)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownRegister, name)
	}

	return index, nil
}

// RegisterName returns the canonical spelling of a register index. Indices
// outside the register file print as $<index>.
func RegisterName(index uint8) string {
	if int(index) < NumRegisters {
		return canonicalName[index]
	}

	return "$" + strconv.Itoa(int(index))
}
