package isa

// Fields holds every bit field of a word, whatever its format.
type Fields struct {
	Opcode uint8  // 31-26
	Rs     uint8  // 25-21
	Rt     uint8  // 20-16
	Rd     uint8  // 15-11
	Shamt  uint8  // 10-6
	Funct  uint8  // 5-0
	Imm    uint16 // 15-0
	Target uint32 // 25-0
}

// Split extracts all fields of a word.
func Split(word uint32) Fields {
	return Fields{
		Opcode: uint8(word>>26) & 0x3f,
		Rs:     uint8(word>>21) & 0x1f,
		Rt:     uint8(word>>16) & 0x1f,
		Rd:     uint8(word>>11) & 0x1f,
		Shamt:  uint8(word>>6) & 0x1f,
		Funct:  uint8(word) & 0x3f,
		Imm:    uint16(word),
		Target: word & 0x3ffffff,
	}
}

// SignedImm sign-extends the 16-bit immediate.
func (f Fields) SignedImm() int32 {
	return int32(int16(f.Imm))
}

// EncodeR packs an R-format word. Opcode is always 0.
func EncodeR(rs, rt, rd, shamt, funct uint8) uint32 {
	return uint32(rs&0x1f)<<21 |
		uint32(rt&0x1f)<<16 |
		uint32(rd&0x1f)<<11 |
		uint32(shamt&0x1f)<<6 |
		uint32(funct&0x3f)
}

// EncodeI packs an I-format word. Negative immediates must already be
// truncated to their 16-bit two's complement pattern.
func EncodeI(opcode, rs, rt uint8, imm uint16) uint32 {
	return uint32(opcode&0x3f)<<26 |
		uint32(rs&0x1f)<<21 |
		uint32(rt&0x1f)<<16 |
		uint32(imm)
}

// EncodeJ packs a J-format word from a byte address. The low two bits and
// the top four bits of the address are dropped.
func EncodeJ(opcode uint8, address uint32) uint32 {
	return uint32(opcode&0x3f)<<26 | (address>>2)&0x3ffffff
}
