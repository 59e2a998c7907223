package codegen

// Opcode constants for the fixed 6502-family instruction subset this
// generator emits (spec.md §4.5).
const (
	opLDAImmediate byte = 0xA9 // LDA#
	opLDAAbsolute  byte = 0xAD // LDA
	opSTAAbsolute  byte = 0x8D // STA
	opADCAbsolute  byte = 0x6D // ADC
	opLDXImmediate byte = 0xA2 // LDX#
	opLDXAbsolute  byte = 0xAE // LDX
	opLDYImmediate byte = 0xA0 // LDY#
	opLDYAbsolute  byte = 0xAC // LDY
	opNOP          byte = 0xEA
	opBRK          byte = 0x00
	opCPXAbsolute  byte = 0xEC
	opBNE          byte = 0xD0
	opINC          byte = 0xEE
	opSYS          byte = 0xFF
)

const (
	syscallPrintInt    byte = 1
	syscallPrintString byte = 2
)

// Reserved boolean/string addresses. Both "true" and "false" are
// represented internally as the heap address of their own printable text,
// so a boolean value loaded into a variable is exactly the address used to
// print it (see DESIGN.md for why this overrides the 0xF0 encoding named
// elsewhere for false).
const (
	trueAddress  uint16 = 0xF5
	falseAddress uint16 = 0xFA
)

// tempZeroPage is the single scratch byte used by the ADC accumulation
// chain and by comparison evaluation; both reuse the same scratch cell
// since only one expression is ever mid-evaluation at a time.
const tempZeroPage uint16 = 0x00
