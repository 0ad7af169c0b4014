// Package bytecode models the two compiled-chunk formats xqluac converts
// between: the vendor dialect ("\x1bFate/Z\x1b") and stock Lua 5.1.
//
// The package holds format knowledge only and performs no I/O:
//
//	DialectHeader      16-byte dialect header, ParseDialectHeader + Validate
//	ReferenceHeader    12-byte Lua 5.1 header, NativeReferenceHeader + Bytes
//	Opcode             Lua 5.1.5 opcodes with their upstream names
//	Remap              dialect instruction word -> reference instruction word
//	TranslateTag       dialect constant tag -> reference constant tag
//	XORString          the dialect string cipher (an involution)
//
// # Instruction Remapping
//
// Both formats keep the opcode in the low 6 bits of a 32-bit word. The
// dialect permutes opcode values through a 42-entry table; one entry is an
// escape marker whose real opcode is stored in the 9-bit field at bit 14:
//
//	field  opcode
//	0      CLOSE
//	1      LEN
//	2      UNM
//	3      NOT
//
// Remapping rewrites the opcode field, clears bits 14-15 of escaped
// instructions, and leaves every operand bit untouched.
package bytecode
