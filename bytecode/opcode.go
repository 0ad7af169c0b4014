package bytecode

import (
	"errors"
	"fmt"
)

// Opcode is a reference (Lua 5.1.5) instruction opcode.
type Opcode uint8

// Reference opcodes in their upstream numbering.
const (
	OpMove Opcode = iota
	OpLoadK
	OpLoadBool
	OpLoadNil
	OpGetUpval
	OpGetGlobal
	OpGetTable
	OpSetGlobal
	OpSetUpval
	OpSetTable
	OpNewTable
	OpSelf
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpUnm
	OpNot
	OpLen
	OpConcat
	OpJmp
	OpEq
	OpLt
	OpLe
	OpTest
	OpTestSet
	OpCall
	OpTailCall
	OpReturn
	OpForLoop
	OpForPrep
	OpTForLoop
	OpSetList
	OpClose
	OpClosure
	OpVararg

	// NumOpcodes is the number of reference opcodes.
	NumOpcodes = int(OpVararg) + 1
)

// opEscape marks a dialect opcode whose real opcode lives in the escape field.
const opEscape Opcode = 0xff

var opNames = [NumOpcodes]string{
	"MOVE", "LOADK", "LOADBOOL", "LOADNIL",
	"GETUPVAL", "GETGLOBAL", "GETTABLE", "SETGLOBAL",
	"SETUPVAL", "SETTABLE", "NEWTABLE", "SELF",
	"ADD", "SUB", "MUL", "DIV",
	"MOD", "POW", "UNM", "NOT",
	"LEN", "CONCAT", "JMP", "EQ",
	"LT", "LE", "TEST", "TESTSET",
	"CALL", "TAILCALL", "RETURN", "FORLOOP",
	"FORPREP", "TFORLOOP", "SETLIST", "CLOSE",
	"CLOSURE", "VARARG",
}

func (op Opcode) String() string {
	if int(op) < NumOpcodes {
		return opNames[op]
	}
	if op == opEscape {
		return "ESCAPE"
	}
	return fmt.Sprintf("OP_%d", uint8(op))
}

// Instruction field layout shared by both formats.
const (
	OpcodeMask uint32 = 0x3f

	EscapeShift                = 14
	EscapeFieldMask     uint32 = 0x1ff
	escapeIndicatorBits uint32 = 3 << EscapeShift
)

// dialectOpcodes maps the 6-bit dialect opcode field to reference opcodes.
// The dialect assigns several codes to the same reference opcode.
var dialectOpcodes = [...]Opcode{
	OpLen, OpClosure, opEscape, OpLt,         // 0x00
	OpNot, OpLt, OpLoadK, OpSetList,          // 0x04
	OpReturn, OpTest, OpTForLoop, OpForPrep,  // 0x08
	OpSub, OpTailCall, OpDiv, OpSelf,         // 0x0c
	OpCall, OpSetTable, OpGetUpval, OpEq,     // 0x10
	OpEq, OpConcat, OpLe, OpLe,               // 0x14
	OpLoadBool, OpMod, OpForLoop, OpGetTable, // 0x18
	OpNewTable, OpClose, OpVararg, OpJmp,     // 0x1c
	OpUnm, OpPow, OpMul, OpTestSet,           // 0x20
	OpMove, OpAdd, OpGetGlobal, OpSetUpval,   // 0x24
	OpSetGlobal, OpLoadNil,                   // 0x28
}

// DialectOpcodeCount is the number of valid dialect opcode values.
const DialectOpcodeCount = len(dialectOpcodes)

// escapedOpcodes is indexed by the escape field value.
var escapedOpcodes = [...]Opcode{OpClose, OpLen, OpUnm, OpNot}

// Decode errors returned by Remap.
var (
	ErrUnknownOpcode = errors.New("unknown dialect opcode")
	ErrUnknownEscape = errors.New("unknown escaped opcode")
)

// LookupDialect returns the table entry for a dialect opcode value. The
// second result reports whether the entry is the escape marker, in which
// case the returned opcode is meaningless.
func LookupDialect(code uint32) (op Opcode, escaped bool, err error) {
	if code >= uint32(len(dialectOpcodes)) {
		return 0, false, ErrUnknownOpcode
	}
	op = dialectOpcodes[code]
	if op == opEscape {
		return 0, true, nil
	}
	return op, false, nil
}

// ResolveEscape maps an escape field value to its reference opcode.
func ResolveEscape(field uint32) (Opcode, error) {
	if field >= uint32(len(escapedOpcodes)) {
		return 0, ErrUnknownEscape
	}
	return escapedOpcodes[field], nil
}

// Remapped describes the translation of one instruction word.
type Remapped struct {
	Word    uint32
	Op      Opcode
	Escaped bool
}

// Remap translates one dialect instruction word into the reference
// encoding. Only the opcode field is rewritten; operand bits pass through
// unchanged, except that an escaped instruction also has its escape
// indicator bits cleared.
//
// TODO: EQ, LT and LE may need their B and C operands swapped; no dialect
// sample has confirmed either way, so operands are copied verbatim.
func Remap(insn uint32) (Remapped, error) {
	op, escaped, err := LookupDialect(insn & OpcodeMask)
	if err != nil {
		return Remapped{}, err
	}
	if escaped {
		op, err = ResolveEscape((insn >> EscapeShift) & EscapeFieldMask)
		if err != nil {
			return Remapped{}, err
		}
		insn &^= escapeIndicatorBits
	}
	insn = insn&^OpcodeMask | uint32(op)
	return Remapped{Word: insn, Op: op, Escaped: escaped}, nil
}
