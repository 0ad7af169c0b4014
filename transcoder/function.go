package transcoder

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/tewilove/xqluac/bytecode"
	"github.com/tewilove/xqluac/errors"
)

// function transcodes one prototype and, through its constant pool, every
// prototype nested in it. Each nested prototype is completely written
// before its next sibling is read.
func (t *Transcoder) function(path []string) error {
	// Dialect field order.
	numParams, err := t.readByte(path, "parameter count")
	if err != nil {
		return err
	}
	source, err := t.readString(path, "source name")
	if err != nil {
		return err
	}
	numUpvalues, err := t.readByte(path, "upvalue count")
	if err != nil {
		return err
	}
	lineDefined, err := t.readInt(path, "line defined")
	if err != nil {
		return err
	}
	isVararg, err := t.readByte(path, "vararg flag")
	if err != nil {
		return err
	}
	lastLineDefined, err := t.readInt(path, "last line defined")
	if err != nil {
		return err
	}
	maxStackSize, err := t.readByte(path, "stack size")
	if err != nil {
		return err
	}

	// Reference field order.
	t.w.WriteString(source)
	t.w.WriteInt(lineDefined)
	t.w.WriteInt(lastLineDefined)
	t.w.Byte(numUpvalues)
	t.w.Byte(numParams)
	t.w.Byte(isVararg)
	t.w.Byte(maxStackSize)

	numCode, err := t.code(path)
	if err != nil {
		return err
	}
	numConsts, numProtos, err := t.constants(path)
	if err != nil {
		return err
	}
	if err := t.debug(path); err != nil {
		return err
	}
	if err := t.w.Err(); err != nil {
		return errors.WriteFailed(path, err)
	}

	t.stats.Functions++
	if ce := t.log.Check(zap.DebugLevel, "transcoded function"); ce != nil {
		ce.Write(
			zap.String("path", strings.Join(path, "/")),
			zap.ByteString("source", source),
			zap.Int32("line_defined", lineDefined),
			zap.Int32("last_line_defined", lastLineDefined),
			zap.Int("instructions", numCode),
			zap.Int("constants", numConsts),
			zap.Int("functions", numProtos))
	}
	return nil
}

// code remaps the instruction block. The block is only written once every
// instruction has been remapped, so a decode failure writes none of it.
func (t *Transcoder) code(path []string) (int, error) {
	n, err := t.copyCount(path, "instruction count")
	if err != nil {
		return 0, err
	}

	buf := getCode()
	defer putCode(buf)

	for i := 0; i < n; i++ {
		off := t.r.Position()
		insn, err := t.r.ReadU32LE()
		if err != nil {
			return 0, errors.Truncated(errors.PhaseDecode, path, off, "instruction block", err)
		}
		m, err := bytecode.Remap(insn)
		if err != nil {
			if errors.Is(err, bytecode.ErrUnknownEscape) {
				return 0, errors.InvalidEscape(path, i, off, insn, err)
			}
			return 0, errors.InvalidOpcode(path, i, off, insn, err)
		}
		if m.Escaped {
			t.stats.Escaped++
		}
		if t.trace {
			t.log.Debug("instruction",
				zap.String("path", strings.Join(path, "/")),
				zap.Int("index", i),
				zap.String("offset", "0x"+strconv.FormatInt(off, 16)),
				zap.String("dialect", fmt.Sprintf("0x%08x", insn)),
				zap.String("reference", fmt.Sprintf("0x%08x", m.Word)),
				zap.Stringer("op", m.Op),
				zap.Bool("escaped", m.Escaped))
		}
		*buf = append(*buf, m.Word)
	}

	for _, word := range *buf {
		t.w.WriteU32(word)
	}
	t.stats.Instructions += n
	return n, nil
}
