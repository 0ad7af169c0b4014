package transcoder

import (
	"strconv"

	"github.com/tewilove/xqluac/bytecode"
	"github.com/tewilove/xqluac/errors"
)

// constants transcodes the constant list followed by the nested
// prototypes. It returns both counts.
func (t *Transcoder) constants(path []string) (int, int, error) {
	n, err := t.copyCount(path, "constant count")
	if err != nil {
		return 0, 0, err
	}
	for i := 0; i < n; i++ {
		if err := t.constant(path); err != nil {
			return 0, 0, err
		}
	}

	np, err := t.copyCount(path, "function count")
	if err != nil {
		return 0, 0, err
	}
	for i := 0; i < np; i++ {
		child := append(path[:len(path):len(path)], strconv.Itoa(i))
		if err := t.function(child); err != nil {
			return 0, 0, err
		}
	}
	return n, np, nil
}

func (t *Transcoder) constant(path []string) error {
	off := t.r.Position()
	b, err := t.readByte(path, "constant tag")
	if err != nil {
		return err
	}
	tag := bytecode.Tag(b)
	ref, err := bytecode.TranslateTag(tag)
	if err != nil {
		return errors.InvalidTag(path, off, b, err)
	}
	t.w.Byte(byte(ref))

	switch tag {
	case bytecode.DialectTagNil:
	case bytecode.DialectTagBoolean:
		v, err := t.readByte(path, "boolean constant")
		if err != nil {
			return err
		}
		t.w.Byte(v)
	case bytecode.DialectTagNumber:
		v, err := t.readNumber(path, "number constant")
		if err != nil {
			return err
		}
		t.w.WriteF64(v)
	case bytecode.DialectTagString:
		if _, err := t.copyString(path, "string constant"); err != nil {
			return err
		}
	case bytecode.DialectTagInteger:
		v, err := t.readInt(path, "integer constant")
		if err != nil {
			return err
		}
		t.w.WriteF64(float64(v))
		t.stats.PromotedIntegers++
	}
	t.stats.Constants++
	return nil
}
