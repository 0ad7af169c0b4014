package transcoder

import (
	"github.com/tewilove/xqluac/errors"
	"github.com/tewilove/xqluac/internal/binary"
)

// Read helpers attach the prototype path and the offset of the field that
// failed to the codec error.

func (t *Transcoder) readByte(path []string, what string) (byte, error) {
	off := t.r.Position()
	b, err := t.r.ReadByte()
	if err != nil {
		return 0, errors.Truncated(errors.PhaseDecode, path, off, what, err)
	}
	return b, nil
}

func (t *Transcoder) readInt(path []string, what string) (int32, error) {
	off := t.r.Position()
	v, err := t.r.ReadI32LE()
	if err != nil {
		return 0, errors.Truncated(errors.PhaseDecode, path, off, what, err)
	}
	return v, nil
}

// readCount reads a length prefix, rejecting negative values.
func (t *Transcoder) readCount(path []string, what string) (int, error) {
	off := t.r.Position()
	n, err := t.readInt(path, what)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.InvalidCount(path, off, what, n)
	}
	return int(n), nil
}

func (t *Transcoder) readNumber(path []string, what string) (float64, error) {
	off := t.r.Position()
	v, err := t.r.ReadF64LE()
	if err != nil {
		return 0, errors.Truncated(errors.PhaseDecode, path, off, what, err)
	}
	return v, nil
}

func (t *Transcoder) readString(path []string, what string) ([]byte, error) {
	off := t.r.Position()
	s, err := t.r.ReadString()
	if err != nil {
		if errors.Is(err, binary.ErrNegativeLength) {
			return nil, errors.New(errors.PhaseDecode, errors.KindInvalidCount).
				Path(path...).
				Offset(off).
				Detail("negative %s length", what).
				Cause(err).
				Build()
		}
		return nil, errors.Truncated(errors.PhaseDecode, path, off, what, err)
	}
	t.stats.Strings++
	return s, nil
}

// copyString reads one dialect string and writes it in reference form.
func (t *Transcoder) copyString(path []string, what string) ([]byte, error) {
	s, err := t.readString(path, what)
	if err != nil {
		return nil, err
	}
	t.w.WriteString(s)
	return s, nil
}

// copyInt reads one dialect int and writes it unchanged.
func (t *Transcoder) copyInt(path []string, what string) (int32, error) {
	v, err := t.readInt(path, what)
	if err != nil {
		return 0, err
	}
	t.w.WriteInt(v)
	return v, nil
}

// copyCount reads a length prefix and writes it unchanged.
func (t *Transcoder) copyCount(path []string, what string) (int, error) {
	n, err := t.readCount(path, what)
	if err != nil {
		return 0, err
	}
	t.w.WriteInt(int32(n))
	return n, nil
}
