package transcoder

import (
	"go.uber.org/zap"

	"github.com/tewilove/xqluac/bytecode"
	"github.com/tewilove/xqluac/errors"
)

// readHeader skips an optional "#!" line and validates the dialect header.
func (t *Transcoder) readHeader() error {
	skipped, err := t.r.SkipInterpreterLine()
	if err != nil {
		return errors.Truncated(errors.PhaseHeader, nil, t.r.Position(), "interpreter line", err)
	}
	if skipped {
		t.log.Debug("skipped interpreter line", zap.Int64("length", t.r.Position()))
	}

	off := t.r.Position()
	raw, err := t.r.ReadBytes(bytecode.DialectHeaderSize)
	if err != nil {
		return errors.Truncated(errors.PhaseHeader, nil, off, "dialect header", err)
	}
	h, err := bytecode.ParseDialectHeader(raw)
	if err != nil {
		return errors.HeaderMismatch(off, err)
	}
	if err := h.Validate(); err != nil {
		return errors.HeaderMismatch(off, err)
	}
	return nil
}

// writeHeader emits the reference header for the target platform. Nothing
// from the dialect header is carried over.
func (t *Transcoder) writeHeader() {
	t.w.WriteBytes(t.header.Bytes())
}
