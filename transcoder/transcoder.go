package transcoder

import (
	"io"

	"go.uber.org/zap"

	"github.com/tewilove/xqluac/bytecode"
	"github.com/tewilove/xqluac/errors"
	"github.com/tewilove/xqluac/internal/binary"
)

// rootName is the path element of the top-level prototype.
const rootName = "main"

// State is a position in the conversion state machine.
type State int

const (
	StateStart State = iota
	StateHeaderValidated
	StateRootTranscoded
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateHeaderValidated:
		return "header-validated"
	case StateRootTranscoded:
		return "root-transcoded"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Stats counts what a run translated.
type Stats struct {
	Functions        int
	Instructions     int
	Escaped          int
	Constants        int
	Strings          int
	PromotedIntegers int
	BytesRead        int64
	BytesWritten     int64
}

// Transcoder converts one dialect chunk into a reference chunk in a single
// streaming pass. A Transcoder is single-use and not safe for concurrent use.
type Transcoder struct {
	r      *binary.Reader
	w      *binary.Writer
	header bytecode.ReferenceHeader
	log    *zap.Logger
	trace  bool
	state  State
	stats  Stats
}

// New creates a Transcoder reading dialect bytes from r and writing
// reference bytes for the running platform to w.
func New(r io.Reader, w io.Writer, opts ...Option) *Transcoder {
	h := bytecode.NativeReferenceHeader()
	t := &Transcoder{
		r:      binary.NewReader(r),
		w:      binary.NewWriter(w, h.ByteOrder(), int(h.SizeTSize)),
		header: h,
		log:    Logger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// State returns the current state.
func (t *Transcoder) State() State {
	return t.state
}

// Stats returns the counters collected so far.
func (t *Transcoder) Stats() Stats {
	s := t.stats
	s.BytesRead = t.r.Position()
	s.BytesWritten = t.w.Len()
	return s
}

// Run performs the conversion: validate the header, transcode the
// top-level prototype, then require the input to be exhausted. Output
// written before a failure is flushed as is; on any error the output is
// incomplete and must be discarded.
func (t *Transcoder) Run() error {
	if t.state != StateStart {
		return errors.New(errors.PhaseStructure, errors.KindUsage).
			Detail("transcoder already ran (state %s)", t.state).
			Build()
	}

	err := t.run()
	if flushErr := t.w.Flush(); err == nil && flushErr != nil {
		err = errors.WriteFailed(nil, flushErr)
	}
	if err != nil {
		t.log.Debug("conversion failed",
			zap.Stringer("state", t.state),
			zap.Int64("offset", t.r.Position()),
			zap.Error(err))
		t.state = StateFailed
		return err
	}

	t.state = StateDone
	s := t.Stats()
	t.log.Info("conversion complete",
		zap.Int("functions", s.Functions),
		zap.Int("instructions", s.Instructions),
		zap.Int("escaped", s.Escaped),
		zap.Int("constants", s.Constants),
		zap.Int("promoted_integers", s.PromotedIntegers),
		zap.Int64("bytes_read", s.BytesRead),
		zap.Int64("bytes_written", s.BytesWritten))
	return nil
}

func (t *Transcoder) run() error {
	if err := t.readHeader(); err != nil {
		return err
	}
	t.state = StateHeaderValidated
	t.writeHeader()

	if err := t.function([]string{rootName}); err != nil {
		return err
	}
	t.state = StateRootTranscoded

	pos := t.r.Position()
	eof, err := t.r.AtEOF()
	if err != nil {
		return errors.New(errors.PhaseStructure, errors.KindTrailingData).
			Offset(pos).
			Cause(err).
			Build()
	}
	if !eof {
		return errors.TrailingData(pos)
	}
	return nil
}
