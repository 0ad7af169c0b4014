package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in a conversion the error occurred
type Phase string

const (
	PhaseUsage     Phase = "usage"     // command line
	PhaseHeader    Phase = "header"    // container header validation
	PhaseDecode    Phase = "decode"    // dialect input
	PhaseEncode    Phase = "encode"    // reference output
	PhaseStructure Phase = "structure" // whole-unit checks after the root prototype
	PhaseIO        Phase = "io"        // opening, closing and flushing files
)

// Kind categorizes the error
type Kind string

const (
	KindUsage          Kind = "usage"
	KindHeaderMismatch Kind = "header_mismatch"
	KindTruncated      Kind = "truncated"
	KindInvalidOpcode  Kind = "invalid_opcode"
	KindInvalidEscape  Kind = "invalid_escape"
	KindInvalidTag     Kind = "invalid_tag"
	KindInvalidCount   Kind = "invalid_count"
	KindTrailingData   Kind = "trailing_data"
	KindWriteFailed    Kind = "write_failed"
	KindOpenFailed     Kind = "open_failed"
)

// NoOffset marks an error that is not tied to an input position.
const NoOffset int64 = -1

// Error is the structured error type used throughout xqluac
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
	Offset int64
	Index  int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" in ")
		b.WriteString(strings.Join(e.Path, "/"))
	}

	if e.Index >= 0 {
		fmt.Fprintf(&b, " at instruction %d", e.Index)
	}

	if e.Offset >= 0 {
		fmt.Fprintf(&b, " (offset 0x%x)", e.Offset)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:  phase,
			Kind:   kind,
			Offset: NoOffset,
			Index:  -1,
		},
	}
}

// Path sets the prototype path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Offset sets the absolute input offset
func (b *Builder) Offset(off int64) *Builder {
	b.err.Offset = off
	return b
}

// Index sets the instruction index
func (b *Builder) Index(i int) *Builder {
	b.err.Index = i
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for the conversion failure taxonomy

// Usage creates a command line usage error
func Usage(detail string) *Error {
	return New(PhaseUsage, KindUsage).Detail(detail).Build()
}

// HeaderMismatch creates a header validation error
func HeaderMismatch(offset int64, cause error) *Error {
	return New(PhaseHeader, KindHeaderMismatch).
		Offset(offset).
		Cause(cause).
		Build()
}

// Truncated creates a stream exhaustion error
func Truncated(phase Phase, path []string, offset int64, what string, cause error) *Error {
	return New(phase, KindTruncated).
		Path(path...).
		Offset(offset).
		Detail("short read of %s", what).
		Cause(cause).
		Build()
}

// InvalidOpcode creates an opcode decode error
func InvalidOpcode(path []string, index int, offset int64, insn uint32, cause error) *Error {
	return New(PhaseDecode, KindInvalidOpcode).
		Path(path...).
		Index(index).
		Offset(offset).
		Value(insn).
		Detail("could not decode instruction 0x%08x", insn).
		Cause(cause).
		Build()
}

// InvalidEscape creates an escaped opcode decode error
func InvalidEscape(path []string, index int, offset int64, insn uint32, cause error) *Error {
	return New(PhaseDecode, KindInvalidEscape).
		Path(path...).
		Index(index).
		Offset(offset).
		Value(insn).
		Detail("could not decode escaped instruction 0x%08x", insn).
		Cause(cause).
		Build()
}

// InvalidTag creates an unknown constant tag error
func InvalidTag(path []string, offset int64, tag byte, cause error) *Error {
	return New(PhaseDecode, KindInvalidTag).
		Path(path...).
		Offset(offset).
		Value(tag).
		Detail("could not decode constant with tag %d", tag).
		Cause(cause).
		Build()
}

// InvalidCount creates an error for a negative length or count prefix
func InvalidCount(path []string, offset int64, what string, n int32) *Error {
	return New(PhaseDecode, KindInvalidCount).
		Path(path...).
		Offset(offset).
		Value(n).
		Detail("negative %s %d", what, n).
		Build()
}

// TrailingData creates a structural leftover error
func TrailingData(consumed int64) *Error {
	return New(PhaseStructure, KindTrailingData).
		Offset(consumed).
		Value(consumed).
		Detail("could not fully read, consumed 0x%x bytes", consumed).
		Build()
}

// WriteFailed creates an output error
func WriteFailed(path []string, cause error) *Error {
	return New(PhaseEncode, KindWriteFailed).
		Path(path...).
		Cause(cause).
		Build()
}

// OpenFailed creates a file handling error
func OpenFailed(detail string, cause error) *Error {
	return New(PhaseIO, KindOpenFailed).
		Detail(detail).
		Cause(cause).
		Build()
}
