// Package errors provides structured error types for xqluac.
//
// Errors are categorized by Phase (where the conversion failed) and Kind
// (failure category). The Error type carries the prototype path, the
// absolute input offset, the instruction index and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindInvalidOpcode).
//		Path("main", "1").
//		Index(12).
//		Offset(0x8c).
//		Detail("could not decode instruction 0x%08x", insn).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidTag(path, offset, tag, cause)
//	err := errors.TrailingData(consumed)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
