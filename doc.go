// Package xqluac converts Lua 5.1 chunks compiled for an obfuscated
// dialect ("Fate/Z") into the stock Lua 5.1 chunk format, so the result
// can be loaded by a reference interpreter or fed to a decompiler.
//
// The dialect differs from stock Lua 5.1 in its header signature, the
// order of the fixed fields of each function prototype, a permuted opcode
// numbering with one escape opcode, renumbered constant tags with an extra
// integer constant type, and an XOR cipher on every string payload.
//
// # Architecture Overview
//
//	xqluac/              Root package with the one-call Convert helper
//	├── bytecode/        Format model: headers, opcode tables, tags, cipher
//	├── internal/binary/ Position-tracked reader and buffered writer
//	├── transcoder/      Streaming conversion and the run state machine
//	├── errors/          Structured error types for diagnostics
//	└── cmd/xqluac/      Command line tool
//
// # Quick Start
//
// Convert a file:
//
//	stats, err := transcoder.ConvertFile("in.luac", "out.luac")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(stats.Functions, "functions converted")
//
// Or convert between streams:
//
//	stats, err := xqluac.Convert(r, w, transcoder.WithLogger(logger))
//
// # Output Format
//
// The output header describes the platform the converter runs on: its
// byte order and its size_t width. Every other header field is fixed.
//
// # Failure
//
// Conversion stops at the first error. Whatever was written before it
// stays in the output, which is then incomplete and must be discarded.
//
// # Thread Safety
//
// A Transcoder is single-use and must not be shared between goroutines.
// Separate conversions may run concurrently.
package xqluac
