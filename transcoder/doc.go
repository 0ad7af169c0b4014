// Package transcoder converts obfuscated dialect chunks into stock Lua 5.1
// chunks.
//
// A conversion is a single forward pass over the input. Every field is
// written as soon as it is read, except instruction blocks, which are
// buffered per prototype so a bad instruction leaves no part of its block
// in the output.
//
// # Conversion Flow
//
//	┌──────────────┐   ┌──────────────┐   ┌──────────────┐   ┌─────────┐
//	│ "#!" line?   │ → │ header check │ → │ root proto   │ → │ at EOF? │
//	└──────────────┘   └──────────────┘   └──────────────┘   └─────────┘
//
// Prototypes are transcoded depth first. For each one:
//
//	Step            Dialect                 Reference
//	─────────────────────────────────────────────────────────────
//	fields          params source nups      source line lastline
//	                line vararg lastline    nups params vararg
//	                stack                   stack
//	code            opcode table + escape   Lua 5.1 opcodes
//	constants       tags 3 4 6 7 12         tags 0 1 3 4 3
//	strings         int length, XOR cipher  size_t length, plain
//	protos          recursive               recursive
//	debug           copied                  copied
//
// # Key Types
//
//	Transcoder  - Single-use converter bound to one reader and writer
//	Option      - Functional option (WithLogger, WithTrace)
//	Stats       - Counters collected during a run
//	State       - Conversion state machine position
//
// # Errors
//
// Failures are *errors.Error values carrying the prototype path (for
// example main/2/0), the absolute input offset and, for instruction
// errors, the instruction index.
package transcoder
