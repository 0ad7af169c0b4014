package transcoder_test

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/tewilove/xqluac/bytecode"
)

// konst is a constant as a test declares it.
type konst struct {
	tag bytecode.Tag
	b   byte
	n   float64
	s   string
	i   int32
}

func nilK() konst { return konst{tag: bytecode.DialectTagNil} }
func boolK(v byte) konst { return konst{tag: bytecode.DialectTagBoolean, b: v} }
func numK(v float64) konst { return konst{tag: bytecode.DialectTagNumber, n: v} }
func strK(s string) konst { return konst{tag: bytecode.DialectTagString, s: s} }
func intK(v int32) konst { return konst{tag: bytecode.DialectTagInteger, i: v} }
func rawK(tag bytecode.Tag) konst { return konst{tag: tag} }

type local struct {
	name       string
	start, end int32
}

// proto is a function prototype as a test declares it. want, when set,
// is the expected reference code; otherwise code is remapped.
type proto struct {
	source   string
	noSource bool

	line, lastLine                  int32
	params, upvalues, vararg, stack byte

	code   []uint32
	want   []uint32
	consts []konst
	protos []proto

	lineInfo     []int32
	locals       []local
	upvalueNames []string
}

// dialectWriter synthesizes dialect chunks.
type dialectWriter struct {
	bytes.Buffer
}

func (w *dialectWriter) u8(b byte) {
	w.WriteByte(b)
}

func (w *dialectWriter) i32(v int32) {
	w.u32(uint32(v))
}

func (w *dialectWriter) u32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.Write(b[:])
}

func (w *dialectWriter) f64(v float64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	w.Write(b[:])
}

// str writes s with its NUL terminator, enciphered.
func (w *dialectWriter) str(s string) {
	payload := append([]byte(s), 0)
	bytecode.XORString(payload)
	w.i32(int32(len(payload)))
	w.Write(payload)
}

func (w *dialectWriter) header() {
	w.WriteString(bytecode.DialectSignature)
	w.Write([]byte{
		bytecode.DialectVersion,
		bytecode.DialectFormat,
		bytecode.DialectEndian,
		bytecode.DialectIntSize,
		bytecode.DialectUintSize,
		bytecode.DialectInsnSize,
		bytecode.DialectNumberSize,
		bytecode.DialectIntegerSize,
	})
}

// fields writes the fixed prototype fields in dialect order.
func (w *dialectWriter) fields(p proto) {
	w.u8(p.params)
	if p.noSource {
		w.i32(0)
	} else {
		w.str(p.source)
	}
	w.u8(p.upvalues)
	w.i32(p.line)
	w.u8(p.vararg)
	w.i32(p.lastLine)
	w.u8(p.stack)
}

func (w *dialectWriter) proto(p proto) {
	w.fields(p)

	w.i32(int32(len(p.code)))
	for _, insn := range p.code {
		w.u32(insn)
	}

	w.i32(int32(len(p.consts)))
	for _, k := range p.consts {
		w.u8(byte(k.tag))
		switch k.tag {
		case bytecode.DialectTagBoolean:
			w.u8(k.b)
		case bytecode.DialectTagNumber:
			w.f64(k.n)
		case bytecode.DialectTagString:
			w.str(k.s)
		case bytecode.DialectTagInteger:
			w.i32(k.i)
		}
	}

	w.i32(int32(len(p.protos)))
	for _, child := range p.protos {
		w.proto(child)
	}

	w.i32(int32(len(p.lineInfo)))
	for _, l := range p.lineInfo {
		w.i32(l)
	}
	w.i32(int32(len(p.locals)))
	for _, l := range p.locals {
		w.str(l.name)
		w.i32(l.start)
		w.i32(l.end)
	}
	w.i32(int32(len(p.upvalueNames)))
	for _, name := range p.upvalueNames {
		w.str(name)
	}
}

func dialectChunk(p proto) []byte {
	var w dialectWriter
	w.header()
	w.proto(p)
	return w.Bytes()
}

// referenceWriter builds the expected output for the running platform.
type referenceWriter struct {
	bytes.Buffer
	h bytecode.ReferenceHeader
}

func newReferenceWriter() *referenceWriter {
	return &referenceWriter{h: bytecode.NativeReferenceHeader()}
}

func (w *referenceWriter) u8(b byte) {
	w.WriteByte(b)
}

func (w *referenceWriter) i32(v int32) {
	w.u32(uint32(v))
}

func (w *referenceWriter) u32(v uint32) {
	var b [4]byte
	w.h.ByteOrder().PutUint32(b[:], v)
	w.Write(b[:])
}

func (w *referenceWriter) f64(v float64) {
	var b [8]byte
	w.h.ByteOrder().PutUint64(b[:], math.Float64bits(v))
	w.Write(b[:])
}

func (w *referenceWriter) sizeT(n uint64) {
	var b [8]byte
	if w.h.SizeTSize == 4 {
		w.h.ByteOrder().PutUint32(b[:4], uint32(n))
		w.Write(b[:4])
		return
	}
	w.h.ByteOrder().PutUint64(b[:], n)
	w.Write(b[:])
}

func (w *referenceWriter) str(s string) {
	w.sizeT(uint64(len(s)) + 1)
	w.WriteString(s)
	w.u8(0)
}

func (w *referenceWriter) header() {
	w.Write(w.h.Bytes())
}

// fields writes the fixed prototype fields in reference order.
func (w *referenceWriter) fields(p proto) {
	if p.noSource {
		w.sizeT(0)
	} else {
		w.str(p.source)
	}
	w.i32(p.line)
	w.i32(p.lastLine)
	w.u8(p.upvalues)
	w.u8(p.params)
	w.u8(p.vararg)
	w.u8(p.stack)
}

func (w *referenceWriter) proto(p proto) {
	w.fields(p)

	code := p.want
	if code == nil {
		for _, insn := range p.code {
			m, err := bytecode.Remap(insn)
			if err != nil {
				panic(err)
			}
			code = append(code, m.Word)
		}
	}
	w.i32(int32(len(code)))
	for _, insn := range code {
		w.u32(insn)
	}

	w.i32(int32(len(p.consts)))
	for _, k := range p.consts {
		switch k.tag {
		case bytecode.DialectTagNil:
			w.u8(byte(bytecode.TagNil))
		case bytecode.DialectTagBoolean:
			w.u8(byte(bytecode.TagBoolean))
			w.u8(k.b)
		case bytecode.DialectTagNumber:
			w.u8(byte(bytecode.TagNumber))
			w.f64(k.n)
		case bytecode.DialectTagString:
			w.u8(byte(bytecode.TagString))
			w.str(k.s)
		case bytecode.DialectTagInteger:
			w.u8(byte(bytecode.TagNumber))
			w.f64(float64(k.i))
		}
	}

	w.i32(int32(len(p.protos)))
	for _, child := range p.protos {
		w.proto(child)
	}

	w.i32(int32(len(p.lineInfo)))
	for _, l := range p.lineInfo {
		w.i32(l)
	}
	w.i32(int32(len(p.locals)))
	for _, l := range p.locals {
		w.str(l.name)
		w.i32(l.start)
		w.i32(l.end)
	}
	w.i32(int32(len(p.upvalueNames)))
	for _, name := range p.upvalueNames {
		w.str(name)
	}
}

func referenceChunk(p proto) []byte {
	w := newReferenceWriter()
	w.header()
	w.proto(p)
	return w.Bytes()
}
