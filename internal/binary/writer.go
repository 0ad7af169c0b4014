package binary

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
)

// Writer provides buffered writing utilities for the reference chunk
// format. Integer fields are written in the given byte order and string
// lengths use the given size_t width.
//
// The first write error is sticky: later writes are dropped and Err and
// Flush report it.
type Writer struct {
	w     *bufio.Writer
	order binary.ByteOrder
	sizeT int
	n     int64
	err   error
}

// NewWriter creates a new Writer. sizeT must be 4 or 8.
func NewWriter(w io.Writer, order binary.ByteOrder, sizeT int) *Writer {
	return &Writer{
		w:     bufio.NewWriter(w),
		order: order,
		sizeT: sizeT,
	}
}

// Len returns the number of bytes written.
func (w *Writer) Len() int64 {
	return w.n
}

// Err returns the first write error, if any.
func (w *Writer) Err() error {
	return w.err
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.err = w.w.Flush()
	return w.err
}

// Byte writes a single byte.
func (w *Writer) Byte(b byte) {
	if w.err != nil {
		return
	}
	w.err = w.w.WriteByte(b)
	if w.err == nil {
		w.n++
	}
}

// WriteBytes writes a byte slice.
func (w *Writer) WriteBytes(data []byte) {
	if w.err != nil {
		return
	}
	n, err := w.w.Write(data)
	w.n += int64(n)
	w.err = err
}

// WriteInt writes a C int (fixed 4 bytes).
func (w *Writer) WriteInt(v int32) {
	w.WriteU32(uint32(v))
}

// WriteU32 writes a uint32 (fixed 4 bytes), used for instruction words.
func (w *Writer) WriteU32(v uint32) {
	var buf [4]byte
	w.order.PutUint32(buf[:], v)
	w.WriteBytes(buf[:])
}

// WriteSizeT writes a size_t of the configured width.
func (w *Writer) WriteSizeT(v uint64) {
	var buf [8]byte
	if w.sizeT == 4 {
		w.order.PutUint32(buf[:4], uint32(v))
		w.WriteBytes(buf[:4])
		return
	}
	w.order.PutUint64(buf[:], v)
	w.WriteBytes(buf[:])
}

// WriteF64 writes an IEEE-754 double, copying its bit pattern verbatim.
func (w *Writer) WriteF64(v float64) {
	var buf [8]byte
	w.order.PutUint64(buf[:], math.Float64bits(v))
	w.WriteBytes(buf[:])
}

// WriteString writes a Lua 5.1 string. A nil slice is an absent string
// and is written as a zero length; anything else is written with its
// length plus one, the bytes, and a NUL terminator.
func (w *Writer) WriteString(s []byte) {
	if s == nil {
		w.WriteSizeT(0)
		return
	}
	w.WriteSizeT(uint64(len(s)) + 1)
	w.WriteBytes(s)
	w.Byte(0)
}
