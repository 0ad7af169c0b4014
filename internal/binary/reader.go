package binary

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/tewilove/xqluac/bytecode"
)

// ErrNegativeLength is returned when a length prefix is negative.
var ErrNegativeLength = errors.New("negative length")

// Reader wraps an io.Reader with position tracking and dialect-specific
// read methods. All multi-byte fields are little endian, as the dialect
// header requires.
type Reader struct {
	r   *bufio.Reader
	pos int64
}

// NewReader creates a new Reader. r is buffered unless it already is.
func NewReader(r io.Reader) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{r: br}
}

// Position returns the number of bytes consumed so far.
func (r *Reader) Position() int64 {
	return r.pos
}

// ReadByte reads a single byte and advances the position.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		return 0, unexpected(err)
	}
	r.pos++
	return b, nil
}

// ReadBytes reads exactly n bytes. The buffer grows with the data actually
// read, so a corrupt length cannot force a large allocation up front.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrNegativeLength
	}
	var buf bytes.Buffer
	copied, err := io.CopyN(&buf, r.r, int64(n))
	r.pos += copied
	if err != nil {
		return nil, unexpected(err)
	}
	return buf.Bytes(), nil
}

// ReadI32LE reads a little-endian int32 (fixed 4 bytes).
func (r *Reader) ReadI32LE() (int32, error) {
	v, err := r.ReadU32LE()
	return int32(v), err
}

// ReadU32LE reads a little-endian uint32 (fixed 4 bytes).
func (r *Reader) ReadU32LE() (uint32, error) {
	var buf [4]byte
	if err := r.readFull(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// ReadF64LE reads an IEEE-754 double, copying its bit pattern verbatim.
func (r *Reader) ReadF64LE() (float64, error) {
	var buf [8]byte
	if err := r.readFull(buf[:]); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(buf[:])), nil
}

// ReadString reads a length-prefixed, enciphered dialect string.
//
// A zero length yields a nil slice: the string is absent. Otherwise the
// payload is deciphered and a single trailing NUL terminator, if present,
// is dropped, so the result is a non-nil slice that may be empty.
func (r *Reader) ReadString() ([]byte, error) {
	n, err := r.ReadI32LE()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, r.wrapError(fmt.Errorf("%w: string length %d", ErrNegativeLength, n))
	}
	if n == 0 {
		return nil, nil
	}
	data, err := r.ReadBytes(int(n))
	if err != nil {
		return nil, err
	}
	bytecode.XORString(data)
	if data[len(data)-1] == 0 {
		data = data[:len(data)-1]
	}
	return data, nil
}

// SkipInterpreterLine consumes a leading "#!" line through its '\n'.
// It reports whether a line was skipped. Only two bytes are looked at
// before deciding.
func (r *Reader) SkipInterpreterLine() (bool, error) {
	prefix, err := r.r.Peek(2)
	if err != nil || prefix[0] != '#' || prefix[1] != '!' {
		return false, nil
	}
	line, err := r.r.ReadSlice('\n')
	for errors.Is(err, bufio.ErrBufferFull) {
		r.pos += int64(len(line))
		line, err = r.r.ReadSlice('\n')
	}
	r.pos += int64(len(line))
	if err != nil {
		return false, unexpected(err)
	}
	return true, nil
}

// AtEOF attempts one more read and reports whether the stream is exhausted.
// No byte is consumed.
func (r *Reader) AtEOF() (bool, error) {
	_, err := r.r.Peek(1)
	if err == io.EOF {
		return true, nil
	}
	return false, err
}

func (r *Reader) readFull(buf []byte) error {
	n, err := io.ReadFull(r.r, buf)
	r.pos += int64(n)
	return unexpected(err)
}

func (r *Reader) wrapError(err error) error {
	return fmt.Errorf("at position %d: %w", r.pos, err)
}

// unexpected converts a bare io.EOF into io.ErrUnexpectedEOF: every read
// here asks for bytes the format says must exist.
func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
