package bytecode

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unsafe"
)

// Header and constant errors.
var (
	ErrInvalidMagic    = errors.New("invalid dialect signature")
	ErrVersionMismatch = errors.New("unsupported dialect version")
	ErrFormatMismatch  = errors.New("unsupported dialect format")
	ErrEndianMismatch  = errors.New("unsupported dialect endianness")
	ErrSizeMismatch    = errors.New("unsupported dialect type size")
	ErrUnknownTag      = errors.New("unknown constant tag")
	ErrShortHeader     = errors.New("short header")
)

// DialectHeader is the fixed-size record that opens a dialect chunk.
type DialectHeader struct {
	Magic       [8]byte
	Version     byte
	Format      byte
	Endian      byte
	IntSize     byte
	UintSize    byte
	InsnSize    byte
	NumberSize  byte
	IntegerSize byte
}

// ParseDialectHeader decodes a dialect header from the first
// DialectHeaderSize bytes of b. It does not validate field values.
func ParseDialectHeader(b []byte) (DialectHeader, error) {
	var h DialectHeader
	if len(b) < DialectHeaderSize {
		return h, ErrShortHeader
	}
	copy(h.Magic[:], b[:8])
	h.Version = b[8]
	h.Format = b[9]
	h.Endian = b[10]
	h.IntSize = b[11]
	h.UintSize = b[12]
	h.InsnSize = b[13]
	h.NumberSize = b[14]
	h.IntegerSize = b[15]
	return h, nil
}

// Validate checks every field against the single supported dialect, in
// header order, and reports the first mismatch.
func (h DialectHeader) Validate() error {
	if string(h.Magic[:]) != DialectSignature {
		return ErrInvalidMagic
	}
	if h.Version != DialectVersion {
		return fmt.Errorf("%w: 0x%02x", ErrVersionMismatch, h.Version)
	}
	if h.Format != DialectFormat {
		return fmt.Errorf("%w: %d", ErrFormatMismatch, h.Format)
	}
	if h.Endian != DialectEndian {
		return fmt.Errorf("%w: %d", ErrEndianMismatch, h.Endian)
	}
	sizes := []struct {
		name      string
		got, want byte
	}{
		{"int", h.IntSize, DialectIntSize},
		{"unsigned int", h.UintSize, DialectUintSize},
		{"instruction", h.InsnSize, DialectInsnSize},
		{"number", h.NumberSize, DialectNumberSize},
		{"integer", h.IntegerSize, DialectIntegerSize},
	}
	for _, s := range sizes {
		if s.got != s.want {
			return fmt.Errorf("%w: sizeof(%s) is %d, want %d", ErrSizeMismatch, s.name, s.got, s.want)
		}
	}
	return nil
}

// ReferenceHeader is the fixed-size record that opens a Lua 5.1 chunk.
type ReferenceHeader struct {
	Magic      [4]byte
	Version    byte
	Format     byte
	Endian     byte // 1 little endian, 0 big endian
	IntSize    byte
	SizeTSize  byte
	InsnSize   byte
	NumberSize byte
	Integral   byte
}

// NativeReferenceHeader returns the header a stock interpreter built for
// the running platform expects.
func NativeReferenceHeader() ReferenceHeader {
	h := ReferenceHeader{
		Version:    ReferenceVersion,
		Format:     ReferenceFormat,
		Endian:     nativeEndianFlag(),
		IntSize:    ReferenceIntSize,
		SizeTSize:  byte(unsafe.Sizeof(uintptr(0))),
		InsnSize:   ReferenceInsnSize,
		NumberSize: ReferenceNumberSize,
		Integral:   ReferenceIntegral,
	}
	copy(h.Magic[:], ReferenceSignature)
	return h
}

func nativeEndianFlag() byte {
	var b [2]byte
	binary.NativeEndian.PutUint16(b[:], 1)
	return b[0]
}

// ByteOrder returns the byte order the header declares for multi-byte
// fields in the chunk body.
func (h ReferenceHeader) ByteOrder() binary.ByteOrder {
	if h.Endian == 1 {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// Bytes encodes the header.
func (h ReferenceHeader) Bytes() []byte {
	b := make([]byte, 0, ReferenceHeaderSize)
	b = append(b, h.Magic[:]...)
	return append(b,
		h.Version,
		h.Format,
		h.Endian,
		h.IntSize,
		h.SizeTSize,
		h.InsnSize,
		h.NumberSize,
		h.Integral,
	)
}
