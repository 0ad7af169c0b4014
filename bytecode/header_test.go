package bytecode

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
	"unsafe"
)

func validDialectHeader() []byte {
	return append([]byte(DialectSignature), 0x51, 0, 1, 4, 4, 4, 8, 4)
}

func TestParseDialectHeader(t *testing.T) {
	h, err := ParseDialectHeader(validDialectHeader())
	if err != nil {
		t.Fatalf("ParseDialectHeader: %v", err)
	}
	if err := h.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if h.IntegerSize != 4 || h.NumberSize != 8 {
		t.Errorf("sizes = %d/%d, want 4/8", h.IntegerSize, h.NumberSize)
	}
}

func TestParseDialectHeaderShort(t *testing.T) {
	_, err := ParseDialectHeader(validDialectHeader()[:DialectHeaderSize-1])
	if !errors.Is(err, ErrShortHeader) {
		t.Errorf("got %v, want ErrShortHeader", err)
	}
}

func TestDialectHeaderValidate(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		value  byte
		want   error
	}{
		{"magic", 1, 'L', ErrInvalidMagic},
		{"version", 8, 0x52, ErrVersionMismatch},
		{"format", 9, 1, ErrFormatMismatch},
		{"endian", 10, 0, ErrEndianMismatch},
		{"sizeof int", 11, 8, ErrSizeMismatch},
		{"sizeof uint", 12, 8, ErrSizeMismatch},
		{"sizeof insn", 13, 8, ErrSizeMismatch},
		{"sizeof number", 14, 4, ErrSizeMismatch},
		{"sizeof integer", 15, 8, ErrSizeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validDialectHeader()
			b[tt.offset] = tt.value
			h, err := ParseDialectHeader(b)
			if err != nil {
				t.Fatalf("ParseDialectHeader: %v", err)
			}
			if err := h.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate: got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDialectHeaderValidateOrder(t *testing.T) {
	b := validDialectHeader()
	b[0] = 0
	b[8] = 0
	b[15] = 0
	h, _ := ParseDialectHeader(b)
	if err := h.Validate(); !errors.Is(err, ErrInvalidMagic) {
		t.Errorf("got %v, want the magic check to fail first", err)
	}
}

func TestNativeReferenceHeader(t *testing.T) {
	h := NativeReferenceHeader()
	b := h.Bytes()
	if len(b) != ReferenceHeaderSize {
		t.Fatalf("len = %d, want %d", len(b), ReferenceHeaderSize)
	}
	if !bytes.Equal(b[:4], []byte(ReferenceSignature)) {
		t.Errorf("magic = %q", b[:4])
	}
	want := []byte{0x51, 0, h.Endian, 4, byte(unsafe.Sizeof(uintptr(0))), 4, 8, 0}
	if !bytes.Equal(b[4:], want) {
		t.Errorf("fields = %v, want %v", b[4:], want)
	}

	var probe [2]byte
	h.ByteOrder().PutUint16(probe[:], 0x0102)
	if binary.NativeEndian.Uint16(probe[:]) != 0x0102 {
		t.Errorf("ByteOrder %v does not match the platform", h.ByteOrder())
	}
}

func TestReferenceHeaderByteOrder(t *testing.T) {
	if (ReferenceHeader{Endian: 1}).ByteOrder() != binary.LittleEndian {
		t.Error("endian flag 1 should be little endian")
	}
	if (ReferenceHeader{Endian: 0}).ByteOrder() != binary.BigEndian {
		t.Error("endian flag 0 should be big endian")
	}
}

func TestTranslateTag(t *testing.T) {
	tests := []struct {
		in   Tag
		want Tag
	}{
		{DialectTagNil, TagNil},
		{DialectTagBoolean, TagBoolean},
		{DialectTagNumber, TagNumber},
		{DialectTagString, TagString},
		{DialectTagInteger, TagNumber},
	}
	for _, tt := range tests {
		got, err := TranslateTag(tt.in)
		if err != nil {
			t.Fatalf("TranslateTag(%d): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("TranslateTag(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
	for _, tag := range []Tag{0, 1, 2, 5, 8, 11, 13, 0xff} {
		if _, err := TranslateTag(tag); !errors.Is(err, ErrUnknownTag) {
			t.Errorf("TranslateTag(%d): got %v, want ErrUnknownTag", tag, err)
		}
	}
}
