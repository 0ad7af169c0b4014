package xqluac_test

import (
	"bytes"
	"testing"

	"github.com/tewilove/xqluac"
	"github.com/tewilove/xqluac/bytecode"
	"github.com/tewilove/xqluac/errors"
)

func emptyChunk() []byte {
	b := []byte(bytecode.DialectSignature)
	b = append(b, 0x51, 0, 1, 4, 4, 4, 8, 4)
	return append(b, make([]byte, 1+4+1+4+1+4+1+6*4)...)
}

func TestConvert(t *testing.T) {
	input := emptyChunk()
	var out bytes.Buffer
	stats, err := xqluac.Convert(bytes.NewReader(input), &out)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	h := bytecode.NativeReferenceHeader()
	if !bytes.HasPrefix(out.Bytes(), h.Bytes()) {
		t.Fatalf("output does not start with the reference header: % x", out.Bytes())
	}
	// Absent source (size_t 0), two ints, four bytes, six empty lists.
	wantLen := bytecode.ReferenceHeaderSize + int(h.SizeTSize) + 4 + 4 + 4 + 6*4
	if out.Len() != wantLen {
		t.Errorf("output length = %d, want %d", out.Len(), wantLen)
	}
	if stats.Functions != 1 || stats.BytesRead != int64(len(input)) {
		t.Errorf("stats = %+v", stats)
	}
}

func TestConvertRejectsReferenceChunk(t *testing.T) {
	input := append(bytecode.NativeReferenceHeader().Bytes(), make([]byte, 64)...)
	_, err := xqluac.Convert(bytes.NewReader(input), &bytes.Buffer{})

	var e *errors.Error
	if !errors.As(err, &e) || e.Kind != errors.KindHeaderMismatch {
		t.Fatalf("got %v, want header_mismatch", err)
	}
	if !errors.Is(err, bytecode.ErrInvalidMagic) {
		t.Errorf("%v does not wrap ErrInvalidMagic", err)
	}
}
