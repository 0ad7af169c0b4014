package bytecode

// Dialect container header constants. Every field of a dialect header must
// match exactly; there is no negotiation.
const (
	// DialectSignature is the 8-byte magic that opens a dialect chunk.
	DialectSignature = "\x1bFate/Z\x1b"

	DialectVersion     byte = 0x51
	DialectFormat      byte = 0
	DialectEndian      byte = 1 // little endian
	DialectIntSize     byte = 4
	DialectUintSize    byte = 4
	DialectInsnSize    byte = 4
	DialectNumberSize  byte = 8
	DialectIntegerSize byte = 4

	// DialectHeaderSize is the encoded size of a dialect header.
	DialectHeaderSize = 16
)

// Reference (Lua 5.1) container header constants.
const (
	// ReferenceSignature is the 4-byte magic that opens a reference chunk.
	ReferenceSignature = "\x1bLua"

	ReferenceVersion    byte = 0x51
	ReferenceFormat     byte = 0
	ReferenceIntSize    byte = 4
	ReferenceInsnSize   byte = 4
	ReferenceNumberSize byte = 8
	ReferenceIntegral   byte = 0 // numbers are floating point

	// ReferenceHeaderSize is the encoded size of a reference header.
	ReferenceHeaderSize = 12
)

// Tag is a constant type tag byte.
type Tag byte

// Dialect constant tags. The dialect reuses 6 for both numbers and nested
// functions; nested functions never appear in the constant list itself, so
// the collision is harmless.
const (
	DialectTagNil      Tag = 3
	DialectTagBoolean  Tag = 4
	DialectTagNumber   Tag = 6
	DialectTagString   Tag = 7
	DialectTagFunction Tag = 6
	DialectTagInteger  Tag = 12
)

// Reference constant tags.
const (
	TagNil     Tag = 0
	TagBoolean Tag = 1
	TagNumber  Tag = 3
	TagString  Tag = 4
)

// TranslateTag maps a dialect constant tag to the reference tag that
// replaces it. Integers become numbers.
func TranslateTag(t Tag) (Tag, error) {
	switch t {
	case DialectTagNil:
		return TagNil, nil
	case DialectTagBoolean:
		return TagBoolean, nil
	case DialectTagNumber:
		return TagNumber, nil
	case DialectTagString:
		return TagString, nil
	case DialectTagInteger:
		return TagNumber, nil
	default:
		return 0, ErrUnknownTag
	}
}
