package bytecode

// StringKey returns the XOR key the dialect applies to a string payload of
// the given declared length.
func StringKey(length int) byte {
	return byte(length*13 + 55)
}

// XORString applies the dialect string cipher to p in place, deriving the
// key from len(p). The cipher is an involution: applying it twice restores
// the input, so the same function enciphers and deciphers.
func XORString(p []byte) {
	key := StringKey(len(p))
	for i := range p {
		p[i] ^= key
	}
}
