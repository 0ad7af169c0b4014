package transcoder

import "sync"

const (
	// Pool limits to prevent memory bloat
	poolMaxCode  = 1 << 16 // max instruction words kept
	poolInitCode = 64
)

// instruction word buffer pool; one buffer is live per prototype
var codePool = sync.Pool{
	New: func() any {
		buf := make([]uint32, 0, poolInitCode)
		return &buf
	},
}

func getCode() *[]uint32 {
	return codePool.Get().(*[]uint32)
}

func putCode(buf *[]uint32) {
	if buf == nil || cap(*buf) > poolMaxCode {
		return // reject oversized
	}
	*buf = (*buf)[:0]
	codePool.Put(buf)
}
