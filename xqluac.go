package xqluac

import (
	"io"

	"github.com/tewilove/xqluac/transcoder"
)

// Convert reads one dialect chunk from r and writes the reference chunk to
// w. It is shorthand for creating a Transcoder and running it once.
func Convert(r io.Reader, w io.Writer, opts ...transcoder.Option) (transcoder.Stats, error) {
	t := transcoder.New(r, w, opts...)
	err := t.Run()
	return t.Stats(), err
}
