package transcoder

import (
	"fmt"
	"os"

	"go.uber.org/multierr"

	"github.com/tewilove/xqluac/errors"
)

// ConvertFile converts the dialect chunk at inPath and writes the
// reference chunk to outPath, creating or truncating it. Both files are
// closed on every path. On failure the output file is left in place with
// whatever was written before the error and must be discarded.
func ConvertFile(inPath, outPath string, opts ...Option) (Stats, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return Stats{}, errors.OpenFailed(fmt.Sprintf("could not open input %q", inPath), err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return Stats{}, errors.OpenFailed(fmt.Sprintf("could not create output %q", outPath), err)
	}

	t := New(in, out, opts...)
	runErr := t.Run()
	if closeErr := out.Close(); closeErr != nil {
		closeErr = errors.New(errors.PhaseIO, errors.KindWriteFailed).
			Detail("could not close output %q", outPath).
			Cause(closeErr).
			Build()
		runErr = multierr.Append(runErr, closeErr)
	}
	return t.Stats(), runErr
}
