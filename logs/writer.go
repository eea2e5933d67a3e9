package logs

import (
	"io"
	"os"
)

// Writer receives the terminal log output.
type Writer io.Writer

func (Module) Writer() Writer {
	return os.Stderr
}
