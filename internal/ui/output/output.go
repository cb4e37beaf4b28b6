// Package output prints user-facing status lines for the CLI.
package output

import (
	"io"
	"os"

	"github.com/gookit/color"
)

// color helpers
var (
	colArrow   = color.HEX("#FFEB3B")
	colSuccess = color.Success
	colError   = color.Error
)

// Writer is the destination for status lines. Swappable in tests.
var Writer io.Writer = os.Stdout

// Successf prints an arrow-prefixed success line.
func Successf(format string, args ...any) {
	_, _ = Writer.Write([]byte(colArrow.Sprint("-> ") + colSuccess.Sprintf(format, args...) + "\n"))
}

// Errorf prints an arrow-prefixed failure line.
func Errorf(format string, args ...any) {
	_, _ = Writer.Write([]byte(colArrow.Sprint("-> ") + colError.Sprintf(format, args...) + "\n"))
}
