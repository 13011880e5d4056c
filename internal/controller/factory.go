package controller

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Output formats accepted by NewUI.
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatTUI   = "tui"
)

// NewUI returns the Bubble Tea UI when format asks for it and the output is
// a terminal, and the plain text UI otherwise.
func NewUI(cmd *cobra.Command, useTTY bool, format string) UI {
	if useTTY && format == FormatTUI {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd, WithTable(format == FormatTable))
}

// IsTTY checks if the given writer is a terminal (TTY).
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	fileInfo, err := file.Stat()
	if err != nil {
		return false
	}

	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
