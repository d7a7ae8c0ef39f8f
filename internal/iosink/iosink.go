// Package iosink resolves the '-' path convention shared by all
// executables: '-' maps to standard input or output, anything else to a
// file.
package iosink

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Stdio is the reserved path selecting the standard streams.
const Stdio = "-"

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// Input opens path for reading, mapping '-' to standard input.
func Input(path string) (io.ReadCloser, error) {
	if path == Stdio {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// Output opens path for writing, mapping '-' to standard output.
func Output(path string) (io.WriteCloser, error) {
	if path == Stdio {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// ReadAll reads the whole input at path.
func ReadAll(path string) (string, error) {
	r, err := Input(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = r.Close() }()
	data, err := io.ReadAll(r)
	return string(data), err
}

// InteractiveHint writes msg to w when the process reads its input from
// an interactive terminal, so users know input is expected.
func InteractiveHint(w io.Writer, path, msg string) {
	if path != Stdio {
		return
	}
	if isatty.IsTerminal(os.Stdin.Fd()) {
		_, _ = io.WriteString(w, msg)
	}
}
