// Package appcore holds the boundary glue shared by all executables:
// loading and storing event trees through the NHX codec with '-' path
// handling.
package appcore

import (
	"fmt"
	"strings"

	"synrec-core/event"

	"synrec/internal/iosink"
	"synrec/internal/nhx"
	"synrec/internal/treecodec"
)

// LoadTree reads, parses and decodes one NHX tree from path. Errors
// carry the input identifier.
func LoadTree(path string) (*event.Tree, error) {
	text, err := iosink.ReadAll(path)
	if err != nil {
		return nil, err
	}
	parsed, err := nhx.Parse(strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", inputName(path), err)
	}
	t, err := treecodec.Decode(parsed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", inputName(path), err)
	}
	return t, nil
}

// StoreTree encodes and writes one tree to path, newline-terminated.
func StoreTree(path string, t *event.Tree) error {
	return StoreText(path, nhx.Format(treecodec.Encode(t))+"\n")
}

// StoreText writes raw text to path. A consumer closing the stream
// early is not an error.
func StoreText(path, text string) error {
	w, err := iosink.Output(path)
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte(text)); err != nil {
		_ = w.Close()
		if iosink.IsBrokenPipe(err) {
			return nil
		}
		return err
	}
	return w.Close()
}

func inputName(path string) string {
	if path == iosink.Stdio {
		return "<stdin>"
	}
	return path
}
