// Package clibase holds the CLI plumbing shared by all executables:
// flag-set construction with a common usage header, and the multivalued
// flag types of the evaluation harness.
package clibase

import (
	"flag"
	"fmt"

	"synrec/internal/version"
)

// NewFlagSet returns a ContinueOnError flag set whose usage message
// leads with the synopsis and the release version.
func NewFlagSet(name, synopsis string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), `%s: %s

Version: %s

Usage of %s:
`, name, synopsis, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// StringSlice collects repeatable string flags.
type StringSlice struct{ Values []string }

func (s *StringSlice) String() string { return fmt.Sprint(s.Values) }

func (s *StringSlice) Set(v string) error {
	s.Values = append(s.Values, v)
	return nil
}
