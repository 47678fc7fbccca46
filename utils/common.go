package utils

import (
	"fmt"
	"strings"
)

type options struct {
	noColorize bool
	verbose    bool
}

var opts options

// SetNoColorize disables (or re-enables) colorized printing of lattice
// elements and variables.
func SetNoColorize(b bool) {
	opts.noColorize = b
}

// SetVerbose toggles verbose diagnostics.
func SetVerbose(b bool) {
	opts.verbose = b
}

// Verbose reports whether verbose diagnostics are enabled.
func Verbose() bool {
	return opts.verbose
}

// CanColorize wraps a color sprint function such that it degrades to
// plain formatting when colorization is turned off.
func CanColorize(col func(...interface{}) string) func(...interface{}) string {
	if opts.noColorize {
		return func(is ...interface{}) string {
			return fmt.Sprintf(strings.Repeat("%s", len(is)), is...)
		}
	}
	return col
}
