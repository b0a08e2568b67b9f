package main

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/pflag"
)

// DelimiterFlag manages a flag holding a single-character field delimiter.
type DelimiterFlag string

var _ pflag.Value = (*DelimiterFlag)(nil)

func (f DelimiterFlag) String() string {
	return string(f)
}

// Set implements pflag.Value.
func (f *DelimiterFlag) Set(v string) error {
	if v == `\t` {
		v = "\t"
	}
	if utf8.RuneCountInString(v) != 1 {
		return fmt.Errorf("delimiter must be exactly one character, got %q", v)
	}
	*f = DelimiterFlag(v)
	return nil
}

// Type implements pflag.Value.
func (f DelimiterFlag) Type() string {
	return "char"
}
