package prompt

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Option is one choice offered by Select.
type Option struct {
	Label string
	Value string
}

// Validator rejects an input value with an error explaining why.
type Validator func(string) error

// Prompter asks questions and returns the answers.
type Prompter interface {
	Confirm(message string, def bool) (bool, error)
	Input(message, def string, validate Validator) (string, error)
	Select(message string, options []Option) (string, error)
}

// New returns a terminal prompter when stdin is a TTY and a line prompter on
// in and out otherwise.
func New(in *os.File, out io.Writer) Prompter {
	if IsInteractive(in) {
		return &Terminal{}
	}
	return NewLine(in, out)
}

// IsInteractive reports whether f is a terminal.
func IsInteractive(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
