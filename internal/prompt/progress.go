package prompt

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

// Progress reports a long-running step to the user.
type Progress interface {
	Run(message string, fn func() error) error
}

// NewProgress returns a spinner on interactive terminals and plain status
// lines otherwise.
func NewProgress(interactive bool, w io.Writer) Progress {
	if interactive {
		return Spinner{}
	}
	return Plain{W: w}
}

// Spinner shows a pterm spinner while fn runs.
type Spinner struct{}

// Run runs fn under a spinner labelled message.
func (Spinner) Run(message string, fn func() error) error {
	sp, err := pterm.DefaultSpinner.Start(message)
	if err != nil {
		return fn()
	}
	if err := fn(); err != nil {
		sp.Fail(message)
		return err
	}
	sp.Success(message)
	return nil
}

// Plain prints one line before and after fn.
type Plain struct {
	W io.Writer
}

// Run runs fn between two status lines.
func (p Plain) Run(message string, fn func() error) error {
	if p.W == nil {
		return fn()
	}
	fmt.Fprintln(p.W, message)
	if err := fn(); err != nil {
		fmt.Fprintf(p.W, "%s failed\n", message)
		return err
	}
	fmt.Fprintf(p.W, "%s done\n", message)
	return nil
}
