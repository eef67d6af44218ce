// Package runner executes the install and start commands declared by template
// descriptors. Only package-manager executables on a fixed allow-list are ever
// spawned; anything else is rejected before a process is created.
package runner

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	goruntime "runtime"
	"slices"
	"strings"

	"github.com/colin-cli/colin/internal/clierr"
	"github.com/colin-cli/colin/internal/logging"
)

// Allowed lists the executables a template may ask to run.
var Allowed = []string{"npm", "cnpm", "yarn", "pnpm"}

// Spec is a command split into its executable and arguments.
type Spec struct {
	Executable string
	Args       []string
}

// Parse splits command on whitespace. Quoting is not interpreted.
func Parse(command string) (Spec, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return Spec{}, clierr.New(clierr.Command, "empty command")
	}
	return Spec{Executable: fields[0], Args: fields[1:]}, nil
}

// IsAllowed reports whether executable is on the allow-list.
func IsAllowed(executable string) bool {
	return slices.Contains(Allowed, executable)
}

// String joins the spec back into a command line.
func (s Spec) String() string {
	return strings.Join(append([]string{s.Executable}, s.Args...), " ")
}

// Runner spawns allow-listed commands with inherited standard streams.
type Runner struct {
	// Dir is the working directory; empty means the current one.
	Dir string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Runner working in dir and attached to the process's streams.
func New(dir string) *Runner {
	return &Runner{Dir: dir, Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes command and returns its exit code. A rejected or unstartable
// command is an error; a non-zero exit is not.
func (r *Runner) Run(ctx context.Context, command string) (int, error) {
	spec, err := Parse(command)
	if err != nil {
		return -1, err
	}
	if !IsAllowed(spec.Executable) {
		return -1, clierr.Newf(clierr.CommandNotAllowed,
			"command %q is not allowed, expected one of %s", spec.Executable, strings.Join(Allowed, ", "))
	}

	name, args := spec.Executable, spec.Args
	if goruntime.GOOS == "windows" {
		name, args = "cmd", append([]string{"/c", spec.Executable}, spec.Args...)
	}

	logging.LogCommand(name, args)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, clierr.Wrapf(err, clierr.Command, "starting %s", spec.Executable)
	}
	return 0, nil
}

// Exec runs command and turns a non-zero exit into a Command error carrying
// failMsg. An empty command does nothing.
func (r *Runner) Exec(ctx context.Context, command, failMsg string) error {
	if strings.TrimSpace(command) == "" {
		return nil
	}
	code, err := r.Run(ctx, command)
	if err != nil {
		return err
	}
	if code != 0 {
		return clierr.Newf(clierr.Command, "%s (exit code %d)", failMsg, code)
	}
	return nil
}
