package runtime

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/colin-cli/colin/internal/branding"
	"github.com/colin-cli/colin/internal/clierr"
	"github.com/colin-cli/colin/internal/logging"
)

// GeneratorOptions is serialized to JSON and handed to a custom template's
// entry point as its only argument.
type GeneratorOptions struct {
	Template   any    `json:"templateInfo"`
	Project    any    `json:"projectInfo"`
	SourcePath string `json:"sourcePath"`
	TargetPath string `json:"targetPath"`
}

// Generator runs the entry point of a custom template.
type Generator interface {
	Run(ctx context.Context, entryPoint string, opts GeneratorOptions) error
}

// NodeRuntime executes JavaScript through the node binary on PATH.
type NodeRuntime struct {
	// Stdin, Stdout and Stderr default to the process's own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NodeVersion returns the output of `node --version`, e.g. "v18.17.0".
func NodeVersion(ctx context.Context) (string, error) {
	nodeBin, err := exec.LookPath("node")
	if err != nil {
		return "", clierr.Wrap(err, clierr.Version, "Node.js is not installed")
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, nodeBin, "--version")
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", clierr.Wrap(err, clierr.Version, "running node --version")
	}
	return strings.TrimSpace(out.String()), nil
}

// Run requires entryPoint and calls its export with opts, from opts.TargetPath.
func (n *NodeRuntime) Run(ctx context.Context, entryPoint string, opts GeneratorOptions) error {
	nodeBin, err := exec.LookPath("node")
	if err != nil {
		return clierr.Wrap(err, clierr.Command, "custom templates require Node.js")
	}
	if _, err := os.Stat(entryPoint); err != nil {
		return clierr.Wrapf(err, clierr.MissingEntryPoint, "template entry point not found at %s", entryPoint)
	}

	script, err := generatorScript(entryPoint, opts)
	if err != nil {
		return clierr.Wrap(err, clierr.Command, "serializing generator options")
	}

	logger := logging.GetLogger("runtime")
	logger.Debug().Str("entry", entryPoint).Str("target", opts.TargetPath).Msg("running template generator")

	cmd := exec.CommandContext(ctx, nodeBin, "-e", script)
	cmd.Dir = opts.TargetPath
	cmd.Env = generatorEnv(os.Environ(), opts)
	cmd.Stdin = os.Stdin
	if n.Stdin != nil {
		cmd.Stdin = n.Stdin
	}
	cmd.Stdout = os.Stdout
	if n.Stdout != nil {
		cmd.Stdout = n.Stdout
	}
	cmd.Stderr = os.Stderr
	if n.Stderr != nil {
		cmd.Stderr = n.Stderr
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return clierr.Newf(clierr.Command, "template generator exited with code %d", exitErr.ExitCode())
		}
		return clierr.Wrap(err, clierr.Command, "starting template generator")
	}
	return nil
}

// generatorScript builds the node -e program. Both the entry point and the
// options are embedded as JSON literals so no value is spliced in raw.
func generatorScript(entryPoint string, opts GeneratorOptions) (string, error) {
	entryJSON, err := json.Marshal(entryPoint)
	if err != nil {
		return "", err
	}
	optsJSON, err := json.Marshal(opts)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("require(%s).call(null, %s)", entryJSON, optsJSON), nil
}

// generatorEnv adds the template locations to env so generators can find them
// without parsing their argument.
func generatorEnv(env []string, opts GeneratorOptions) []string {
	prefix := branding.EnvPrefix() + "_"
	env = setEnv(env, prefix+"TEMPLATE_PATH", opts.SourcePath)
	env = setEnv(env, prefix+"TARGET_PATH", opts.TargetPath)
	return env
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
