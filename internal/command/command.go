package command

import (
	"context"
	"fmt"

	"github.com/colin-cli/colin/internal/clierr"
	"github.com/colin-cli/colin/internal/config"
	"github.com/colin-cli/colin/internal/logging"
	"github.com/colin-cli/colin/internal/npm"
	"github.com/colin-cli/colin/internal/runtime"
)

// Options is the trailing bag of flag values in a command's argv.
type Options map[string]any

// Bool returns the boolean option key, false when unset.
func (o Options) Bool(key string) bool {
	b, _ := o[key].(bool)
	return b
}

// String returns the string option key, "" when unset.
func (o Options) String(key string) string {
	s, _ := o[key].(string)
	return s
}

// Implementation is what a concrete command supplies to the lifecycle.
type Implementation interface {
	// Init receives the positional arguments and options.
	Init(args []string, opts Options) error
	// Exec runs the command's work.
	Exec(ctx context.Context) error
}

// State is a lifecycle stage.
type State int

const (
	Created State = iota
	VersionChecked
	ArgsInitialized
	Initialized
	Executed
	Failed
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case VersionChecked:
		return "version-checked"
	case ArgsInitialized:
		return "args-initialized"
	case Initialized:
		return "initialized"
	case Executed:
		return "executed"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// VersionProbe reports the host Node.js version.
type VersionProbe func(ctx context.Context) (string, error)

// Command runs an Implementation through the lifecycle.
type Command struct {
	name       string
	impl       Implementation
	argv       []any
	args       []string
	opts       Options
	state      State
	err        error
	strictExit bool
	minNode    string
	probe      VersionProbe
}

// Option configures a Command.
type Option func(*Command)

// WithStrictExit makes Run return the failure instead of swallowing it.
func WithStrictExit(strict bool) Option {
	return func(c *Command) {
		c.strictExit = strict
	}
}

// WithMinNodeVersion sets the lowest accepted Node.js version.
func WithMinNodeVersion(v string) Option {
	return func(c *Command) {
		if v != "" {
			c.minNode = v
		}
	}
}

// WithVersionProbe replaces the Node.js version lookup (useful for testing).
func WithVersionProbe(p VersionProbe) Option {
	return func(c *Command) {
		c.probe = p
	}
}

// New validates argv and returns a Command in the Created state. argv must be
// non-empty and end with an Options bag; the elements before it are the
// positional arguments.
func New(name string, impl Implementation, argv []any, opts ...Option) (*Command, error) {
	if impl == nil {
		return nil, clierr.Newf(clierr.Config, "command %s has no implementation", name)
	}
	if argv == nil {
		return nil, clierr.New(clierr.Config, "command arguments must not be nil")
	}
	if len(argv) == 0 {
		return nil, clierr.New(clierr.Config, "command arguments must not be empty")
	}
	if _, ok := argv[len(argv)-1].(Options); !ok {
		return nil, clierr.Newf(clierr.Config, "last command argument must be options, got %T", argv[len(argv)-1])
	}

	c := &Command{
		name:    name,
		impl:    impl,
		argv:    argv,
		state:   Created,
		minNode: config.DefaultMinNodeVersion,
		probe:   runtime.NodeVersion,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// State returns the current lifecycle stage.
func (c *Command) State() State { return c.state }

// Err returns the failure that stopped the lifecycle, if any.
func (c *Command) Err() error { return c.err }

// Args returns the positional arguments once ArgsInitialized.
func (c *Command) Args() []string { return c.args }

// Options returns the options bag once ArgsInitialized.
func (c *Command) Options() Options { return c.opts }

// Run drives the lifecycle to Executed or Failed. Failures are logged; the
// error is returned only under WithStrictExit.
func (c *Command) Run(ctx context.Context) error {
	logger := logging.GetLogger("command")
	done := logging.LogOperationStart(logger, c.name)
	defer done()

	stages := []struct {
		next State
		fn   func(context.Context) error
	}{
		{VersionChecked, c.checkNodeVersion},
		{ArgsInitialized, c.initArgs},
		{Initialized, func(context.Context) error { return c.impl.Init(c.args, c.opts) }},
		{Executed, c.impl.Exec},
	}

	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return c.fail(err)
		}
		if err := s.fn(ctx); err != nil {
			return c.fail(err)
		}
		c.state = s.next
		logger.Debug().Str("command", c.name).Stringer("state", c.state).Msg("lifecycle advanced")
	}
	return nil
}

func (c *Command) fail(err error) error {
	c.state = Failed
	c.err = err

	logger := logging.GetLogger("command")
	logger.Error().Str("command", c.name).Str("code", string(clierr.CodeOf(err))).Msg(err.Error())

	if c.strictExit {
		return err
	}
	return nil
}

func (c *Command) checkNodeVersion(ctx context.Context) error {
	current, err := c.probe(ctx)
	if err != nil {
		if clierr.CodeOf(err) == clierr.Version {
			return err
		}
		return clierr.Wrap(err, clierr.Version, "checking Node.js version")
	}

	ok, err := npm.AtLeast(current, c.minNode)
	if err != nil {
		return clierr.Wrapf(err, clierr.Version, "comparing Node.js version %s", current)
	}
	if !ok {
		return clierr.Newf(clierr.Version, "Node.js v%s or newer is required, found %s", c.minNode, current)
	}
	return nil
}

func (c *Command) initArgs(context.Context) error {
	c.opts = c.argv[len(c.argv)-1].(Options)
	c.args = make([]string, 0, len(c.argv)-1)
	for i, a := range c.argv[:len(c.argv)-1] {
		switch v := a.(type) {
		case string:
			c.args = append(c.args, v)
		case nil:
			c.args = append(c.args, "")
		default:
			return clierr.Newf(clierr.Config, "argument %d must be a string, got %T", i, a)
		}
	}
	return nil
}
