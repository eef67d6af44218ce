package command

import (
	"context"
	"errors"
	"testing"

	"github.com/colin-cli/colin/internal/clierr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	args    []string
	opts    Options
	calls   []string
	initErr error
	execErr error
}

func (r *recorder) Init(args []string, opts Options) error {
	r.calls = append(r.calls, "init")
	r.args, r.opts = args, opts
	return r.initErr
}

func (r *recorder) Exec(context.Context) error {
	r.calls = append(r.calls, "exec")
	return r.execErr
}

func node(v string) VersionProbe {
	return func(context.Context) (string, error) { return v, nil }
}

func TestNewRejectsBadArgv(t *testing.T) {
	tests := []struct {
		name string
		impl Implementation
		argv []any
	}{
		{"nil argv", &recorder{}, nil},
		{"empty argv", &recorder{}, []any{}},
		{"no options tail", &recorder{}, []any{"my-app"}},
		{"nil implementation", nil, []any{Options{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("init", tt.impl, tt.argv)
			require.Error(t, err)
			assert.True(t, clierr.Is(err, clierr.Config))
		})
	}
}

func TestRunLifecycle(t *testing.T) {
	rec := &recorder{}
	c, err := New("init", rec, []any{"my-app", Options{"force": true}}, WithVersionProbe(node("v18.17.0")))
	require.NoError(t, err)
	assert.Equal(t, Created, c.State())

	require.NoError(t, c.Run(context.Background()))
	assert.Equal(t, Executed, c.State())
	assert.Equal(t, []string{"init", "exec"}, rec.calls)
	assert.Equal(t, []string{"my-app"}, rec.args)
	assert.True(t, rec.opts.Bool("force"))
	assert.NoError(t, c.Err())
}

func TestRunOnlyOptions(t *testing.T) {
	rec := &recorder{}
	c, err := New("init", rec, []any{Options{}}, WithVersionProbe(node("v12.0.0")))
	require.NoError(t, err)

	require.NoError(t, c.Run(context.Background()))
	assert.Empty(t, rec.args)
	assert.Equal(t, Executed, c.State())
}

func TestRunNodeTooOld(t *testing.T) {
	rec := &recorder{}
	c, err := New("init", rec, []any{Options{}}, WithVersionProbe(node("v10.24.1")))
	require.NoError(t, err)

	require.NoError(t, c.Run(context.Background()), "failures are swallowed by default")
	assert.Equal(t, Failed, c.State())
	assert.True(t, clierr.Is(c.Err(), clierr.Version))
	assert.Empty(t, rec.calls, "no hook runs after a failed version gate")
}

func TestRunMinNodeVersionOption(t *testing.T) {
	c, err := New("init", &recorder{}, []any{Options{}},
		WithVersionProbe(node("v16.0.0")), WithMinNodeVersion("18.0.0"), WithStrictExit(true))
	require.NoError(t, err)

	err = c.Run(context.Background())
	assert.True(t, clierr.Is(err, clierr.Version))
}

func TestRunNodeMissing(t *testing.T) {
	probe := func(context.Context) (string, error) { return "", errors.New("exec: node not found") }
	c, err := New("init", &recorder{}, []any{Options{}}, WithVersionProbe(probe), WithStrictExit(true))
	require.NoError(t, err)

	err = c.Run(context.Background())
	assert.True(t, clierr.Is(err, clierr.Version))
}

func TestRunHookFailures(t *testing.T) {
	boom := clierr.New(clierr.Install, "download failed")

	tests := []struct {
		name      string
		rec       *recorder
		wantCalls []string
	}{
		{"init fails", &recorder{initErr: boom}, []string{"init"}},
		{"exec fails", &recorder{execErr: boom}, []string{"init", "exec"}},
	}
	for _, tt := range tests {
		t.Run(tt.name+" swallowed", func(t *testing.T) {
			rec := &recorder{initErr: tt.rec.initErr, execErr: tt.rec.execErr}
			c, err := New("init", rec, []any{Options{}}, WithVersionProbe(node("v20.0.0")))
			require.NoError(t, err)

			assert.NoError(t, c.Run(context.Background()))
			assert.Equal(t, Failed, c.State())
			assert.ErrorIs(t, c.Err(), boom)
			assert.Equal(t, tt.wantCalls, rec.calls)
		})
		t.Run(tt.name+" strict", func(t *testing.T) {
			rec := &recorder{initErr: tt.rec.initErr, execErr: tt.rec.execErr}
			c, err := New("init", rec, []any{Options{}}, WithVersionProbe(node("v20.0.0")), WithStrictExit(true))
			require.NoError(t, err)

			err = c.Run(context.Background())
			assert.ErrorIs(t, err, boom)
			assert.Equal(t, Failed, c.State())
		})
	}
}

func TestRunRejectsNonStringArgs(t *testing.T) {
	rec := &recorder{}
	c, err := New("init", rec, []any{42, Options{}}, WithVersionProbe(node("v20.0.0")), WithStrictExit(true))
	require.NoError(t, err)

	err = c.Run(context.Background())
	assert.True(t, clierr.Is(err, clierr.Config))
	assert.Empty(t, rec.calls)
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c, err := New("init", &recorder{}, []any{Options{}}, WithVersionProbe(node("v20.0.0")), WithStrictExit(true))
	require.NoError(t, err)
	assert.ErrorIs(t, c.Run(ctx), context.Canceled)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register("init", func() Implementation { return &recorder{} })
	r.Register("add", func() Implementation { return &recorder{} })

	assert.Equal(t, []string{"add", "init"}, r.Names())

	c, err := r.Build("init", []any{Options{}})
	require.NoError(t, err)
	assert.Equal(t, Created, c.State())

	_, err = r.Build("publish", []any{Options{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "add, init")

	assert.Panics(t, func() { r.Register("init", func() Implementation { return &recorder{} }) })
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "version-checked", VersionChecked.String())
	assert.Equal(t, "failed", Failed.String())
}
