package clierr

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"plain", New(Config, "bad argv"), "bad argv"},
		{"formatted", Newf(Version, "need %s", "v12"), "need v12"},
		{"wrapped", Wrap(errors.New("dial tcp"), Registry, "listing templates"), "listing templates: dial tcp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, Install, "x"); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
	if err := Wrapf(nil, Install, "x %d", 1); err != nil {
		t.Errorf("Wrapf(nil) = %v, want nil", err)
	}
}

func TestIsMatchesCodeThroughChain(t *testing.T) {
	inner := Wrap(errors.New("eof"), Install, "downloading tarball")
	outer := fmt.Errorf("download phase: %w", inner)

	if !Is(outer, Install) {
		t.Error("Is(outer, Install) = false, want true")
	}
	if Is(outer, Render) {
		t.Error("Is(outer, Render) = true, want false")
	}
	if !errors.Is(outer, New(Install, "")) {
		t.Error("errors.Is should match on code")
	}
}

func TestCodeOfUnknown(t *testing.T) {
	if got := CodeOf(errors.New("plain")); got != Unknown {
		t.Errorf("CodeOf(plain) = %s, want %s", got, Unknown)
	}
}
