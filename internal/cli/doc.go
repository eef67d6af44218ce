// Package cli defines the Cobra command tree for the colin CLI. Each file
// registers one top-level command with the root command. Commands only parse
// flags and format output; lifecycle-driven commands such as init are built
// through a command.Registry and run by internal/command.
package cli
