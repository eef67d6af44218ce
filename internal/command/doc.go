// Package command drives a CLI command through its lifecycle:
//
//	Created -> VersionChecked -> ArgsInitialized -> Initialized -> Executed
//
// Each stage runs only after the previous one succeeded. A failure at any stage
// moves the command to Failed, is logged, and by default is swallowed so the
// process still exits zero. WithStrictExit returns the failure instead.
package command
