// Package manifest reads package manifests (package.json) from template
// packages and validates template descriptor lists against an embedded JSON
// Schema before the rest of the pipeline trusts them.
package manifest
