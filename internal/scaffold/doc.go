// Package scaffold materializes a cached template into the working directory.
//
// CopyTree copies the template files and reports what it wrote; RenderFiles
// then rewrites exactly those files in place as text/templates against the
// project's render context. Files under dot-paths are copied verbatim. Rendering
// is destructive and has no rollback: a failure partway through leaves some
// files rendered and others not.
package scaffold
