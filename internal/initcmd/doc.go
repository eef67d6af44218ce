// Package initcmd implements `colin init`: it asks what to create, fetches the
// chosen template into the local cache, and materializes it in the working
// directory.
//
// Exec runs three phases in order, each only when the previous one produced a
// result:
//
//  1. prepare: list templates, make sure the working directory may be used,
//     and collect the ProjectInfo.
//  2. downloadTemplate: install or update the template package in the cache.
//  3. installTemplate: copy and render a standard template, or hand off to a
//     custom template's own generator.
package initcmd
