// Package platform hides the filesystem differences between Unix and Windows
// that the package cache runs into: directory links from the dependency tree
// into cache entries, and Unix permission bits carried in package tarballs.
package platform
