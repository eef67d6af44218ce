// Package pkgcache keeps versioned template packages on disk.
//
// Each (name, version) pair maps to a fixed directory under the store:
//
//	<store>/_<name with "/" replaced by "_">@<version>@<name>
//
// so checking for a cached template is a single stat. Entries are written by
// an Installer into a staging directory and renamed into place, which means an
// entry is either absent or complete. There is no cross-process lock; two
// concurrent installs of the same entry both succeed and one rename wins.
package pkgcache
