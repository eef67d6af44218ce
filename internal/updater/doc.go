// Package updater prints a notice when a newer release of the CLI has been
// published to the npm registry. It never installs anything itself; the
// notice tells the user which npm command to run. Results are cached in
// version-check.json for a day so most runs make no network call.
package updater
