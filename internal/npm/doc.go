// Package npm talks to an npm-compatible registry. It fetches package metadata
// (the "packument"), resolves the "latest" dist-tag to a concrete version, and
// finds the newest published version above a baseline for update notices.
package npm
