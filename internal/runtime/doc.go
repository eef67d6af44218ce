// Package runtime talks to the host Node.js installation: it probes the node
// version for the lifecycle gate and runs the generator code that custom
// templates ship.
//
// Generator code is untrusted. It runs as a separate node process with the
// user's full privileges and is not sandboxed in any way.
package runtime
