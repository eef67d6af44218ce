// Package registry fetches the list of scaffold templates from the template
// service. Each entry is a Descriptor naming the npm package that carries the
// template and how to install it. When the service is unreachable a built-in
// list can stand in for it.
package registry
