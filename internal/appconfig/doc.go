// Package appconfig resolves the build and runtime configuration of a Ruby
// web application from its descriptor plus ambient environment and workspace
// signals. Resolution is a single synchronous pass over a fixed sequence of
// steps; the result is an immutable Config consumed by the Dockerfile
// renderer.
package appconfig
