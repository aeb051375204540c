// Package appyaml loads the application descriptor (app.yaml) and exposes
// uniform coercion helpers over the parsed YAML tree. The descriptor is
// loosely typed: any field may be absent, a scalar, or the wrong shape, so
// every access goes through a helper that returns a typed default instead of
// panicking on unexpected input.
package appyaml
