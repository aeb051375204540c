// Package application wires the configuration resolver, its default
// collaborators, and the Dockerfile renderer together, keeping the main
// package focused on CLI parsing.
package application
