package appconfig

import (
	"context"
	"os/exec"
)

// CommandRunner runs a command in a working directory and captures its
// standard output. The resolver uses it for lockfile introspection; failures
// are treated as "no result", never as fatal.
type CommandRunner interface {
	Output(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Output(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.Output()
}
