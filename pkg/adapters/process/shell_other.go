//go:build !windows

package process

import (
	"context"
	"os/exec"
)

func shellCommand(ctx context.Context, shell []string, cmdline string) *exec.Cmd {
	args := append(shell[1:len(shell):len(shell)], cmdline)
	return exec.CommandContext(ctx, shell[0], args...)
}
