//go:build windows

package process

import (
	"context"
	"os/exec"
	"strings"
	"syscall"
)

// shellCommand passes the command line to cmd.exe verbatim.
// Go's argument escaping would mangle the quotes cmd expects around paths.
func shellCommand(ctx context.Context, shell []string, cmdline string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, shell[0])
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CmdLine: strings.Join(shell, " ") + " " + cmdline,
	}
	return cmd
}
