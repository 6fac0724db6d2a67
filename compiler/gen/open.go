package gen

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// OpenDir opens a directory in the file manager of the platform.
func OpenDir(ctx context.Context, dir string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.CommandContext(ctx, "explorer", dir)
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", dir)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", dir)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", dir, err)
	}
	// The file manager outlives the run, only reap the process.
	go func() { _ = cmd.Wait() }()
	return nil
}
