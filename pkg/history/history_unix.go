//go:build !windows

package history

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// checkDiskSpace verifies there is room for another log write. A
// failing statfs is reported as a warning, not an error, so a check is
// never blocked by an unreadable filesystem.
func (l *Logger) checkDiskSpace() error {
	var stat unix.Statfs_t
	if err := unix.Statfs(l.path, &stat); err != nil {
		if err := unix.Statfs(filepath.Dir(l.path), &stat); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to check disk space for history: %v\n", err)
			return nil
		}
	}

	available := stat.Bavail * uint64(stat.Bsize)
	if available < MinDiskSpace {
		return fmt.Errorf("history: insufficient disk space: only %d bytes available, need at least %d",
			available, MinDiskSpace)
	}
	return nil
}
