//go:build windows

package history

// checkDiskSpace on Windows is a no-op; writes proceed without a free
// space check.
func (l *Logger) checkDiskSpace() error {
	return nil
}
