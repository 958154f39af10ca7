//go:build !windows

package preflight

import "os"

func isElevated() bool {
	return os.Geteuid() == 0
}
