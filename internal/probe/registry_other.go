//go:build !windows

package probe

import (
	ccerrors "github.com/Aman-CERP/compcheck/internal/errors"
)

type noRegistry struct{}

// NewRegistry returns a reader that always reports the registry as unsupported.
func NewRegistry() Registry {
	return noRegistry{}
}

func (noRegistry) ReadDWORD(path, name string) (uint64, error) {
	return 0, unsupported(path, name)
}

func (noRegistry) ReadString(path, name string) (string, error) {
	return "", unsupported(path, name)
}

func unsupported(path, name string) error {
	return ccerrors.ProbeError(ccerrors.ErrCodeProbeUnsupported, "registry",
		"the registry is only available on Windows", nil).
		WithDetail("key", path).
		WithDetail("value", name)
}
