//go:build windows

package probe

import (
	"golang.org/x/sys/windows/registry"

	ccerrors "github.com/Aman-CERP/compcheck/internal/errors"
)

type winRegistry struct{}

// NewRegistry returns a reader over HKEY_LOCAL_MACHINE.
func NewRegistry() Registry {
	return winRegistry{}
}

func (winRegistry) ReadDWORD(path, name string) (uint64, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, path, registry.QUERY_VALUE)
	if err != nil {
		return 0, registryError(path, name, err)
	}
	defer func() { _ = k.Close() }()

	v, _, err := k.GetIntegerValue(name)
	if err != nil {
		return 0, registryError(path, name, err)
	}
	return v, nil
}

func (winRegistry) ReadString(path, name string) (string, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, path, registry.QUERY_VALUE)
	if err != nil {
		return "", registryError(path, name, err)
	}
	defer func() { _ = k.Close() }()

	v, _, err := k.GetStringValue(name)
	if err != nil {
		return "", registryError(path, name, err)
	}
	return v, nil
}

func registryError(path, name string, err error) error {
	code := ccerrors.ErrCodeProbeFailed
	if err == registry.ErrNotExist {
		code = ccerrors.ErrCodeProbeNoSignal
	}
	return ccerrors.ProbeError(code, "registry", "cannot read HKLM\\"+path+"\\"+name, err).
		WithDetail("key", path).
		WithDetail("value", name)
}
