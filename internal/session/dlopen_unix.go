//go:build darwin || freebsd || linux

package session

import (
	"fmt"

	"github.com/ebitengine/purego"
)

func openLibrary(path string) (uintptr, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return 0, fmt.Errorf("dlopen %s: %w", path, err)
	}
	return handle, nil
}

func closeLibrary(handle uintptr) error {
	return purego.Dlclose(handle)
}
