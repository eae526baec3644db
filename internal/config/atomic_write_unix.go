//go:build !windows

package config

import (
	"fmt"
	"os"
)

func preparePerm(f *os.File, perm os.FileMode) error {
	if err := f.Chmod(perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	return nil
}

func replaceFile(from, to string) error {
	if err := os.Rename(from, to); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
