package sysutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"golang.org/x/sys/unix"
)

// WriteFile replaces the file at path with data. The data is written to a
// temporary file in the same directory which is then renamed over path, so
// readers never see a partially written file.
func WriteFile(localFS afero.Fs, path string, data []byte, perm os.FileMode) (err error) {
	tmpFile, err := afero.TempFile(localFS, filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("error creating temporary file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		if err != nil {
			_ = localFS.Remove(tmpPath)
		}
	}()

	_, err = tmpFile.Write(data)
	if closeErr := tmpFile.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("writing to temporary file failed: %w", err)
	}

	err = localFS.Chmod(tmpPath, perm)
	if err != nil {
		return fmt.Errorf("failed changing file permissions: %w", err)
	}

	err = localFS.Rename(tmpPath, path)
	if err != nil {
		return fmt.Errorf("failed replacing %s: %w", path, err)
	}

	return nil
}

// CheckWritableDir returns an error unless dir is an existing directory the
// current user may write to.
func CheckWritableDir(dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	if unix.Access(dir, unix.W_OK) != nil {
		return fmt.Errorf("%s is not writable", dir)
	}
	return nil
}
