package descriptor

import (
	"path/filepath"

	"github.com/mholt/archiver/v3"
	"github.com/spf13/afero"
)

// Bundle writes the files at paths into a gzipped tarball at dest. Entries
// are stored under their base names.
func Bundle(localFS afero.Fs, paths []string, dest string) (err error) {
	err = localFS.MkdirAll(filepath.Dir(dest), 0755)
	if err != nil {
		return
	}
	out, err := localFS.Create(dest)
	if err != nil {
		return
	}
	defer func() {
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
	}()

	tarGz := archiver.NewTarGz()
	err = tarGz.Create(out)
	if err != nil {
		return
	}
	defer func() {
		if closeErr := tarGz.Close(); err == nil {
			err = closeErr
		}
	}()

	for _, path := range paths {
		err = addToBundle(localFS, tarGz, path)
		if err != nil {
			return
		}
	}

	return
}

func addToBundle(localFS afero.Fs, tarGz *archiver.TarGz, path string) error {
	in, err := localFS.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	return tarGz.Write(archiver.File{
		FileInfo: archiver.FileInfo{
			FileInfo:   info,
			CustomName: filepath.Base(path),
		},
		ReadCloser: in,
	})
}
