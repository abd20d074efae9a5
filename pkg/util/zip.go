package util

import (
	"archive/zip"
	"io"
	"os"
	"path"
	"path/filepath"
)

// ZipDirectory writes every regular file below dir into the zip archive outfile,
// keeping relative paths and permission bits. outfile itself is skipped when
// it lives inside dir.
func ZipDirectory(outfile, dir string) (err error) {
	zf, err := os.OpenFile(outfile, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := zf.Close(); err == nil {
			err = closeErr
		}
	}()

	zw := zip.NewWriter(zf)

	err = addFiles(zw, outfile, dir, "")
	if err != nil {
		return err
	}

	return zw.Close()
}

func addFiles(w *zip.Writer, outfile, basePath, baseInZip string) error {
	entries, err := os.ReadDir(basePath)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		fullPath := filepath.Join(basePath, entry.Name())
		if fullPath == filepath.Clean(outfile) {
			continue
		}

		if entry.IsDir() {
			err = addFiles(w, outfile, fullPath, path.Join(baseInZip, entry.Name()))
			if err != nil {
				return err
			}

			continue
		}

		info, err := entry.Info()
		if err != nil {
			return err
		}

		if !info.Mode().IsRegular() {
			continue
		}

		err = addFile(w, fullPath, path.Join(baseInZip, entry.Name()), info)
		if err != nil {
			return err
		}
	}

	return nil
}

func addFile(w *zip.Writer, fullPath, nameInZip string, info os.FileInfo) error {
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = nameInZip
	header.Method = zip.Deflate

	zw, err := w.CreateHeader(header)
	if err != nil {
		return err
	}

	f, err := os.Open(fullPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(zw, f)
	return err
}
