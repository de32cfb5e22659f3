package installer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
)

// deferErr runs fn and assigns the returned error to errOut if errOut is nil
func deferErr(errOut *error, fn func() error) {
	deferredErr := fn()
	if *errOut == nil {
		*errOut = deferredErr
	}
}

// copyFile copies file from src to dst
func copyFile(src, dst string) (errOut error) {
	srcStat, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !srcStat.Mode().IsRegular() {
		return fmt.Errorf("not a regular file")
	}

	rdr, err := os.Open(src)
	if err != nil {
		return err
	}
	defer deferErr(&errOut, rdr.Close)

	writer, err := os.OpenFile(dst, os.O_RDWR|os.O_CREATE|os.O_TRUNC, srcStat.Mode())
	if err != nil {
		return err
	}
	defer deferErr(&errOut, writer.Close)

	_, err = io.Copy(writer, rdr)
	return err
}

// fileExists asserts that a file or symlink exists
func fileExists(path string) bool {
	if _, err := os.Lstat(filepath.FromSlash(path)); !os.IsNotExist(err) {
		return true
	}
	return false
}

func fileChecksum(filename string) (string, error) {
	fileBytes, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(fileBytes)
	return hex.EncodeToString(sum[:]), nil
}

func fileExistsWithChecksum(filename, checksum string) (bool, error) {
	if !fileExists(filename) {
		return false, nil
	}
	got, err := fileChecksum(filename)
	if err != nil {
		return false, err
	}
	return checksum == got, nil
}

func mustWriteToHash(hasher hash.Hash, data []byte) {
	_, err := hasher.Write(data)
	if err != nil {
		// hash.Hash.Write() never returns an error
		// https://github.com/golang/go/issues/16633
		panic(err)
	}
}
