// Package fileutil provides the exclusive-create file operations used while
// laying out a challenge.
//
// Every helper refuses to reuse an existing path and reports failures through
// errors.Classify, so callers get AlreadyExists / PermissionDenied /
// PathNotFound / OtherIO without inspecting OS errors themselves.
package fileutil

import (
	"io"
	"os"

	"github.com/canopus/chalcreator/internal/chalcreator/errors"
)

// Permissions for created entries
const (
	DirMode        os.FileMode = 0750
	FileMode       os.FileMode = 0640
	ExecutableMode os.FileMode = 0755
)

// CreateDir creates a single new directory. The parent must already exist.
func CreateDir(path string) error {
	return errors.Classify("create directory", path, os.Mkdir(path, DirMode))
}

// CreateEmptyFile creates a new zero-byte file
func CreateEmptyFile(path string) error {
	f, err := openExclusive(path, FileMode)
	if err != nil {
		return err
	}
	return errors.Classify("close file", path, f.Close())
}

// WriteExecutable creates a new file with ExecutableMode holding content
func WriteExecutable(path, content string) (err error) {
	f, err := openExclusive(path, ExecutableMode)
	if err != nil {
		return err
	}
	defer closeFile(f, path, &err)

	if _, err := io.WriteString(f, content); err != nil {
		return errors.Classify("write file", path, err)
	}
	// The umask may have masked the execute bits off.
	if err := f.Chmod(ExecutableMode); err != nil {
		return errors.Classify("chmod file", path, err)
	}
	return errors.Classify("sync file", path, f.Sync())
}

// ReadError marks a failure of the source reader passed to CreateFrom, as
// opposed to a failure writing the destination file.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string { return e.Err.Error() }

func (e *ReadError) Unwrap() error { return e.Err }

type sourceReader struct {
	r io.Reader
}

func (s sourceReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && err != io.EOF {
		err = &ReadError{Err: err}
	}
	return n, err
}

// CreateFrom creates a new file and copies src into it.
// Failures of src come back as *ReadError; destination failures are
// classified against path. Either way the partially written file is left
// in place.
func CreateFrom(path string, src io.Reader) (n int64, err error) {
	f, err := openExclusive(path, FileMode)
	if err != nil {
		return 0, err
	}
	defer closeFile(f, path, &err)

	n, err = io.Copy(f, sourceReader{r: src})
	if err != nil {
		var rerr *ReadError
		if errors.As(err, &rerr) {
			return n, rerr
		}
		return n, errors.Classify("write file", path, err)
	}
	return n, errors.Classify("sync file", path, f.Sync())
}

// closeFile closes f and reports the close error through errp unless an
// earlier error is already set.
func closeFile(f *os.File, path string, errp *error) {
	if cerr := f.Close(); cerr != nil && *errp == nil {
		*errp = errors.Classify("close file", path, cerr)
	}
}

//nolint:gosec // G304: paths are built from a validated challenge descriptor
func openExclusive(path string, mode os.FileMode) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return nil, errors.Classify("create file", path, err)
	}
	return f, nil
}
