// Package cstr loads text files into NUL-terminated buffers suitable for
// handing to C APIs such as the GL shader compiler.
package cstr

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
)

// MaxSize is the largest file FromFile will load. Larger files fail with
// ErrTooLarge instead of exhausting memory.
const MaxSize = 64 << 20

var (
	// ErrNotRegular is returned when the path names something other than a
	// regular file.
	ErrNotRegular = errors.New("not a regular file")
	// ErrTooLarge is returned when the buffer for the file cannot be
	// allocated.
	ErrTooLarge = errors.New("file too large")
)

// Error describes a failed read. Err is the underlying OS error and is
// reachable through errors.Is and errors.As.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("could not %s %s: %s", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// FromFile returns the full contents of filename followed by a single NUL
// byte. An empty file yields a one byte buffer. On failure no buffer is
// returned.
func FromFile(filename string) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, &Error{Op: "open", Path: filename, Err: err}
	}
	return fromFile(filename, f)
}

type file interface {
	io.ReadSeekCloser
	Stat() (fs.FileInfo, error)
}

func fromFile(filename string, f file) ([]byte, error) {
	buf, opErr := readAll(f)
	if opErr != nil {
		// the close error is dropped so the caller sees the original cause
		_ = f.Close()
		return nil, &Error{Op: opErr.op, Path: filename, Err: opErr.err}
	}

	// the contents are complete at this point
	err := f.Close()
	if err != nil {
		slog.Warn(fmt.Sprintf("could not close %s: %s", filename, err), "module", "cstr")
	}
	return buf, nil
}

type opError struct {
	op  string
	err error
}

func readAll(f file) ([]byte, *opError) {
	info, err := f.Stat()
	if err != nil {
		return nil, &opError{"stat", err}
	}
	if !info.Mode().IsRegular() {
		return nil, &opError{"stat", ErrNotRegular}
	}

	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, &opError{"seek", err}
	}
	if size < 0 {
		return nil, &opError{"seek", fmt.Errorf("negative size %d", size)}
	}
	if size >= MaxSize {
		return nil, &opError{"allocate", fmt.Errorf("%w: %d bytes", ErrTooLarge, size)}
	}

	_, err = f.Seek(0, io.SeekStart)
	if err != nil {
		return nil, &opError{"seek", err}
	}

	// the size from the first seek is authoritative; a file that shrinks
	// in between shows up as a short read
	buf := make([]byte, size+1)
	_, err = io.ReadFull(f, buf[:size])
	if err != nil {
		return nil, &opError{"read", err}
	}
	buf[size] = 0

	return buf, nil
}

// String converts a buffer returned by FromFile into a Go string that
// still carries the terminating NUL, as gl.Strs expects.
func String(buf []byte) string {
	if len(buf) == 0 || buf[len(buf)-1] != 0 {
		return string(buf) + "\x00"
	}
	return string(buf)
}
