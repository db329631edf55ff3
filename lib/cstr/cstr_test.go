package cstr_test

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/fosdem/glboot/lib/cstr"
)

func writeTemp(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shader.glsl")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("could not write %s: %s", path, err)
	}
	return path
}

func TestFromFile(t *testing.T) {
	cases := []struct {
		name    string
		content []byte
		want    []byte
	}{
		{"empty", []byte{}, []byte{0}},
		{"abc", []byte("abc"), []byte("abc\x00")},
		{"embedded nul", []byte("a\x00b"), []byte("a\x00b\x00")},
		{"shader", []byte("#version 410 core\nvoid main() {}\n"), []byte("#version 410 core\nvoid main() {}\n\x00")},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			buf, err := cstr.FromFile(writeTemp(t, c.content))
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if len(buf) != len(c.content)+1 {
				t.Errorf("len = %d, want %d", len(buf), len(c.content)+1)
			}
			if buf[len(buf)-1] != 0 {
				t.Errorf("last byte = %#x, want NUL", buf[len(buf)-1])
			}
			if !bytes.Equal(buf, c.want) {
				t.Errorf("buf = %q, want %q", buf, c.want)
			}
		})
	}
}

func TestFromFileLarge(t *testing.T) {
	content := bytes.Repeat([]byte("0123456789abcdef"), 64*1024)
	buf, err := cstr.FromFile(writeTemp(t, content))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !bytes.Equal(buf[:len(content)], content) {
		t.Error("contents differ")
	}
	if buf[len(content)] != 0 {
		t.Error("missing terminator")
	}
}

func TestFromFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.vert")
	buf, err := cstr.FromFile(path)
	if err == nil {
		t.Fatal("expected an error")
	}
	if buf != nil {
		t.Errorf("expected nil buffer, got %q", buf)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %s", err)
	}

	var cerr *cstr.Error
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *cstr.Error, got %T", err)
	}
	if cerr.Op != "open" || cerr.Path != path {
		t.Errorf("unexpected error fields: %+v", cerr)
	}
}

func TestFromFileDirectory(t *testing.T) {
	buf, err := cstr.FromFile(t.TempDir())
	if err == nil {
		t.Fatal("expected an error")
	}
	if buf != nil {
		t.Errorf("expected nil buffer, got %q", buf)
	}
	if !errors.Is(err, cstr.ErrNotRegular) {
		t.Errorf("expected ErrNotRegular, got %s", err)
	}
}

func TestFromFileTooLarge(t *testing.T) {
	path := writeTemp(t, nil)
	// sparse, so no disk space is used
	if err := os.Truncate(path, cstr.MaxSize); err != nil {
		t.Fatal(err)
	}

	buf, err := cstr.FromFile(path)
	if buf != nil {
		t.Errorf("expected nil buffer, got %d bytes", len(buf))
	}
	if !errors.Is(err, cstr.ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	var cerr *cstr.Error
	if !errors.As(err, &cerr) || cerr.Op != "allocate" || cerr.Path != path {
		t.Errorf("unexpected error %#v", err)
	}
}

func TestFromFileUnreadable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	path := writeTemp(t, []byte("abc"))
	if err := os.Chmod(path, 0); err != nil {
		t.Fatal(err)
	}

	buf, err := cstr.FromFile(path)
	if err == nil {
		t.Fatal("expected an error")
	}
	if buf != nil {
		t.Errorf("expected nil buffer, got %q", buf)
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Errorf("expected fs.ErrPermission, got %s", err)
	}
}

func TestString(t *testing.T) {
	if got := cstr.String([]byte("abc\x00")); got != "abc\x00" {
		t.Errorf("String(terminated) = %q", got)
	}
	if got := cstr.String([]byte("abc")); got != "abc\x00" {
		t.Errorf("String(unterminated) = %q", got)
	}
	if got := cstr.String(nil); got != "\x00" {
		t.Errorf("String(nil) = %q", got)
	}
}
