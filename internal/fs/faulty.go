package fs

import (
	"errors"
	"os"
	"sync"
)

// ErrInjected is the default error reported by FaultyFS.
var ErrInjected = errors.New("injected fault")

// FaultyFS wraps a FileSystem and fails writes after a configurable
// number of bytes. Used by the artifact-format tests to exercise the
// cleanup of a partially written file.
type FaultyFS struct {
	FS  FileSystem
	Err error

	mu      sync.Mutex
	written int64
	limit   int64
}

// NewFaultyFS wraps fsys (Default if nil) with no write limit.
func NewFaultyFS(fsys FileSystem) *FaultyFS {
	if fsys == nil {
		fsys = Default
	}
	return &FaultyFS{FS: fsys, Err: ErrInjected, limit: -1}
}

// FailAfter makes every subsequent write fail once n total bytes have
// been written through this FS.
func (f *FaultyFS) FailAfter(n int64) {
	f.mu.Lock()
	f.limit = n
	f.written = 0
	f.mu.Unlock()
}

func (f *FaultyFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	file, err := f.FS.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return &faultyFile{File: file, fs: f}, nil
}

func (f *FaultyFS) Remove(name string) error              { return f.FS.Remove(name) }
func (f *FaultyFS) Rename(oldpath, newpath string) error  { return f.FS.Rename(oldpath, newpath) }
func (f *FaultyFS) Stat(name string) (os.FileInfo, error) { return f.FS.Stat(name) }
func (f *FaultyFS) MkdirAll(path string, perm os.FileMode) error {
	return f.FS.MkdirAll(path, perm)
}

type faultyFile struct {
	File
	fs *FaultyFS
}

func (ff *faultyFile) Write(p []byte) (int, error) {
	ff.fs.mu.Lock()
	exceeded := ff.fs.limit >= 0 && ff.fs.written+int64(len(p)) > ff.fs.limit
	if !exceeded {
		ff.fs.written += int64(len(p))
	}
	ff.fs.mu.Unlock()

	if exceeded {
		return 0, ff.fs.Err
	}
	return ff.File.Write(p)
}
