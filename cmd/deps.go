package cmd

import (
	"io"
	"io/fs"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/trly/tickle/internal/log"
)

// FileSystem defines the interface for file system operations.
type FileSystem interface {
	Stat(string) (fs.FileInfo, error)
	Getwd() (string, error)
}

// FileSystemOps provides file system operations for dependency injection.
type FileSystemOps struct {
	StatFunc  func(string) (fs.FileInfo, error)
	GetwdFunc func() (string, error)
}

// Stat returns file information for the given path.
func (f *FileSystemOps) Stat(path string) (fs.FileInfo, error) {
	if f.StatFunc != nil {
		return f.StatFunc(path)
	}
	return os.Stat(path)
}

// Getwd returns the directory compose files are looked up in.
func (f *FileSystemOps) Getwd() (string, error) {
	if f.GetwdFunc != nil {
		return f.GetwdFunc()
	}
	return os.Getwd()
}

// Ensure FileSystemOps implements FileSystem.
var _ FileSystem = (*FileSystemOps)(nil)

// NewFileSystemOps returns production file system operations.
func NewFileSystemOps() FileSystemOps {
	// Return empty struct - methods will use OS functions as defaults
	return FileSystemOps{}
}

// CommonDeps provides dependencies common across commands.
type CommonDeps struct {
	Clock      clock.Clock
	FileSystem FileSystem
	Logger     log.Logger
	Stdout     io.Writer
	Stderr     io.Writer
}

// NewCommonDeps creates production common dependencies.
func NewCommonDeps(logger log.Logger) CommonDeps {
	fs := NewFileSystemOps()
	return CommonDeps{
		Clock:      clock.New(),
		FileSystem: &fs,
		Logger:     logger,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}
}

// NewRootDeps creates common root dependencies for all commands.
// This helper reduces duplication in buildDeps methods.
func NewRootDeps(app *App) CommonDeps {
	return NewCommonDeps(app.Logger)
}
