package backends

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
)

// FileBackend writes lines to an append-only log file. A flock-based
// lock makes flushes process-safe, so several processes can share one
// log file without interleaving partial lines.
type FileBackend struct {
	file   *os.File
	writer *bufio.Writer
	lock   *flock.Flock
	path   string
	size   int64
}

// NewFile opens (creating if needed) a file backend at path.
func NewFile(path string) (*FileBackend, error) {
	dir := filepath.Dir(path)
	// #nosec G301 - log directories need to be accessible by other processes
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "create log directory")
	}

	cleanPath := filepath.Clean(path)
	file, err := os.OpenFile(cleanPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644) // #nosec G302 - log files need to be readable
	if err != nil {
		return nil, errors.Wrap(err, "open log file")
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, errors.Wrap(err, "stat log file")
	}

	return &FileBackend{
		file:   file,
		writer: bufio.NewWriterSize(file, DefaultBufferSize),
		lock:   flock.New(cleanPath),
		path:   cleanPath,
		size:   info.Size(),
	}, nil
}

// Write buffers one line. Bytes reach the file on the next Flush, which
// is where the cross-process lock is taken: the lock then guarantees
// whole batches land contiguously. A line that does not fit in the
// remaining buffer first flushes the batch so far; a line larger than
// the whole buffer is written straight through under the lock.
func (fb *FileBackend) Write(entry []byte) (int, error) {
	if len(entry) > fb.writer.Available() {
		if err := fb.Flush(); err != nil {
			return 0, err
		}
		if len(entry) > fb.writer.Available() {
			if err := fb.lock.Lock(); err != nil {
				return 0, errors.Wrap(err, "acquire file lock")
			}
			defer func() {
				_ = fb.lock.Unlock() // best effort
			}()
		}
	}
	n, err := fb.writer.Write(entry)
	fb.size += int64(n)
	return n, err
}

// Flush writes buffered lines to the file under the file lock.
func (fb *FileBackend) Flush() error {
	if fb.writer.Buffered() == 0 {
		return nil
	}
	if err := fb.lock.Lock(); err != nil {
		return errors.Wrap(err, "acquire file lock")
	}
	defer func() {
		_ = fb.lock.Unlock() // best effort
	}()
	return fb.writer.Flush()
}

// Close flushes and closes the file.
func (fb *FileBackend) Close() error {
	flushErr := fb.Flush()
	closeErr := fb.file.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// Path returns the file path.
func (fb *FileBackend) Path() string {
	return fb.path
}

// Size returns the bytes written so far, including still-buffered ones.
func (fb *FileBackend) Size() int64 {
	return fb.size
}
