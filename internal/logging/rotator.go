package logging

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

// DefaultLogFile is the file name used by the demo host.
const DefaultLogFile = "textedit.log"

const backupTimeFormat = "2006-01-02-15-04-05.000"

// RotatorConfig configures a LogRotator. MaxSizeMB defaults to 10; zero
// MaxBackups or MaxAgeDays keeps backups forever.
type RotatorConfig struct {
	Dir        string
	FileName   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// LogRotator is an io.Writer that rotates its file once it grows past
// MaxSizeMB. Rotated files are timestamped, optionally gzipped, and pruned
// by age and count.
type LogRotator struct {
	cfg     RotatorConfig
	limit   int64
	now     func() time.Time
	onError func(error)

	mu   sync.Mutex
	file *os.File
	size int64
}

// NewLogRotator creates the directory if needed and opens the log file.
func NewLogRotator(cfg RotatorConfig) (*LogRotator, error) {
	if cfg.FileName == "" {
		cfg.FileName = DefaultLogFile
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 10
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	r := &LogRotator{
		cfg:   cfg,
		limit: int64(cfg.MaxSizeMB) << 20,
		now:   time.Now,
		// The rotator is the log sink, so its own failures go to stderr.
		onError: func(err error) { fmt.Fprintf(os.Stderr, "textedit: log rotation: %v\n", err) },
	}
	if err := r.open(); err != nil {
		return nil, err
	}
	return r, nil
}

// Path returns the path of the live log file.
func (r *LogRotator) Path() string {
	return filepath.Join(r.cfg.Dir, r.cfg.FileName)
}

func (r *LogRotator) open() error {
	f, err := os.OpenFile(r.Path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("stat log file: %w", err)
	}
	r.file = f
	r.size = info.Size()
	return nil
}

// Write appends p, rotating first when p would push the file past the limit.
func (r *LogRotator) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		if err := r.open(); err != nil {
			return 0, err
		}
	}
	if r.size > 0 && r.size+int64(len(p)) > r.limit {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := r.file.Write(p)
	r.size += int64(n)
	return n, err
}

func (r *LogRotator) rotate() error {
	if err := r.file.Close(); err != nil {
		r.onError(err)
	}
	r.file = nil

	backup := r.Path() + "." + r.now().Format(backupTimeFormat)
	if err := os.Rename(r.Path(), backup); err != nil {
		return fmt.Errorf("rotate log file: %w", err)
	}
	if r.cfg.Compress {
		if err := gzipFile(backup); err != nil {
			r.onError(fmt.Errorf("compress %s: %w", backup, err))
		}
	}
	if err := r.prune(); err != nil {
		r.onError(err)
	}
	return r.open()
}

// gzipFile replaces path with path.gz.
func gzipFile(path string) (err error) {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(path + ".gz")
	if err != nil {
		return err
	}
	zw := gzip.NewWriter(out)
	_, err = io.Copy(zw, in)
	err = errors.Join(err, zw.Close(), out.Close())
	if err != nil {
		_ = os.Remove(path + ".gz")
		return err
	}
	return os.Remove(path)
}

type backupFile struct {
	path    string
	modTime time.Time
}

// prune removes backups older than MaxAgeDays, then the oldest backups
// beyond MaxBackups.
func (r *LogRotator) prune() error {
	entries, err := os.ReadDir(r.cfg.Dir)
	if err != nil {
		return err
	}

	maxAge := time.Duration(r.cfg.MaxAgeDays) * 24 * time.Hour
	var (
		kept []backupFile
		errs []error
	)
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), r.cfg.FileName+".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		b := backupFile{path: filepath.Join(r.cfg.Dir, e.Name()), modTime: info.ModTime()}
		if maxAge > 0 && r.now().Sub(b.modTime) > maxAge {
			errs = append(errs, os.Remove(b.path))
			continue
		}
		kept = append(kept, b)
	}

	if r.cfg.MaxBackups > 0 && len(kept) > r.cfg.MaxBackups {
		slices.SortFunc(kept, func(a, b backupFile) int { return a.modTime.Compare(b.modTime) })
		for _, b := range kept[:len(kept)-r.cfg.MaxBackups] {
			errs = append(errs, os.Remove(b.path))
		}
	}
	return errors.Join(errs...)
}

// Close closes the live log file. Later writes reopen it.
func (r *LogRotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
