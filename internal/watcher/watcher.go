package watcher

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileChange reports a grown CSV log and the size it was last seen at.
type FileChange struct {
	Path   string
	Offset int64
}

// Watcher notifies when device CSV logs grow. It prefers fsnotify and
// keeps a polling pass running as a safety net for filesystems where
// inotify misses events (network mounts, some editors' atomic saves).
type Watcher struct {
	dirs         []string
	offsets      map[string]int64 // path -> last seen size
	mu           sync.Mutex
	pollInterval time.Duration
	onChange     func([]FileChange)
	stop         chan struct{}
	wg           sync.WaitGroup
}

func New(dirs []string, pollInterval time.Duration, onChange func([]FileChange)) *Watcher {
	return &Watcher{
		dirs:         dirs,
		offsets:      make(map[string]int64),
		pollInterval: pollInterval,
		onChange:     onChange,
		stop:         make(chan struct{}),
	}
}

// InitialScan finds all CSV logs and registers them at offset 0.
func (w *Watcher) InitialScan() ([]string, error) {
	var files []string
	for _, dir := range w.dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return nil // skip errors
			}
			if !info.IsDir() && isCSV(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	w.mu.Lock()
	for _, f := range files {
		w.offsets[f] = 0
	}
	w.mu.Unlock()

	return files, nil
}

// SetOffset records that a file has been consumed up to this size.
func (w *Watcher) SetOffset(path string, offset int64) {
	w.mu.Lock()
	w.offsets[path] = offset
	w.mu.Unlock()
}

// Start begins watching with fsnotify plus the polling fallback.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err == nil {
		for _, dir := range w.dirs {
			_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
				if err == nil && info.IsDir() {
					_ = fsw.Add(path)
				}
				return nil
			})
		}

		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			for {
				select {
				case event, ok := <-fsw.Events:
					if !ok {
						return
					}
					if isCSV(event.Name) &&
						(event.Op&fsnotify.Write != 0 || event.Op&fsnotify.Create != 0) {
						w.checkFile(event.Name)
					}
				case <-w.stop:
					fsw.Close()
					return
				}
			}
		}()
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(w.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.pollAll()
			case <-w.stop:
				return
			}
		}
	}()

	return nil
}

// Stop signals goroutines to exit and waits for them to finish.
func (w *Watcher) Stop() {
	close(w.stop)
	w.wg.Wait()
}

func (w *Watcher) checkFile(path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}

	w.mu.Lock()
	lastOffset, known := w.offsets[path]
	if !known {
		w.offsets[path] = 0
		lastOffset = 0
	}
	w.mu.Unlock()

	if info.Size() > lastOffset {
		w.onChange([]FileChange{{Path: path, Offset: lastOffset}})
	}
}

func (w *Watcher) pollAll() {
	type fileInfo struct {
		path string
		size int64
	}
	var files []fileInfo
	for _, dir := range w.dirs {
		_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() || !isCSV(path) {
				return nil
			}
			files = append(files, fileInfo{path: path, size: info.Size()})
			return nil
		})
	}

	w.mu.Lock()
	var changes []FileChange
	for _, f := range files {
		lastOffset, known := w.offsets[f.path]
		if !known {
			w.offsets[f.path] = 0
			lastOffset = 0
		}
		if f.size > lastOffset {
			changes = append(changes, FileChange{Path: f.path, Offset: lastOffset})
		}
	}
	w.mu.Unlock()

	if len(changes) > 0 {
		w.onChange(changes)
	}
}

func isCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}
