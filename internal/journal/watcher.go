package journal

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/litescript/habzone/internal/logging"
)

// IsJournalFile reports whether name looks like a game journal file.
func IsJournalFile(name string) bool {
	base := filepath.Base(name)
	return strings.HasPrefix(base, "Journal.") && strings.HasSuffix(base, ".log")
}

// LatestJournal returns the most recently modified journal file in dir.
func LatestJournal(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read journal dir: %w", err)
	}

	var latest string
	var latestInfo os.FileInfo
	for _, e := range entries {
		if e.IsDir() || !IsJournalFile(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if latestInfo == nil || info.ModTime().After(latestInfo.ModTime()) ||
			(info.ModTime().Equal(latestInfo.ModTime()) && e.Name() > latest) {
			latest = e.Name()
			latestInfo = info
		}
	}

	if latest == "" {
		return "", fmt.Errorf("no journal files in %s", dir)
	}
	return filepath.Join(dir, latest), nil
}

// Watcher follows the newest journal file in a directory and emits its
// survey events. On start the current journal is replayed from the beginning
// so the session reflects the commander's present system.
type Watcher struct {
	Dir    string
	Events <-chan Event // Read-only external channel
	Errors <-chan error // Watch and read failures; dropped when full

	events  chan Event
	errs    chan error
	stop    chan struct{}
	done    chan struct{}
	watcher *fsnotify.Watcher
	logger  *logging.Logger

	file    string
	offset  int64
	partial []byte
}

// NewWatcher creates a watcher for the given journal directory.
func NewWatcher(dir string, logger *logging.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Discard()
	}

	ch := make(chan Event, 256)
	errs := make(chan error, 16)
	return &Watcher{
		Dir:     dir,
		Events:  ch,
		Errors:  errs,
		events:  ch,
		errs:    errs,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		watcher: fw,
		logger:  logger,
	}, nil
}

// Start begins watching the journal directory.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.Dir); err != nil {
		return err
	}

	go w.loop()
	return nil
}

// Stop closes the watcher and the Events channel.
func (w *Watcher) Stop() {
	close(w.stop)
	w.watcher.Close()
	<-w.done // Wait for loop to exit
	close(w.events)
	close(w.errs)
}

func (w *Watcher) loop() {
	defer close(w.done)

	if latest, err := LatestJournal(w.Dir); err == nil {
		if !w.follow(latest) {
			return
		}
	} else {
		w.logger.Debug("No journal to replay: %v", err)
	}

	for {
		select {
		case <-w.stop:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !IsJournalFile(event.Name) {
				continue
			}

			var more bool
			switch {
			case event.Name != w.file && event.Has(fsnotify.Create):
				// The game opens a new journal on every start.
				more = w.follow(event.Name)
			case event.Name != w.file && event.Has(fsnotify.Write) && w.isLatest(event.Name):
				more = w.follow(event.Name)
			case event.Name == w.file && event.Has(fsnotify.Write):
				more = w.drain()
			default:
				more = true
			}
			if !more {
				return
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Journal watch error: %v", err)
			w.report(err)
		}
	}
}

func (w *Watcher) isLatest(name string) bool {
	latest, err := LatestJournal(w.Dir)
	return err == nil && filepath.Clean(latest) == filepath.Clean(name)
}

// follow switches to a new journal file and reads it from the start.
func (w *Watcher) follow(path string) bool {
	w.logger.Info("Following journal %s", filepath.Base(path))
	w.file = path
	w.offset = 0
	w.partial = nil
	return w.drain()
}

// drain reads everything appended to the current file since the last read.
// It returns false if the watcher is stopping.
func (w *Watcher) drain() bool {
	data, err := w.readFrom(w.file, w.offset)
	if err != nil {
		w.logger.Warn("Read journal: %v", err)
		w.report(fmt.Errorf("read journal: %w", err))
		return true
	}
	w.offset += int64(len(data))

	buf := append(w.partial, data...)
	for {
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			break
		}
		line := bytes.TrimSpace(buf[:i])
		buf = buf[i+1:]
		if len(line) == 0 {
			continue
		}

		ev, err := Decode(line)
		if errors.Is(err, ErrIgnored) {
			continue
		}
		if err != nil {
			w.logger.Debug("Skipping journal entry: %v", err)
			continue
		}
		if !w.emit(ev) {
			return false
		}
	}
	w.partial = append([]byte(nil), buf...)
	return true
}

func (w *Watcher) readFrom(path string, offset int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return nil, err
	}
	return io.ReadAll(f)
}

func (w *Watcher) report(err error) {
	select {
	case w.errs <- err:
	default:
	}
}

func (w *Watcher) emit(ev Event) bool {
	select {
	case w.events <- ev:
		return true
	case <-w.stop:
		return false
	}
}
