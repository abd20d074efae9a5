package watch

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const DefaultDebounce = 2 * time.Second

// Watcher reports changes of the files of one directory. Bursts of events,
// such as a package installing several logrotate files, are collapsed into
// a single notification once the directory has been quiet for the debounce
// interval.
type Watcher struct {
	logger logrus.FieldLogger

	directory string
	debounce  time.Duration

	fsw *fsnotify.Watcher
}

func New(logger logrus.FieldLogger, directory string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "Unable to create directory watcher")
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		logger:    logger.WithField("directory", directory),
		directory: directory,
		debounce:  debounce,
		fsw:       fsw,
	}, nil
}

// Watch calls onChange after every quiet burst of events until ctx is
// cancelled or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context, onChange func()) error {
	err := w.fsw.Add(w.directory)
	if err != nil {
		return errors.Wrap(err, "Unable to watch directory")
	}

	w.logger.Info("Watching logrotate directory")

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}

			if !relevant(event) {
				continue
			}

			w.logger.WithFields(logrus.Fields{
				"path": event.Name,
				"op":   event.Op.String(),
			}).Debug("Logrotate directory changed")

			timer.Reset(w.debounce)

		case <-timer.C:
			onChange()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}

			w.logger.WithError(err).Warn("Directory watcher error")
		}
	}
}

func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// relevant drops chmod-only events and editor swap and backup files.
func relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}

	name := filepath.Base(event.Name)

	return !strings.HasPrefix(name, ".") && !strings.HasSuffix(name, "~") && !strings.HasSuffix(name, ".swp")
}
