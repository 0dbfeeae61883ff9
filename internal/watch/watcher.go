// Package watch emits paths of PDF files dropped into watched
// directories, for the long-running process --watch mode. Events are
// debounced so a scanner still writing a file does not trigger
// processing on a half-written document.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/scanhound/scanhound-cli/internal/logger"
)

// Config controls a watch session.
type Config struct {
	// Roots are the directories to watch, recursively.
	Roots []string

	// Debounce coalesces rapid create/write bursts on one file.
	// Scanners tend to write output in chunks.
	Debounce time.Duration
}

// Start watches the configured roots and sends the path of every PDF
// that is created or modified. Both channels close when ctx is
// cancelled.
func Start(ctx context.Context, cfg Config) (<-chan string, <-chan error, error) {
	if len(cfg.Roots) == 0 {
		return nil, nil, errors.New("no watch roots provided")
	}
	if cfg.Debounce == 0 {
		cfg.Debounce = 2 * time.Second
	}

	evCh := make(chan string, 256)
	errCh := make(chan error, 1)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	// Add roots and their subdirectories.
	addDir := func(root string) error {
		return filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				return w.Add(path)
			}
			return nil
		})
	}
	for _, r := range cfg.Roots {
		if err := addDir(r); err != nil {
			_ = w.Close()
			return nil, nil, err
		}
	}

	go func() {
		defer close(evCh)
		defer close(errCh)
		defer w.Close()

		// The debounce timer fires into the select below so pending is
		// only touched from this goroutine.
		timer := time.NewTimer(cfg.Debounce)
		if !timer.Stop() {
			<-timer.C
		}
		pending := map[string]struct{}{}

		sendPending := func() {
			for p := range pending {
				select {
				case evCh <- p:
				default:
				}
				delete(pending, p)
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
				sendPending()
			case e, ok := <-w.Events:
				if !ok {
					return
				}
				if e.Op&fsnotify.Create == fsnotify.Create {
					// A new directory needs watching too.
					if info, statErr := os.Stat(e.Name); statErr == nil && info.IsDir() {
						_ = w.Add(e.Name)
					}
				}

				if isPDF(e.Name) && e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
					pending[e.Name] = struct{}{}
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
					timer.Reset(cfg.Debounce)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("watch error: %v", err)
				select {
				case errCh <- err:
				default:
				}
			}
		}
	}()

	return evCh, errCh, nil
}

func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}
