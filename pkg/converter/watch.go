package converter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/tabcast/tabcast/pkg/log"
)

// Watch re-runs the conversion whenever the spreadsheet or rules file
// changes, until ctx is cancelled. The parent directories are watched so
// that editors which replace files (write-to-temp + rename) still trigger.
//
// The initial conversion is the caller's responsibility; Watch only reacts
// to subsequent changes.
func (c *Converter) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer watcher.Close() //nolint:errcheck // Best-effort cleanup on return.

	watched, err := c.addWatchers(watcher)
	if err != nil {
		return err
	}

	logger := log.WithContext(ctx)
	logger.InfoContext(ctx, "watching for changes",
		slog.String("spreadsheet", c.spreadsheetPath),
		slog.String("rules", c.rulesPath),
	)

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if _, match := watched[filepath.Clean(evt.Name)]; !match {
				continue
			}

			// Ignore events that are not related to file content changes.
			if evt.Has(fsnotify.Chmod) {
				continue
			}

			logger.DebugContext(ctx, "source changed",
				slog.String("event", evt.String()),
			)

			c.Reset()

			err := c.Convert()
			if err != nil {
				logger.ErrorContext(ctx, "conversion failed", slog.Any("err", err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			logger.ErrorContext(ctx, "watcher error", slog.Any("err", err))
		}
	}
}

// addWatchers registers the parent directories of the spreadsheet and rules
// paths and returns the set of absolute file paths whose events matter. The
// rules file may not exist yet; its directory is still watched when present
// so that creating the file triggers a re-run.
func (c *Converter) addWatchers(watcher *fsnotify.Watcher) (map[string]struct{}, error) {
	watched := make(map[string]struct{}, 2)

	for i, path := range []string{c.spreadsheetPath, c.rulesPath} {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolve absolute path %q: %w", path, err)
		}

		dir := filepath.Dir(abs)

		_, err = os.Stat(dir)
		if err != nil {
			// The spreadsheet's directory must exist; the rules file's
			// directory is optional.
			if i == 0 {
				return nil, fmt.Errorf("stat %q: %w", dir, err)
			}

			continue
		}

		err = watcher.Add(dir)
		if err != nil {
			return nil, fmt.Errorf("add path to watcher: %w", err)
		}

		watched[abs] = struct{}{}
	}

	return watched, nil
}
