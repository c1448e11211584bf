package autoupdate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/uniques/internal/ruleset"
)

// Autoupdate rewrites the ruleset's JSON files, replacing every quoted
// `"old"` with `"new"` and every `<old>` with `<new>`. All other bytes are
// left untouched. A nil replacements map is computed with
// DeprecatedReplaceableUniques.
//
// Files are visited in ruleset.FileNames order and written only when their
// content changes; each write is atomic. The first I/O failure stops the
// batch.
//
// Precondition: rs must have a non-empty Folder.
// Postcondition: Returns the names of the files changed (or, in dry-run mode,
// that would change) before any error.
func (up *Updater) Autoupdate(rs *ruleset.Ruleset, replacements map[string]string) ([]string, error) {
	if rs == nil || rs.Folder == "" {
		return nil, errors.New("autoupdate: ruleset has no folder")
	}
	if replacements == nil {
		replacements, _ = up.DeprecatedReplaceableUniques(rs)
	}
	if len(replacements) == 0 {
		return nil, nil
	}
	keys := orderedKeys(replacements)

	dir := ruleset.JSONDir(rs.Folder)
	var changed []string
	for _, name := range ruleset.FileNames() {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return changed, fmt.Errorf("reading %s: %w", path, err)
		}

		updated := apply(string(data), keys, replacements)
		if updated == string(data) {
			continue
		}
		changed = append(changed, name)
		if up.opts.DryRun {
			up.logger.Info("would update ruleset file", zap.String("file", path))
			continue
		}
		if err := writeAtomic(path, []byte(updated)); err != nil {
			return changed[:len(changed)-1], err
		}
		up.logger.Info("updated ruleset file", zap.String("file", path))
	}
	return changed, nil
}

// orderedKeys sorts longest first so a text is never clobbered by a
// replacement of one of its substrings.
func orderedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

func apply(content string, keys []string, replacements map[string]string) string {
	for _, old := range keys {
		alternatives := strings.Split(replacements[old], `", "`)
		for i, alt := range alternatives {
			alternatives[i] = jsonEscape(alt)
		}
		from := jsonEscape(old)
		content = strings.ReplaceAll(content, `"`+from+`"`, `"`+strings.Join(alternatives, `", "`)+`"`)
		// a list of alternatives only fits where a whole list entry stood
		if len(alternatives) == 1 {
			content = strings.ReplaceAll(content, "<"+from+">", "<"+alternatives[0]+">")
		}
	}
	return content
}

// jsonEscape returns s as it appears between the quotes of a JSON string.
func jsonEscape(s string) string {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return s
	}
	out := strings.TrimSuffix(b.String(), "\n")
	return out[1 : len(out)-1]
}

// writeAtomic replaces path with data through a temp file in the same
// directory, keeping the original permissions.
func writeAtomic(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	cleanup := func() { _ = os.Remove(tmp.Name()) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		cleanup()
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
