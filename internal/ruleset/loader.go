package ruleset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/cory-johannsen/uniques/internal/unique"
)

// Load reads every known ruleset file present in folder.
//
// Missing files are skipped; a file that is present but not valid JSON fails
// the whole load.
//
// Precondition: folder must be a readable directory; logger must be non-nil.
// Postcondition: Returns a ruleset with a fresh ID or a non-nil error.
func Load(folder string, logger *zap.Logger) (*Ruleset, error) {
	info, err := os.Stat(folder)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", folder, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("reading %s: not a directory", folder)
	}

	rs := newRuleset(filepath.Base(folder), folder)
	dir := JSONDir(folder)
	for _, def := range files {
		path := filepath.Join(dir, def.name)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		if !gjson.ValidBytes(data) {
			return nil, fmt.Errorf("parsing %s: invalid JSON", path)
		}
		n := loadFile(rs, def, gjson.ParseBytes(data), logger.With(zap.String("file", def.name)))
		logger.Debug("loaded ruleset file",
			zap.String("file", path),
			zap.Int("objects", n),
		)
	}

	logger.Info("ruleset loaded",
		zap.String("name", rs.Name),
		zap.Stringer("id", rs.ID),
		zap.Int("objects", len(rs.objects)),
		zap.Bool("base", rs.IsBaseRuleset),
	)
	return rs, nil
}

func loadFile(rs *Ruleset, def fileSpec, doc gjson.Result, logger *zap.Logger) int {
	if def.single != "" {
		if def.name == "ModOptions.json" {
			rs.IsBaseRuleset = doc.Get("isBaseRuleset").Bool()
		}
		rs.objects = append(rs.objects, NewObject(def.single, def.name, def.target(doc), uniqueTexts(doc)))
		return 1
	}

	n := 0
	for _, path := range def.paths {
		doc.Get(path).ForEach(func(_, obj gjson.Result) bool {
			name := obj.Get("name").String()
			if name == "" {
				logger.Warn("skipping unnamed object", zap.String("path", path))
				return true
			}
			if def.keyed {
				rs.addKey(def.collection, name)
			}
			rs.objects = append(rs.objects, NewObject(name, def.name, def.target(obj), uniqueTexts(obj)))
			n++
			return true
		})
	}
	return n
}

func uniqueTexts(obj gjson.Result) []string {
	var out []string
	for _, v := range obj.Get("uniques").Array() {
		out = append(out, v.String())
	}
	return out
}

// LoadWithMods loads base and every mod folder and merges them in order.
//
// Precondition: base must be non-empty.
func LoadWithMods(base string, mods []string, logger *zap.Logger) (*Ruleset, error) {
	b, err := Load(base, logger)
	if err != nil {
		return nil, err
	}
	loaded := make([]*Ruleset, 0, len(mods))
	for _, m := range mods {
		rs, err := Load(m, logger)
		if err != nil {
			return nil, err
		}
		loaded = append(loaded, rs)
	}
	if len(loaded) == 0 {
		return b, nil
	}
	return Merge(b, loaded...), nil
}

var _ unique.RulesetView = (*Ruleset)(nil)
