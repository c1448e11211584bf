package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/uniques/internal/unique"
)

// TargetDoc documents one unique target.
type TargetDoc struct {
	Name         string `yaml:"name"`
	Doc          string `yaml:"doc,omitempty"`
	InheritsFrom string `yaml:"inherits_from,omitempty"`
	Modifier     bool   `yaml:"modifier,omitempty"`
}

// DeprecationDoc documents a deprecated entry.
type DeprecationDoc struct {
	Message     string   `yaml:"message"`
	ReplaceWith []string `yaml:"replace_with,omitempty"`
	Level       string   `yaml:"level"`
}

// TypeDoc documents one catalog entry.
type TypeDoc struct {
	Name       string          `yaml:"name"`
	Text       string          `yaml:"text"`
	Targets    []string        `yaml:"targets"`
	Params     [][]string      `yaml:"params,omitempty"`
	Hidden     bool            `yaml:"hidden,omitempty"`
	Deprecated *DeprecationDoc `yaml:"deprecated,omitempty"`
}

// CatalogDoc is the complete catalog documentation.
type CatalogDoc struct {
	Targets []TargetDoc `yaml:"targets"`
	Types   []TypeDoc   `yaml:"types"`
}

// Catalog documents every target and catalog entry. Deprecated entries are
// left out unless includeDeprecated is set.
func Catalog(includeDeprecated bool) CatalogDoc {
	var doc CatalogDoc
	for _, t := range unique.AllTargets() {
		td := TargetDoc{Name: t.Name(), Doc: t.Doc(), Modifier: t.IsModifier()}
		if parent := t.InheritsFrom(); parent != nil {
			td.InheritsFrom = parent.Name()
		}
		doc.Targets = append(doc.Targets, td)
	}
	for _, typ := range unique.AllTypes() {
		dep, deprecated := typ.Deprecation()
		if deprecated && !includeDeprecated {
			continue
		}
		td := TypeDoc{Name: typ.String(), Text: typ.Text(), Hidden: typ.HasFlag(unique.FlagHiddenToUsers)}
		for _, tg := range typ.Targets() {
			td.Targets = append(td.Targets, tg.Name())
		}
		for _, slot := range typ.ParamTypes() {
			names := make([]string, len(slot))
			for i, p := range slot {
				names[i] = p.String()
			}
			td.Params = append(td.Params, names)
		}
		if deprecated {
			td.Deprecated = &DeprecationDoc{Message: dep.Message, ReplaceWith: dep.ReplaceWith, Level: dep.Level.String()}
		}
		doc.Types = append(doc.Types, td)
	}
	return doc
}

// WriteCatalog renders doc as YAML, checking the output reads back before
// writing it.
func WriteCatalog(w io.Writer, doc CatalogDoc) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("serialising catalog: %w", err)
	}
	var check CatalogDoc
	if err := yaml.Unmarshal(data, &check); err != nil {
		return fmt.Errorf("catalog failed validation: %w", err)
	}
	if len(check.Types) != len(doc.Types) {
		return fmt.Errorf("catalog failed validation: %d types written, %d read back", len(doc.Types), len(check.Types))
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	return nil
}
