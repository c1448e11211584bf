package ruleset

import (
	"github.com/google/uuid"

	"github.com/cory-johannsen/uniques/internal/unique"
)

// Ruleset is an immutable snapshot of loaded ruleset objects.
//
// A Ruleset implements unique.RulesetView so parameter validation can check
// references against it.
type Ruleset struct {
	// ID identifies this snapshot; every load or merge gets a fresh one.
	ID            uuid.UUID
	Name          string
	Folder        string
	IsBaseRuleset bool

	objects []*Object
	keys    map[unique.Collection][]string
	keySet  map[unique.Collection]map[string]struct{}
}

func newRuleset(name, folder string) *Ruleset {
	return &Ruleset{
		ID:     uuid.New(),
		Name:   name,
		Folder: folder,
		keys:   make(map[unique.Collection][]string),
		keySet: make(map[unique.Collection]map[string]struct{}),
	}
}

func (r *Ruleset) addKey(c unique.Collection, key string) {
	set, ok := r.keySet[c]
	if !ok {
		set = make(map[string]struct{})
		r.keySet[c] = set
	}
	if _, dup := set[key]; dup {
		return
	}
	set[key] = struct{}{}
	r.keys[c] = append(r.keys[c], key)
}

// Has implements unique.RulesetView.
func (r *Ruleset) Has(c unique.Collection, key string) bool {
	if r == nil {
		return false
	}
	_, ok := r.keySet[c][key]
	return ok
}

// Keys implements unique.RulesetView. Keys are returned in load order.
func (r *Ruleset) Keys(c unique.Collection) []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.keys[c]...)
}

// Objects returns every object in file order.
func (r *Ruleset) Objects() []*Object {
	if r == nil {
		return nil
	}
	return r.objects
}

// ObjectsIn returns the objects loaded from the named file.
func (r *Ruleset) ObjectsIn(file string) []*Object {
	var out []*Object
	for _, o := range r.Objects() {
		if o.File == file {
			out = append(out, o)
		}
	}
	return out
}

// Object returns the object with the given file and name, or nil.
func (r *Ruleset) Object(file, name string) *Object {
	for _, o := range r.Objects() {
		if o.File == file && o.Name == name {
			return o
		}
	}
	return nil
}

// AllUniques returns every parsed unique across all objects.
func (r *Ruleset) AllUniques() []*unique.Unique {
	var out []*unique.Unique
	for _, o := range r.Objects() {
		out = append(out, o.Uniques()...)
	}
	return out
}

// GlobalUniques returns the GlobalUniques.json object, or nil.
func (r *Ruleset) GlobalUniques() *Object {
	return r.Object("GlobalUniques.json", GlobalUniquesName)
}
