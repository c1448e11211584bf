package ruleset

import "github.com/cory-johannsen/uniques/internal/unique"

// Object is one named ruleset entry and the uniques attached to it.
type Object struct {
	Name   string
	File   string
	Target *unique.Target
	// Raw holds the unique texts exactly as authored.
	Raw []string

	uniques   []*unique.Unique
	uniqueMap *unique.Map
}

// NewObject parses raw against target and indexes the result.
//
// Postcondition: len(o.Uniques()) == len(raw).
func NewObject(name, file string, target *unique.Target, raw []string) *Object {
	o := &Object{Name: name, File: file, Target: target, Raw: append([]string(nil), raw...)}
	o.uniques = unique.ParseAll(o.Raw, target, name)
	o.uniqueMap = unique.NewMap(o.uniques)
	return o
}

// Uniques returns the parsed uniques in authored order.
func (o *Object) Uniques() []*unique.Unique {
	if o == nil {
		return nil
	}
	return o.uniques
}

// UniqueMap implements unique.Owner.
func (o *Object) UniqueMap() *unique.Map {
	if o == nil {
		return nil
	}
	return o.uniqueMap
}

// HasUnique reports whether o carries an applicable unique of type t.
func (o *Object) HasUnique(t unique.Type, s unique.State) bool {
	return o.UniqueMap().HasUnique(t, s)
}

// MatchingUniques returns o's applicable uniques of type t, multiplied.
func (o *Object) MatchingUniques(t unique.Type, s unique.State) []*unique.Unique {
	return o.UniqueMap().MatchingUniques(t, s)
}

func (o *Object) String() string {
	if o == nil {
		return "<nil>"
	}
	return "(" + o.Target.String() + ") " + o.Name
}
