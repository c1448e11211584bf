package ruleset

import "strings"

// Merge layers mods over base and returns a new snapshot.
//
// A mod object with the same file and name as an earlier object replaces it
// in place; all other objects are appended. Reference keys are the union of
// every input.
//
// Precondition: base must be non-nil.
// Postcondition: Neither base nor mods are modified.
func Merge(base *Ruleset, mods ...*Ruleset) *Ruleset {
	names := []string{base.Name}
	out := newRuleset("", base.Folder)
	out.IsBaseRuleset = base.IsBaseRuleset

	index := make(map[[2]string]int)
	add := func(rs *Ruleset) {
		for _, o := range rs.objects {
			k := [2]string{o.File, o.Name}
			if i, ok := index[k]; ok {
				out.objects[i] = o
				continue
			}
			index[k] = len(out.objects)
			out.objects = append(out.objects, o)
		}
		for c, keys := range rs.keys {
			for _, key := range keys {
				out.addKey(c, key)
			}
		}
	}

	add(base)
	for _, m := range mods {
		if m == nil {
			continue
		}
		add(m)
		names = append(names, m.Name)
	}
	out.Name = strings.Join(names, "+")
	return out
}
