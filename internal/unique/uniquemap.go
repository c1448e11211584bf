package unique

// Map indexes the uniques of one owner by type and by placeholder tag. A nil
// *Map behaves as an empty one.
type Map struct {
	all    []*Unique
	byType map[Type][]*Unique
	byTag  map[string][]*Unique
}

// NewMap indexes uniques, keeping their order within each bucket.
//
// Postcondition: Returns a non-nil Map; untyped uniques are reachable only by tag.
func NewMap(uniques []*Unique) *Map {
	m := &Map{
		all:    make([]*Unique, 0, len(uniques)),
		byType: make(map[Type][]*Unique),
		byTag:  make(map[string][]*Unique),
	}
	for _, u := range uniques {
		if u == nil {
			continue
		}
		m.all = append(m.all, u)
		if u.HasType() {
			m.byType[u.typ] = append(m.byType[u.typ], u)
		}
		tag := u.Placeholder()
		m.byTag[tag] = append(m.byTag[tag], u)
	}
	return m
}

// All returns every indexed unique. Callers must not modify the slice.
func (m *Map) All() []*Unique {
	if m == nil {
		return nil
	}
	return m.all
}

// IsEmpty reports whether the map holds no uniques.
func (m *Map) IsEmpty() bool { return m == nil || len(m.all) == 0 }

// Uniques returns every unique of type t regardless of conditionals.
func (m *Map) Uniques(t Type) []*Unique {
	if m == nil {
		return nil
	}
	return m.byType[t]
}

// HasUnique reports whether any unique of type t applies in s. Timed
// triggerables are excluded.
func (m *Map) HasUnique(t Type, s State) bool {
	for _, u := range m.Uniques(t) {
		if !u.IsTimedTriggerable() && ConditionalsApply(u, s) {
			return true
		}
	}
	return false
}

// MatchingUniques returns the uniques of type t that apply in s, each
// repeated per its multiplier. Timed triggerables are excluded.
func (m *Map) MatchingUniques(t Type, s State) []*Unique {
	return applicable(m.Uniques(t), s)
}

// HasTagUnique reports whether a unique with the given placeholder text exists.
func (m *Map) HasTagUnique(tag string) bool {
	return m != nil && len(m.byTag[tag]) > 0
}

// MatchingTagUniques returns the uniques with placeholder tag that apply in s.
func (m *Map) MatchingTagUniques(tag string, s State) []*Unique {
	if m == nil {
		return nil
	}
	return applicable(m.byTag[tag], s)
}

// TriggeredUniques returns the triggerable uniques carrying a trigger
// condition of type trigger, whose conditionals hold in s and which pass
// filter. A nil filter accepts every candidate.
func (m *Map) TriggeredUniques(trigger Type, s State, filter func(*Unique) bool) []*Unique {
	var out []*Unique
	for _, u := range m.All() {
		if !u.HasModifier(trigger) {
			continue
		}
		if filter != nil && !filter(u) {
			continue
		}
		if !ConditionalsApply(u, s) {
			continue
		}
		out = append(out, u.Multiplied(s)...)
	}
	return out
}

func applicable(uniques []*Unique, s State) []*Unique {
	var out []*Unique
	for _, u := range uniques {
		if u.IsTimedTriggerable() || !ConditionalsApply(u, s) {
			continue
		}
		out = append(out, u.Multiplied(s)...)
	}
	return out
}

// Owner is anything that carries uniques.
type Owner interface {
	UniqueMap() *Map
}

// HasUnique reports whether o carries an applicable unique of type t.
func HasUnique(o Owner, t Type, s State) bool {
	if o == nil {
		return false
	}
	return o.UniqueMap().HasUnique(t, s)
}

// MatchingUniques returns o's applicable uniques of type t, multiplied.
func MatchingUniques(o Owner, t Type, s State) []*Unique {
	if o == nil {
		return nil
	}
	return o.UniqueMap().MatchingUniques(t, s)
}
