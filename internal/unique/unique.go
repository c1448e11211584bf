package unique

import (
	"strings"

	"github.com/expr-lang/expr/vm"
)

// Unique is one parsed unique line: a catalog entry, its positional
// parameters and any trailing <...> modifiers. It is immutable once parsed.
type Unique struct {
	text        string
	typ         Type
	ambiguous   []Type
	params      []string
	modifiers   []*Unique
	conditional bool

	sourceTarget *Target
	sourceName   string

	// programs holds compiled countable expressions by slot index.
	programs map[int]*vm.Program
}

// Parse parses a leading unique attached to an object of sourceTarget named
// sourceName. Either may be zero.
//
// Postcondition: Total; unrecognized text yields a Unique of type None.
func Parse(text string, sourceTarget *Target, sourceName string) *Unique {
	return parse(text, sourceTarget, sourceName, false)
}

// ParseConditional parses text as the content of a <...> modifier.
func ParseConditional(text string, sourceTarget *Target, sourceName string) *Unique {
	return parse(text, sourceTarget, sourceName, true)
}

// ParseAll parses every text in order.
func ParseAll(texts []string, sourceTarget *Target, sourceName string) []*Unique {
	out := make([]*Unique, 0, len(texts))
	for _, t := range texts {
		out = append(out, Parse(t, sourceTarget, sourceName))
	}
	return out
}

func parse(text string, sourceTarget *Target, sourceName string, conditional bool) *Unique {
	head, modTexts := splitModifiers(text)
	u := &Unique{
		text:         text,
		params:       placeholderParams(head),
		conditional:  conditional,
		sourceTarget: sourceTarget,
		sourceName:   sourceName,
	}
	allowed := Type.canLead
	if conditional {
		allowed = Type.canModify
	}
	u.typ, u.ambiguous = matchSkeleton(Skeleton(head), allowed)
	for _, m := range modTexts {
		u.modifiers = append(u.modifiers, parse(m, sourceTarget, sourceName, true))
	}
	if u.typ != None {
		for i, slot := range u.typ.info().params {
			if i >= len(u.params) || !containsParamType(slot, ParamCountable) {
				continue
			}
			if prog, ok := compileCountable(u.params[i]); ok {
				if u.programs == nil {
					u.programs = make(map[int]*vm.Program)
				}
				u.programs[i] = prog
			}
		}
	}
	return u
}

func containsParamType(ps []ParamType, p ParamType) bool {
	for _, x := range ps {
		if x == p {
			return true
		}
	}
	return false
}

// Text returns the raw text exactly as authored.
func (u *Unique) Text() string { return u.text }

func (u *Unique) String() string { return u.text }

// Type returns the resolved catalog entry, or None.
func (u *Unique) Type() Type { return u.typ }

// HasType reports whether the text resolved to a catalog entry.
func (u *Unique) HasType() bool { return u.typ != None }

// Ambiguous returns the candidate entries when the skeleton matched several.
func (u *Unique) Ambiguous() []Type { return append([]Type(nil), u.ambiguous...) }

// IsConditional reports whether u was parsed as a <...> modifier.
func (u *Unique) IsConditional() bool { return u.conditional }

// Params returns the positional parameters. Callers must not modify the slice.
func (u *Unique) Params() []string { return u.params }

// Param returns parameter i, or "" when absent.
func (u *Unique) Param(i int) string {
	if i < 0 || i >= len(u.params) {
		return ""
	}
	return u.params[i]
}

// Modifiers returns every <...> modifier in source order. Callers must not
// modify the slice.
func (u *Unique) Modifiers() []*Unique { return u.modifiers }

// ModifiersOf returns the modifiers of type t.
func (u *Unique) ModifiersOf(t Type) []*Unique {
	var out []*Unique
	for _, m := range u.modifiers {
		if m.typ == t {
			out = append(out, m)
		}
	}
	return out
}

// HasModifier reports whether any modifier is of type t.
func (u *Unique) HasModifier(t Type) bool {
	for _, m := range u.modifiers {
		if m.typ == t {
			return true
		}
	}
	return false
}

// SourceTarget returns the target of the object u is attached to.
func (u *Unique) SourceTarget() *Target { return u.sourceTarget }

// SourceName returns the name of the object u is attached to.
func (u *Unique) SourceName() string { return u.sourceName }

// Deprecation returns the resolved entry's deprecation annotation.
func (u *Unique) Deprecation() (Deprecation, bool) { return u.typ.Deprecation() }

// IsDeprecated reports whether the resolved entry is deprecated.
func (u *Unique) IsDeprecated() bool { return u.typ.IsDeprecated() }

// Head returns the text with every trailing modifier removed.
func (u *Unique) Head() string {
	head, _ := splitModifiers(u.text)
	return head
}

// Placeholder returns the skeleton of the head text, used as tag key.
func (u *Unique) Placeholder() string { return Skeleton(u.Head()) }

// AllParams returns the parameters of u followed by those of every modifier.
func (u *Unique) AllParams() []string {
	out := append([]string(nil), u.params...)
	for _, m := range u.modifiers {
		out = append(out, m.AllParams()...)
	}
	return out
}

// IsTimedTriggerable reports whether u carries a <for [amount] turns> modifier.
func (u *Unique) IsTimedTriggerable() bool { return u.HasModifier(ConditionalTimedUnique) }

// IsTriggerable reports whether u has a one-time effect.
func (u *Unique) IsTriggerable() bool { return u.typ.IsTrigger() || u.IsTimedTriggerable() }

// HasTriggerConditional reports whether u waits for a trigger condition.
func (u *Unique) HasTriggerConditional() bool {
	for _, m := range u.modifiers {
		if m.typ.declares(TargetTriggerCondition) || m.typ.declares(TargetUnitTriggerCondition) {
			return true
		}
	}
	return false
}

// IsHiddenToUsers reports whether u should stay out of player facing text.
func (u *Unique) IsHiddenToUsers() bool {
	return u.typ.HasFlag(FlagHiddenToUsers) || u.HasModifier(ModifierHiddenFromUsers)
}

// IsModifiedByGameSpeed reports whether amounts scale with game speed.
func (u *Unique) IsModifiedByGameSpeed() bool { return u.HasModifier(ModifiedByGameSpeed) }

// IsLocalEffect reports whether u is limited to the city it lives in.
func (u *Unique) IsLocalEffect() bool {
	if u.HasModifier(ConditionalInThisCity) {
		return true
	}
	for i, slot := range u.typ.info().params {
		if containsParamType(slot, ParamCityFilter) && u.Param(i) == "in this city" {
			return true
		}
	}
	return false
}

// DisplayText returns the text without the modifiers that only steer
// presentation.
func (u *Unique) DisplayText() string {
	var b strings.Builder
	b.WriteString(u.Head())
	for _, m := range u.modifiers {
		if m.typ == ModifierHiddenFromUsers || m.typ == ModifiedByGameSpeed {
			continue
		}
		b.WriteString(" <")
		b.WriteString(m.text)
		b.WriteByte('>')
	}
	return b.String()
}
