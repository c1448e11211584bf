package validation

import (
	"fmt"

	"github.com/cory-johannsen/uniques/internal/ruleset"
	"github.com/cory-johannsen/uniques/internal/unique"
)

// Severity ranks a RulesetError.
type Severity int

const (
	// SeverityOK is informational; it never blocks a ruleset.
	SeverityOK Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityOK:
		return "OK"
	case SeverityWarning:
		return "Warning"
	case SeverityError:
		return "Error"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// ParseSeverity returns the severity named s.
func ParseSeverity(s string) (Severity, bool) {
	for _, sev := range []Severity{SeverityOK, SeverityWarning, SeverityError} {
		if sev.String() == s {
			return sev, true
		}
	}
	return SeverityOK, false
}

// Kind classifies what went wrong.
type Kind int

const (
	KindParseUnrecognized Kind = iota
	KindParseAmbiguous
	KindParameterInvalid
	KindTargetNotAllowed
	KindConditionalInvalid
	KindDeprecationChainUnresolved
	KindDeprecated
)

var kindNames = [...]string{
	KindParseUnrecognized:          "ParseUnrecognized",
	KindParseAmbiguous:             "ParseAmbiguous",
	KindParameterInvalid:           "ParameterInvalid",
	KindTargetNotAllowed:           "TargetNotAllowed",
	KindConditionalInvalid:         "ConditionalInvalid",
	KindDeprecationChainUnresolved: "DeprecationChainUnresolved",
	KindDeprecated:                 "Deprecated",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// RulesetError is one validation finding.
type RulesetError struct {
	Severity Severity
	Kind     Kind
	Message  string
	// Unique is the offending unique; nil for findings not tied to one.
	Unique *unique.Unique
	// Object is the container the unique was found on, if known.
	Object *ruleset.Object
}

func (e RulesetError) String() string {
	return fmt.Sprintf("%s [%s] %s", e.Severity, e.Kind, e.Message)
}

// ErrorList is an ordered list of findings.
type ErrorList []RulesetError

func (l *ErrorList) add(sev Severity, kind Kind, msg string, u *unique.Unique, o *ruleset.Object) {
	*l = append(*l, RulesetError{Severity: sev, Kind: kind, Message: msg, Unique: u, Object: o})
}

// MaxSeverity returns the worst severity in l, or SeverityOK when empty.
func (l ErrorList) MaxSeverity() Severity {
	worst := SeverityOK
	for _, e := range l {
		if e.Severity > worst {
			worst = e.Severity
		}
	}
	return worst
}

// HasError reports whether any finding is an Error.
func (l ErrorList) HasError() bool {
	return l.MaxSeverity() == SeverityError
}

// AtLeast returns the findings whose severity is at least floor.
func (l ErrorList) AtLeast(floor Severity) ErrorList {
	var out ErrorList
	for _, e := range l {
		if e.Severity >= floor {
			out = append(out, e)
		}
	}
	return out
}

// OfKind returns the findings of kind k.
func (l ErrorList) OfKind(k Kind) ErrorList {
	var out ErrorList
	for _, e := range l {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

// CountBySeverity tallies findings per severity.
func (l ErrorList) CountBySeverity() map[Severity]int {
	out := make(map[Severity]int)
	for _, e := range l {
		out[e.Severity]++
	}
	return out
}
