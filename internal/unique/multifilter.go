package unique

import "strings"

const (
	orDelimiter = " OR "
	notPrefix   = "non-["
	notSuffix   = "]"
)

// MultiFilter evaluates a compound filter: "A OR B" matches either side,
// "{A} {B}" matches both, and "non-[A]" negates A. Everything else is handed
// to single.
func MultiFilter(input string, single func(string) bool) bool {
	input = strings.TrimSpace(input)
	if parts := splitTopLevel(input, orDelimiter); len(parts) > 1 {
		for _, p := range parts {
			if MultiFilter(p, single) {
				return true
			}
		}
		return false
	}
	if groups, ok := braceGroups(input); ok {
		for _, g := range groups {
			if !MultiFilter(g, single) {
				return false
			}
		}
		return true
	}
	if inner, ok := negated(input); ok {
		return !MultiFilter(inner, single)
	}
	return single(input)
}

// AllSingleFilters returns every leaf filter of input, in source order.
func AllSingleFilters(input string) []string {
	var out []string
	var walk func(string)
	walk = func(s string) {
		s = strings.TrimSpace(s)
		if parts := splitTopLevel(s, orDelimiter); len(parts) > 1 {
			for _, p := range parts {
				walk(p)
			}
			return
		}
		if groups, ok := braceGroups(s); ok {
			for _, g := range groups {
				walk(g)
			}
			return
		}
		if inner, ok := negated(s); ok {
			walk(inner)
			return
		}
		out = append(out, s)
	}
	walk(input)
	return out
}

func negated(s string) (string, bool) {
	if len(s) > len(notPrefix) && strings.HasPrefix(s, notPrefix) && strings.HasSuffix(s, notSuffix) {
		return s[len(notPrefix) : len(s)-len(notSuffix)], true
	}
	return "", false
}

// splitTopLevel splits s on sep occurrences outside any [] or {} nesting.
func splitTopLevel(s, sep string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[', '{':
			depth++
		case ']', '}':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 && strings.HasPrefix(s[i:], sep) {
				parts = append(parts, s[start:i])
				i += len(sep) - 1
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// braceGroups parses "{A} {B} ..." into its group contents.
func braceGroups(s string) ([]string, bool) {
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return nil, false
	}
	var groups []string
	depth, start := 0, -1
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '{':
			if depth == 0 {
				start = i + 1
			}
			depth++
		case c == '}':
			depth--
			if depth < 0 {
				return nil, false
			}
			if depth == 0 {
				groups = append(groups, s[start:i])
			}
		case depth == 0 && c != ' ':
			return nil, false
		}
	}
	if depth != 0 || len(groups) == 0 {
		return nil, false
	}
	return groups, true
}
