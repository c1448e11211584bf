package unique

import "strings"

// Skeleton replaces every outermost [...] span of text with "[]". It is the
// key catalog lookups use.
//
// Postcondition: Pure; an unterminated '[' is kept literally.
func Skeleton(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	rest := text
	for {
		open := strings.IndexByte(rest, '[')
		if open < 0 {
			b.WriteString(rest)
			break
		}
		end := matchingClose(rest, open)
		if end < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:open])
		b.WriteString("[]")
		rest = rest[end+1:]
	}
	return strings.TrimSpace(b.String())
}

// placeholderParams returns the content of every outermost [...] span.
func placeholderParams(text string) []string {
	var out []string
	rest := text
	for {
		open := strings.IndexByte(rest, '[')
		if open < 0 {
			return out
		}
		end := matchingClose(rest, open)
		if end < 0 {
			return out
		}
		out = append(out, rest[open+1:end])
		rest = rest[end+1:]
	}
}

// matchingClose returns the index of the ']' closing the '[' at open, or -1.
func matchingClose(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitModifiers peels trailing <...> spans off text, innermost nesting
// respected, and returns the remaining head with the modifier texts in
// source order.
func splitModifiers(text string) (string, []string) {
	head := strings.TrimSpace(text)
	var mods []string
	for strings.HasSuffix(head, ">") {
		open := matchingOpenAngle(head)
		if open < 0 {
			break
		}
		mods = append(mods, strings.TrimSpace(head[open+1:len(head)-1]))
		head = strings.TrimSpace(head[:open])
	}
	for i, j := 0, len(mods)-1; i < j; i, j = i+1, j-1 {
		mods[i], mods[j] = mods[j], mods[i]
	}
	return head, mods
}

// matchingOpenAngle finds the '<' that opens the final '>' of s, or -1.
func matchingOpenAngle(s string) int {
	depth := 0
	for i := len(s) - 1; i >= 0; i-- {
		switch s[i] {
		case '>':
			depth++
		case '<':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// fillTemplate substitutes values, in order, into the slots of template.
// Missing values leave the slot name in place.
func fillTemplate(template string, values []string) string {
	var b strings.Builder
	rest := template
	i := 0
	for {
		open := strings.IndexByte(rest, '[')
		if open < 0 {
			b.WriteString(rest)
			return b.String()
		}
		end := matchingClose(rest, open)
		if end < 0 {
			b.WriteString(rest)
			return b.String()
		}
		b.WriteString(rest[:open+1])
		if i < len(values) {
			b.WriteString(values[i])
		} else {
			b.WriteString(rest[open+1 : end])
		}
		b.WriteByte(']')
		i++
		rest = rest[end+1:]
	}
}
