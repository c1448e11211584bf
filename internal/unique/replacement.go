package unique

import "strings"

// ReplacementTexts returns, for each replacement template of u's deprecated
// entry, the head text with u's parameters substituted. Modifiers of u are
// not included. Returns nil when u is not deprecated.
//
// A template slot names a slot of the deprecated template; "[+amount]" or a
// '-' before the slot asks for an explicit sign, and signs are carried so
// that the effective value is preserved.
func (u *Unique) ReplacementTexts() []string {
	dep, ok := u.Deprecation()
	if !ok {
		return nil
	}
	out := make([]string, 0, len(dep.ReplaceWith))
	for _, template := range dep.ReplaceWith {
		out = append(out, substituteReplacement(template, u.typ.Text(), u.params))
	}
	return out
}

// slotSpan is one outermost [...] span: name is its content, start and end
// index the brackets.
type slotSpan struct {
	name       string
	start, end int
}

func slotSpans(text string) []slotSpan {
	var out []slotSpan
	for from := 0; from < len(text); {
		open := strings.IndexByte(text[from:], '[')
		if open < 0 {
			break
		}
		open += from
		end := matchingClose(text, open)
		if end < 0 {
			break
		}
		out = append(out, slotSpan{name: text[open+1 : end], start: open, end: end})
		from = end + 1
	}
	return out
}

// substituteReplacement fills template's slots from values, where values[i]
// is the parameter of the i-th slot of deprecatedText. A slot name used more
// than once binds to the deprecated slots of that name in order.
func substituteReplacement(template, deprecatedText string, values []string) string {
	depSpans := slotSpans(deprecatedText)
	used := make(map[string]int)

	var b strings.Builder
	last := 0
	for _, sp := range slotSpans(template) {
		b.WriteString(template[last:sp.start])
		last = sp.end + 1

		signed := strings.HasPrefix(sp.name, "+") || strings.HasPrefix(sp.name, "-")
		bare := strings.TrimLeft(sp.name, "+-")
		idx := nthSlot(depSpans, bare, used[bare])
		used[bare]++
		if idx < 0 || idx >= len(values) {
			b.WriteString(template[sp.start:last])
			continue
		}
		value := values[idx]
		if isNumericSlot(bare) {
			value = carrySign(value, signed, byteBefore(deprecatedText, depSpans[idx].start), byteBefore(template, sp.start))
		}
		b.WriteString("[" + value + "]")
	}
	b.WriteString(template[last:])
	return b.String()
}

// carrySign rewrites value so that the sign written around the slot in the
// new template, combined with the value, keeps the effective number the
// deprecated text expressed.
func carrySign(value string, slotSigned bool, depSign, newSign byte) string {
	depHadSign := depSign == '+' || depSign == '-'
	newMinus := newSign == '-'

	valMinus := strings.HasPrefix(value, "-")
	valSigned := valMinus || strings.HasPrefix(value, "+")
	unsigned := strings.TrimLeft(value, "+-")

	if !depHadSign && !newMinus && !slotSigned && !valSigned {
		return value
	}
	negative := valMinus
	if (depSign == '-') != newMinus {
		negative = !valMinus
	}
	switch {
	case negative:
		return "-" + unsigned
	case (depHadSign && !newMinus) || slotSigned:
		return "+" + unsigned
	}
	return unsigned
}

func byteBefore(s string, i int) byte {
	if i <= 0 {
		return 0
	}
	return s[i-1]
}

// nthSlot returns the index in spans of the n-th (zero based) slot named name.
func nthSlot(spans []slotSpan, name string, n int) int {
	for i, sp := range spans {
		if sp.name != name {
			continue
		}
		if n == 0 {
			return i
		}
		n--
	}
	return -1
}

func isNumericSlot(slot string) bool {
	for _, p := range slotParamTypes(slot) {
		switch p {
		case ParamNumber, ParamPositiveNumber, ParamRelativeNumber, ParamPercent:
			return true
		}
	}
	return false
}
