package unique

import (
	"math"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// countableEnv is the environment countable expressions run in. An
// expression "[Cities] * 2" compiles to Count("Cities") * 2.
type countableEnv struct {
	state State
}

// Count resolves one bracketed operand; unknown operands count as zero.
func (e countableEnv) Count(name string) int {
	n, _ := CountableAmount(name, e.state)
	return n
}

var namedCountables = map[string]func(Civ) int{
	"Cities":                    func(c Civ) int { return c.CityCount() },
	"Units":                     func(c Civ) int { return c.UnitCount("All") },
	"Owned Tiles":               func(c Civ) int { return c.OwnedTiles() },
	"Completed Policy branches": func(c Civ) int { return c.CompletedPolicyBranches() },
}

// CountableAmount resolves countable against s: integer literals, "turns",
// named civ counts, stat and resource stockpiles, "[filter] Units",
// "[filter] Buildings" and bracketed arithmetic expressions.
//
// Postcondition: ok is false when the countable cannot be resolved in s.
func CountableAmount(countable string, s State) (int, bool) {
	text := strings.TrimSpace(countable)
	if n, ok := ParseNumber(text); ok {
		return n, true
	}
	if text == "turns" {
		if s.Game == nil {
			return 0, false
		}
		return s.Game.Turn(), true
	}
	if isExpression(text) {
		prog, ok := compileCountable(text)
		if !ok {
			return 0, false
		}
		return runCountable(prog, s)
	}
	civ := s.relevantCiv()
	if civ == nil {
		return 0, false
	}
	if f, ok := namedCountables[text]; ok {
		return f(civ), true
	}
	if stat, ok := ParseStat(text); ok {
		return civ.StatAmount(stat), true
	}
	if filter, ok := bracketedCount(text, " Units"); ok {
		return civ.UnitCount(filter), true
	}
	if filter, ok := bracketedCount(text, " Buildings"); ok {
		return civ.BuildingCount(filter), true
	}
	return civ.ResourceAmount(text)
}

// bracketedCount matches "[filter]<suffix>" and returns filter.
func bracketedCount(text, suffix string) (string, bool) {
	if !strings.HasPrefix(text, "[") || !strings.HasSuffix(text, "]"+suffix) {
		return "", false
	}
	if Skeleton(text) != "[]"+suffix {
		return "", false
	}
	return text[1 : len(text)-len(suffix)-1], true
}

// isExpression reports whether text combines bracketed operands rather than
// naming a single countable.
func isExpression(text string) bool {
	if !strings.Contains(text, "[") {
		return false
	}
	if _, ok := bracketedCount(text, " Units"); ok {
		return false
	}
	if _, ok := bracketedCount(text, " Buildings"); ok {
		return false
	}
	return true
}

// translateExpression rewrites bracketed operands into Count calls.
func translateExpression(text string) (string, []string) {
	var b strings.Builder
	var operands []string
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
		operand := rest[open+1 : end]
		operands = append(operands, operand)
		b.WriteString(rest[:open])
		b.WriteString("Count(")
		b.WriteString(strconv.Quote(operand))
		b.WriteString(")")
		rest = rest[end+1:]
	}
	return b.String(), operands
}

func compileCountable(text string) (*vm.Program, bool) {
	if !isExpression(text) {
		return nil, false
	}
	src, _ := translateExpression(text)
	prog, err := expr.Compile(src, expr.Env(countableEnv{}))
	if err != nil {
		return nil, false
	}
	return prog, true
}

func runCountable(prog *vm.Program, s State) (int, bool) {
	out, err := expr.Run(prog, countableEnv{state: s})
	if err != nil {
		return 0, false
	}
	switch v := out.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int(v), true
	}
	return 0, false
}

func countableSeverity(text string, rs RulesetView) ParamSeverity {
	text = strings.TrimSpace(text)
	if text == "" {
		return ParamRulesetInvariant
	}
	if _, ok := ParseNumber(text); ok {
		return ParamValid
	}
	if _, ok := namedCountables[text]; ok || text == "turns" {
		return ParamValid
	}
	if _, ok := ParseStat(text); ok {
		return ParamValid
	}
	if filter, ok := bracketedCount(text, " Units"); ok {
		return ParamMapUnitFilter.ErrorSeverity(filter, rs)
	}
	if filter, ok := bracketedCount(text, " Buildings"); ok {
		return ParamBuildingFilter.ErrorSeverity(filter, rs)
	}
	if isExpression(text) {
		if _, ok := compileCountable(text); !ok {
			return ParamRulesetInvariant
		}
		_, operands := translateExpression(text)
		worst := ParamValid
		for _, op := range operands {
			if sev := countableSeverity(op, rs); sev > worst {
				worst = sev
			}
		}
		return worst
	}
	if rs.Has(CollectionTileResources, text) {
		return ParamValid
	}
	return ParamRulesetSpecific
}

// countable resolves slot i of u as a countable, using the expression
// compiled at parse time when there is one.
func (u *Unique) countable(i int, s State) (int, bool) {
	if prog, ok := u.programs[i]; ok {
		return runCountable(prog, s)
	}
	return CountableAmount(u.Param(i), s)
}
