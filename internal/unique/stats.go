package unique

import (
	"regexp"
	"strconv"
	"strings"
)

// Stat is one of the yields a civilization accumulates.
type Stat string

const (
	StatProduction Stat = "Production"
	StatFood       Stat = "Food"
	StatGold       Stat = "Gold"
	StatScience    Stat = "Science"
	StatCulture    Stat = "Culture"
	StatHappiness  Stat = "Happiness"
	StatFaith      Stat = "Faith"
)

var allStats = [...]Stat{StatProduction, StatFood, StatGold, StatScience, StatCulture, StatHappiness, StatFaith}

// AllStats lists the stats in display order.
//
// Postcondition: The returned slice is a fresh copy.
func AllStats() []Stat {
	out := make([]Stat, len(allStats))
	copy(out, allStats[:])
	return out
}

// ParseStat reports whether name is a stat name.
func ParseStat(name string) (Stat, bool) {
	for _, s := range allStats {
		if string(s) == name {
			return s, true
		}
	}
	return "", false
}

var statEntry = regexp.MustCompile(`^([+-]?\d+(?:\.\d+)?) (\w+)$`)

// ParseStats parses a comma separated list such as "+1 Gold, -2 Food".
//
// Postcondition: ok is false when any entry is malformed or names an unknown stat.
func ParseStats(text string) (map[Stat]float64, bool) {
	if strings.TrimSpace(text) == "" {
		return nil, false
	}
	out := make(map[Stat]float64)
	for _, part := range strings.Split(text, ",") {
		m := statEntry.FindStringSubmatch(strings.TrimSpace(part))
		if m == nil {
			return nil, false
		}
		stat, ok := ParseStat(m[2])
		if !ok {
			return nil, false
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil, false
		}
		out[stat] += v
	}
	return out, true
}

// ParseNumber parses an integer parameter within the 32-bit range. A leading
// '+' or '-' is accepted. Validation and evaluation both go through it, so a
// value that validates is one conditionals can evaluate.
func ParseNumber(text string) (int, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 32)
	if err != nil {
		return 0, false
	}
	return int(n), true
}
