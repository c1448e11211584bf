package unique_test

import "github.com/cory-johannsen/uniques/internal/unique"

type fakeRuleset map[unique.Collection]map[string]bool

func (f fakeRuleset) Has(c unique.Collection, key string) bool { return f[c][key] }

func (f fakeRuleset) Keys(c unique.Collection) []string {
	var out []string
	for k := range f[c] {
		out = append(out, k)
	}
	return out
}

func rulesetWith(c unique.Collection, keys ...string) fakeRuleset {
	rs := fakeRuleset{c: {}}
	for _, k := range keys {
		rs[c][k] = true
	}
	return rs
}

type fakeGame struct {
	turn       int
	speed      string
	difficulty string
	victories  map[string]bool
	religion   bool
	eras       map[string]int
	built      map[string]bool
}

func (g *fakeGame) Turn() int { return g.turn }
func (g *fakeGame) Speed() string { return g.speed }
func (g *fakeGame) Difficulty() string { return g.difficulty }
func (g *fakeGame) IsVictoryEnabled(v string) bool { return g.victories[v] }
func (g *fakeGame) IsReligionEnabled() bool { return g.religion }
func (g *fakeGame) IsBuiltByAnybody(filter string) bool { return g.built[filter] }
func (g *fakeGame) EraNumber(era string) (int, bool) {
	n, ok := g.eras[era]
	return n, ok
}

type fakeCiv struct {
	nation    string
	cityState bool
	barbarian bool
	human     bool
	atWar     bool
	happiness int
	golden    bool
	era       int
	techs     map[string]bool
	policies  map[string]bool
	resources map[string]int
	stats     map[unique.Stat]int
	cities    int
	units     map[string]int
	buildings map[string]int
	tiles     int
	branches  int
	filters   map[string]bool
}

func (c *fakeCiv) NationName() string { return c.nation }
func (c *fakeCiv) IsCityState() bool { return c.cityState }
func (c *fakeCiv) IsBarbarian() bool { return c.barbarian }
func (c *fakeCiv) IsHuman() bool { return c.human }
func (c *fakeCiv) IsAtWar() bool { return c.atWar }
func (c *fakeCiv) Happiness() int { return c.happiness }
func (c *fakeCiv) IsGoldenAge() bool { return c.golden }
func (c *fakeCiv) EraNumber() int { return c.era }
func (c *fakeCiv) HasTech(tech string) bool { return c.techs[tech] }
func (c *fakeCiv) HasPolicyOrBelief(name string) bool { return c.policies[name] }
func (c *fakeCiv) StatAmount(s unique.Stat) int { return c.stats[s] }
func (c *fakeCiv) CityCount() int { return c.cities }
func (c *fakeCiv) UnitCount(filter string) int { return c.units[filter] }
func (c *fakeCiv) BuildingCount(filter string) int { return c.buildings[filter] }
func (c *fakeCiv) OwnedTiles() int { return c.tiles }
func (c *fakeCiv) CompletedPolicyBranches() int { return c.branches }
func (c *fakeCiv) MatchesFilter(filter string) bool { return c.filters[filter] }
func (c *fakeCiv) ResourceAmount(name string) (int, bool) {
	n, ok := c.resources[name]
	return n, ok
}

type fakeCity struct {
	filters    map[string]bool
	buildings  map[string]bool
	population map[string]int
	connected  bool
	wltkd      bool
}

func (c *fakeCity) MatchesFilter(f string) bool { return c.filters[f] }
func (c *fakeCity) HasBuilding(f string) bool { return c.buildings[f] }
func (c *fakeCity) PopulationCount(f string) int { return c.population[f] }
func (c *fakeCity) IsConnectedToCapital() bool { return c.connected }
func (c *fakeCity) IsWeLoveTheKingDay() bool { return c.wltkd }

type fakeUnit struct {
	filters    map[string]bool
	promotions map[string]bool
	health     int
}

func (u *fakeUnit) MatchesFilter(f string) bool { return u.filters[f] }
func (u *fakeUnit) HasPromotion(p string) bool { return u.promotions[p] }
func (u *fakeUnit) Health() int { return u.health }

type fakeTile struct {
	filters   map[string]bool
	neighbors map[string]int
}

func (t *fakeTile) MatchesFilter(f string) bool { return t.filters[f] }
func (t *fakeTile) NeighborCount(f string) int { return t.neighbors[f] }

type fakeCombatant struct {
	filters map[string]bool
	city    bool
	civ     *fakeCiv
	health  int
}

func (c *fakeCombatant) MatchesFilter(f string) bool { return c.filters[f] }
func (c *fakeCombatant) IsCity() bool { return c.city }
func (c *fakeCombatant) Health() int { return c.health }
func (c *fakeCombatant) Civ() unique.Civ {
	if c.civ == nil {
		return nil
	}
	return c.civ
}

type fakeOwner struct {
	m *unique.Map
}

func (o fakeOwner) UniqueMap() *unique.Map { return o.m }

func set(keys ...string) map[string]bool {
	out := make(map[string]bool, len(keys))
	for _, k := range keys {
		out[k] = true
	}
	return out
}
