package difficulty

import (
	"fmt"
	"sort"
	"strings"
)

// Mod is a single gameplay modifier. Speed, when non-zero, overrides the
// mod's default clock rate adjustment.
type Mod struct {
	Acronym string
	Speed   float64
}

// Mods is an ordered modifier combination. The slice form keeps per-mod
// settings expressible, at the cost of comparability.
type Mods []Mod

// knownMods is the accepted acronym set.
var knownMods = map[string]struct{}{
	"EZ": {}, "NF": {}, "HT": {},
	"HR": {}, "SD": {}, "PF": {},
	"DT": {}, "NC": {}, "HD": {},
	"FL": {}, "SO": {}, "CL": {},
}

// incompatible lists mod pairs that cannot be combined.
var incompatible = [][2]string{
	{"EZ", "HR"},
	{"HT", "DT"},
	{"HT", "NC"},
	{"DT", "NC"},
	{"SD", "NF"},
	{"PF", "NF"},
}

// ParseMods parses a mod string like "HDDT", "+hdhr" or "nc!" into a Mods
// value. Acronyms are case-insensitive pairs; a leading "+" and a trailing
// "!" are stripped, and an empty remainder means nomod.
func ParseMods(input string) (Mods, error) {
	s := strings.TrimSpace(input)
	s = strings.TrimPrefix(s, "+")
	s = strings.TrimSuffix(s, "!")
	s = strings.ToUpper(s)

	if s == "" || s == "NM" {
		return nil, nil
	}

	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid mods %q: odd length", input)
	}

	var mods Mods

	for i := 0; i < len(s); i += 2 {
		acronym := s[i : i+2]
		if _, ok := knownMods[acronym]; !ok {
			return nil, fmt.Errorf("invalid mods %q: unknown acronym %s", input, acronym)
		}

		if mods.Contains(acronym) {
			return nil, fmt.Errorf("invalid mods %q: duplicate acronym %s", input, acronym)
		}

		mods = append(mods, Mod{Acronym: acronym})
	}

	for _, pair := range incompatible {
		if mods.Contains(pair[0]) && mods.Contains(pair[1]) {
			return nil, fmt.Errorf("invalid mods %q: %s and %s are incompatible", input, pair[0], pair[1])
		}
	}

	return mods, nil
}

// Contains reports whether the combination includes the acronym.
func (m Mods) Contains(acronym string) bool {
	for _, mod := range m {
		if mod.Acronym == acronym {
			return true
		}
	}

	return false
}

// Equal reports whether both combinations hold the same mods with the same
// settings, regardless of order.
func (m Mods) Equal(other Mods) bool {
	if len(m) != len(other) {
		return false
	}

	a, b := m.sorted(), other.sorted()

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// ClockRate returns the playback speed of the combination. An explicit Speed
// setting on a rate-changing mod wins over its default.
func (m Mods) ClockRate() float64 {
	for _, mod := range m {
		switch mod.Acronym {
		case "DT", "NC":
			if mod.Speed > 0 {
				return mod.Speed
			}

			return 1.5
		case "HT":
			if mod.Speed > 0 {
				return mod.Speed
			}

			return 0.75
		}
	}

	return 1
}

// String renders the combination as concatenated acronyms, "NM" when empty.
func (m Mods) String() string {
	if len(m) == 0 {
		return "NM"
	}

	var sb strings.Builder
	for _, mod := range m {
		sb.WriteString(mod.Acronym)
	}

	return sb.String()
}

func (m Mods) sorted() Mods {
	out := make(Mods, len(m))
	copy(out, m)
	sort.Slice(out, func(i, j int) bool { return out[i].Acronym < out[j].Acronym })

	return out
}
