package service

import "strings"

// Seniority order for brigade ranks, 1 = most senior. Rank is free text
// on the member record, so lookup is forgiving: exact abbreviation
// first, then substring search against the known full names.
var rankAbbreviations = map[string]int{
	"CFO":  1,
	"DCFO": 2,
	"SSO":  3,
	"SO":   4,
	"SFF":  5,
	"QFF":  6,
	"FF":   7,
	"RFF":  8,
	"OS":   9,
}

// Ordered most-specific-first so substring matching never picks a
// shorter name embedded in a longer one ("Station Officer" inside
// "Senior Station Officer").
var rankFullNames = []struct {
	name      string
	seniority int
}{
	{"deputy chief fire officer", 2},
	{"chief fire officer", 1},
	{"senior station officer", 3},
	{"station officer", 4},
	{"senior firefighter", 5},
	{"qualified firefighter", 6},
	{"recruit firefighter", 8},
	{"firefighter", 7},
	{"operational support", 9},
	{"recruit", 8},
}

// rankUnknown sorts unrecognized ranks after every known one.
const rankUnknown = 99

// rankSeniority maps a rank string to its seniority index.
func rankSeniority(rank string) int {
	r := strings.TrimSpace(rank)
	if r == "" {
		return rankUnknown
	}
	if s, ok := rankAbbreviations[strings.ToUpper(r)]; ok {
		return s
	}
	lower := strings.ToLower(r)
	for _, rn := range rankFullNames {
		if strings.Contains(lower, rn.name) {
			return rn.seniority
		}
	}
	return rankUnknown
}
