// Package elements provides the deterministic five-element scoring engine, the
// archetype resolver and the season classifier.
package elements

import "sort"

// Axis is one of the five elemental dimensions of a profile
type Axis string

// Axis constants in natural enumeration order
const (
	Fire  Axis = "fire"
	Water Axis = "water"
	Wood  Axis = "wood"
	Earth Axis = "earth"
	Metal Axis = "metal"
)

// axisOrder is the natural enumeration order, also used as the tie-break priority.
var axisOrder = [...]Axis{Fire, Water, Wood, Earth, Metal}

// Axes returns all five axes in natural enumeration order.
func Axes() []Axis {
	out := make([]Axis, len(axisOrder))
	copy(out, axisOrder[:])
	return out
}

// priority returns the tie-break rank of an axis (lower wins).
func priority(a Axis) int {
	for i, candidate := range axisOrder {
		if candidate == a {
			return i
		}
	}
	return len(axisOrder)
}

// Profile holds the five elemental scores produced by Calculate.
type Profile struct {
	Fire  int `json:"fire"`
	Water int `json:"water"`
	Wood  int `json:"wood"`
	Earth int `json:"earth"`
	Metal int `json:"metal"`
}

// AxisScore pairs an axis with its score
type AxisScore struct {
	Axis  Axis `json:"axis"`
	Score int  `json:"score"`
}

// ProfileFromMap builds a Profile from loosely keyed scores. Missing axes score 0.
func ProfileFromMap(scores map[string]int) Profile {
	return Profile{
		Fire:  scores[string(Fire)],
		Water: scores[string(Water)],
		Wood:  scores[string(Wood)],
		Earth: scores[string(Earth)],
		Metal: scores[string(Metal)],
	}
}

// Score returns the score for an axis, or 0 for an unknown axis.
func (p Profile) Score(a Axis) int {
	switch a {
	case Fire:
		return p.Fire
	case Water:
		return p.Water
	case Wood:
		return p.Wood
	case Earth:
		return p.Earth
	case Metal:
		return p.Metal
	default:
		return 0
	}
}

// add awards points to one axis
func (p *Profile) add(a Axis, points int) {
	switch a {
	case Fire:
		p.Fire += points
	case Water:
		p.Water += points
	case Wood:
		p.Wood += points
	case Earth:
		p.Earth += points
	case Metal:
		p.Metal += points
	}
}

// Sum returns the total of all five scores.
func (p Profile) Sum() int {
	return p.Fire + p.Water + p.Wood + p.Earth + p.Metal
}

// Ranked returns the axes sorted by score descending. Ties keep natural axis order.
func (p Profile) Ranked() []AxisScore {
	ranked := make([]AxisScore, 0, len(axisOrder))
	for _, a := range axisOrder {
		ranked = append(ranked, AxisScore{Axis: a, Score: p.Score(a)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return priority(ranked[i].Axis) < priority(ranked[j].Axis)
	})
	return ranked
}

// Weakest returns the n lowest-scoring axes, ascending. Ties keep natural axis order.
func Weakest(p Profile, n int) []Axis {
	ranked := p.Ranked()
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score < ranked[j].Score
		}
		return priority(ranked[i].Axis) < priority(ranked[j].Axis)
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	if n < 0 {
		n = 0
	}
	out := make([]Axis, 0, n)
	for _, as := range ranked[:n] {
		out = append(out, as.Axis)
	}
	return out
}

// Map returns the profile keyed by axis name.
func (p Profile) Map() map[string]int {
	out := make(map[string]int, len(axisOrder))
	for _, a := range axisOrder {
		out[string(a)] = p.Score(a)
	}
	return out
}
