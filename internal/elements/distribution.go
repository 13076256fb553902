package elements

import (
	"fmt"
	"math/rand"
	"sort"
	"time"
)

// Simulation bounds for random birthdates and names
var (
	simulationStart = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)
	simulationEnd   = time.Date(2005, time.January, 1, 0, 0, 0, 0, time.UTC)
)

const nameAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Distribution tallies archetype and primary-axis outcomes over random inputs.
type Distribution struct {
	Iterations int            `json:"iterations"`
	Archetypes map[string]int `json:"archetypes"`
	Primary    map[Axis]int   `json:"primary"`
}

// Share is one named fraction of a distribution
type Share struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Simulate scores iterations random submissions drawn from rng and tallies them.
func Simulate(rng *rand.Rand, iterations int) Distribution {
	dist := Distribution{
		Iterations: iterations,
		Archetypes: make(map[string]int),
		Primary:    make(map[Axis]int, len(axisOrder)),
	}
	for _, a := range axisOrder {
		dist.Primary[a] = 0
	}

	span := simulationEnd.Sub(simulationStart)
	for i := 0; i < iterations; i++ {
		date := simulationStart.Add(time.Duration(rng.Int63n(int64(span))))
		birthdate := fmt.Sprintf("%d/%d/%d", int(date.Month()), date.Day(), date.Year())
		arch := Resolve(Calculate(birthdate, randomName(rng)))

		dist.Archetypes[arch.Name]++
		dist.Primary[arch.Primary]++
	}
	return dist
}

// randomName returns 3-10 random ASCII letters
func randomName(rng *rand.Rand) string {
	length := rng.Intn(8) + 3
	b := make([]byte, length)
	for i := range b {
		b[i] = nameAlphabet[rng.Intn(len(nameAlphabet))]
	}
	return string(b)
}

// ArchetypeShares returns archetype shares sorted by count descending, then name.
func (d Distribution) ArchetypeShares() []Share {
	shares := make([]Share, 0, len(d.Archetypes))
	for name, count := range d.Archetypes {
		shares = append(shares, d.share(name, count))
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Name < shares[j].Name
	})
	return shares
}

// PrimaryShares returns primary-axis shares in natural axis order.
func (d Distribution) PrimaryShares() []Share {
	shares := make([]Share, 0, len(axisOrder))
	for _, a := range axisOrder {
		shares = append(shares, d.share(string(a), d.Primary[a]))
	}
	return shares
}

func (d Distribution) share(name string, count int) Share {
	percent := 0.0
	if d.Iterations > 0 {
		percent = float64(count) / float64(d.Iterations) * 100
	}
	return Share{Name: name, Count: count, Percent: percent}
}
