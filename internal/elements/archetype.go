package elements

// FallbackArchetype is returned when the dominant pair is missing from the table.
// With five axes and all ten pairs listed it is unreachable.
const FallbackArchetype = "Cosmic Wanderer"

// Archetype is the named classification of a profile's two strongest axes
type Archetype struct {
	Name      string `json:"name"`
	Primary   Axis   `json:"primaryElement"`
	Secondary Axis   `json:"secondaryElement"`
}

// pair is an unordered axis pair, stored in natural order
type pair struct {
	a, b Axis
}

func makePair(x, y Axis) pair {
	if priority(y) < priority(x) {
		x, y = y, x
	}
	return pair{a: x, b: y}
}

// archetypeTable maps every unordered pair of the five axes to its archetype name.
var archetypeTable = map[pair]string{
	makePair(Water, Metal): "Tidal Sage",
	makePair(Water, Fire):  "Steam Oracle",
	makePair(Water, Wood):  "Ocean Dreamer",
	makePair(Water, Earth): "Marsh Guardian",
	makePair(Metal, Fire):  "Forge Master",
	makePair(Metal, Wood):  "Iron Oak",
	makePair(Metal, Earth): "Stone Sentinel",
	makePair(Fire, Wood):   "Verdant Spark",
	makePair(Fire, Earth):  "Solar Nomad",
	makePair(Wood, Earth):  "Forest Keeper",
}

// ArchetypeNames returns the ten table names followed by the fallback.
func ArchetypeNames() []string {
	names := make([]string, 0, len(archetypeTable)+1)
	for i, x := range axisOrder {
		for _, y := range axisOrder[i+1:] {
			names = append(names, archetypeTable[makePair(x, y)])
		}
	}
	return append(names, FallbackArchetype)
}

// Dominant returns the two highest-scoring axes, breaking ties by natural axis order.
// The radar renderer uses the same selection so both agree on the dominant pair.
func Dominant(p Profile) (primary, secondary Axis) {
	ranked := p.Ranked()
	return ranked[0].Axis, ranked[1].Axis
}

// Resolve classifies a profile into an archetype. It is total: an unknown pair
// resolves to FallbackArchetype.
func Resolve(p Profile) Archetype {
	primary, secondary := Dominant(p)
	name, ok := archetypeTable[makePair(primary, secondary)]
	if !ok {
		name = FallbackArchetype
	}
	return Archetype{
		Name:      name,
		Primary:   primary,
		Secondary: secondary,
	}
}
