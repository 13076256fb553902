// Package narrative obtains the narrative embellishment of an elemental reading
// from the text-generation collaborator, under a bounded retry policy and a
// minimum-duration floor.
package narrative

import (
	"strconv"
	"strings"

	"github.com/jonathan/elemental-vibe/internal/elements"
	"github.com/jonathan/elemental-vibe/internal/prompts"
)

const promptFile = "narrative.json"

// Input is everything the collaborator request is built from. Profile and
// Archetype are the source of truth the narrative must not contradict.
type Input struct {
	Name      string
	Birthdate string
	Profile   elements.Profile
	Archetype elements.Archetype
}

// InputFromReading builds an Input from an evaluated reading.
func InputFromReading(r elements.Reading) Input {
	return Input{
		Name:      r.Name,
		Birthdate: r.Birthdate,
		Profile:   r.Profile,
		Archetype: r.Archetype,
	}
}

// Season returns the birth season forwarded to the collaborator.
func (in Input) Season() elements.Season {
	return elements.SeasonOf(elements.ParseBirthdate(in.Birthdate).Month)
}

// promptKey returns the template key for a variant
func promptKey(v Variant) string {
	if v == VariantMinimal {
		return "minimal-profile"
	}
	return "full-profile"
}

// BuildPrompt renders the collaborator instruction for in.
func BuildPrompt(in Input, v Variant) (string, error) {
	template, err := prompts.Get(promptFile, promptKey(v))
	if err != nil {
		return "", err
	}

	weakest := elements.Weakest(in.Profile, 2)
	names := make([]string, len(weakest))
	for i, a := range weakest {
		names[i] = string(a)
	}

	return prompts.FormatStrict(template, map[string]string{
		"Name":           in.Name,
		"Primary":        string(in.Archetype.Primary),
		"PrimaryScore":   strconv.Itoa(in.Profile.Score(in.Archetype.Primary)),
		"Secondary":      string(in.Archetype.Secondary),
		"SecondaryScore": strconv.Itoa(in.Profile.Score(in.Archetype.Secondary)),
		"Archetype":      in.Archetype.Name,
		"Season":         string(in.Season()),
		"Weakest":        strings.Join(names, ", "),
	})
}
