package elements

// Season is the meteorological season of a birth month
type Season string

// Season constants
const (
	Winter Season = "winter"
	Spring Season = "spring"
	Summer Season = "summer"
	Autumn Season = "autumn"
)

// SeasonOf maps a month (1-12) to its season. Out-of-range months are winter.
func SeasonOf(month int) Season {
	switch month {
	case 12, 1, 2:
		return Winter
	case 3, 4, 5:
		return Spring
	case 6, 7, 8:
		return Summer
	case 9, 10, 11:
		return Autumn
	default:
		return Winter
	}
}

// Reading bundles everything the engine derives from one submission.
type Reading struct {
	Name      string    `json:"name"`
	Birthdate string    `json:"birthdate"`
	Date      Birthdate `json:"date"`
	Profile   Profile   `json:"scores"`
	Archetype Archetype `json:"archetype"`
	Season    Season    `json:"season"`
}

// Evaluate scores and classifies one submission.
func Evaluate(birthdate, name string) Reading {
	date := ParseBirthdate(birthdate)
	profile := CalculateDate(date, name)
	return Reading{
		Name:      name,
		Birthdate: birthdate,
		Date:      date,
		Profile:   profile,
		Archetype: Resolve(profile),
		Season:    SeasonOf(date.Month),
	}
}
