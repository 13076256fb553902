package elements

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Bonus points awarded by each scoring rule
const (
	BaseScore   = 20
	YearBonus   = 25
	MonthBonus  = 20
	DayBonus    = 15
	LengthBonus = 10
	LetterBonus = 10
)

// Fallbacks used when a birthdate component is missing or unparseable
const (
	DefaultMonth = 1
	DefaultDay   = 1
	DefaultYear  = 2000
)

// Birthdate is a parsed month/day/year triple
type Birthdate struct {
	Month int `json:"month"`
	Day   int `json:"day"`
	Year  int `json:"year"`
}

// ParseBirthdate parses "MM/DD/YYYY". It never fails: a missing, garbled or zero
// component falls back to DefaultMonth, DefaultDay or DefaultYear.
func ParseBirthdate(s string) Birthdate {
	parts := strings.Split(s, "/")
	component := func(i, fallback int) int {
		if i >= len(parts) {
			return fallback
		}
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n == 0 {
			return fallback
		}
		return n
	}
	return Birthdate{
		Month: component(0, DefaultMonth),
		Day:   component(1, DefaultDay),
		Year:  component(2, DefaultYear),
	}
}

// residues maps a remainder mod 5 onto an axis (day and name-length rules)
var residues = [5]Axis{Metal, Water, Wood, Fire, Earth}

// residueAxis uses the truncated remainder, so negative values award nothing
func residueAxis(n int) (Axis, bool) {
	r := n % 5
	if r < 0 {
		return "", false
	}
	return residues[r], true
}

// Calculate scores a birthdate ("MM/DD/YYYY") and a name into a Profile.
// For a letter-initial name, an in-range month and a positive day and year the
// scores sum to 180.
func Calculate(birthdate string, name string) Profile {
	return CalculateDate(ParseBirthdate(birthdate), name)
}

// CalculateDate is Calculate for an already parsed birthdate.
func CalculateDate(date Birthdate, name string) Profile {
	p := Profile{
		Fire:  BaseScore,
		Water: BaseScore,
		Wood:  BaseScore,
		Earth: BaseScore,
		Metal: BaseScore,
	}

	if a, ok := yearAxis(date.Year); ok {
		p.add(a, YearBonus)
	}
	if a, ok := monthAxis(date.Month); ok {
		p.add(a, MonthBonus)
	}
	if a, ok := residueAxis(date.Day); ok {
		p.add(a, DayBonus)
	}
	if a, ok := residueAxis(utf8.RuneCountInString(name)); ok {
		p.add(a, LengthBonus)
	}
	if a, ok := letterAxis(name); ok {
		p.add(a, LetterBonus)
	}

	return p
}

// yearAxis buckets the last decimal digit of the year. A negative year has a
// negative digit and awards nothing.
func yearAxis(year int) (Axis, bool) {
	switch year % 10 {
	case 0, 1:
		return Metal, true
	case 2, 3:
		return Water, true
	case 4, 5:
		return Wood, true
	case 6, 7:
		return Fire, true
	case 8, 9:
		return Earth, true
	default:
		return "", false
	}
}

// monthAxis groups the twelve months; out-of-range months award nothing
func monthAxis(month int) (Axis, bool) {
	switch month {
	case 12, 1, 11:
		return Water, true
	case 2, 3:
		return Wood, true
	case 5, 6, 7:
		return Fire, true
	case 8, 9, 10:
		return Metal, true
	case 4:
		return Earth, true
	default:
		return "", false
	}
}

// letterAxis buckets the upper-cased first character. An empty name counts as 'A';
// a first character outside A-Z awards nothing.
func letterAxis(name string) (Axis, bool) {
	first := 'A'
	if r, size := utf8.DecodeRuneInString(name); size > 0 && r != utf8.RuneError {
		first = unicode.ToUpper(r)
	}
	switch {
	case first >= 'A' && first <= 'E':
		return Wood, true
	case first >= 'F' && first <= 'J':
		return Fire, true
	case first >= 'K' && first <= 'O':
		return Earth, true
	case first >= 'P' && first <= 'T':
		return Metal, true
	case first >= 'U' && first <= 'Z':
		return Water, true
	default:
		return "", false
	}
}
