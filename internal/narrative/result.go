package narrative

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/elemental-vibe/internal/llm"
	"github.com/jonathan/elemental-vibe/internal/schemas"
	rootschemas "github.com/jonathan/elemental-vibe/schemas"
)

// Variant selects the narrative response shape
type Variant string

// Supported variants
const (
	VariantFull    Variant = "full"
	VariantMinimal Variant = "minimal"
)

// ParseVariant converts a variant name. Empty means VariantFull.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantFull, "":
		return VariantFull, nil
	case VariantMinimal:
		return VariantMinimal, nil
	default:
		return "", fmt.Errorf("unknown narrative variant %q (want full or minimal)", s)
	}
}

// Talismans is the nested talisman record of a full narrative
type Talismans struct {
	Color  string `json:"color"`
	Item   string `json:"item"`
	Mantra string `json:"mantra"`
}

// Result is the full narrative returned by the collaborator. Its text is opaque.
type Result struct {
	Opening            string    `json:"opening"`
	BirthImagery       string    `json:"birthImagery"`
	SoulCity           string    `json:"soulCity"`
	ComplementarySouls string    `json:"complementarySouls"`
	Talismans          Talismans `json:"talismans"`
	PS                 string    `json:"ps"`
	Element            string    `json:"element"`
	Color              string    `json:"color"`
}

// MinimalResult is the short narrative variant
type MinimalResult struct {
	Element     string `json:"element"`
	Color       string `json:"color"`
	Description string `json:"description"`
	Vibe        string `json:"vibe"`
}

// Outcome is a successful Run. Exactly one of Full or Minimal is set.
type Outcome struct {
	Variant  Variant        `json:"variant"`
	Full     *Result        `json:"full,omitempty"`
	Minimal  *MinimalResult `json:"minimal,omitempty"`
	Attempts int            `json:"attempts"`
	Elapsed  time.Duration  `json:"elapsed"`
}

// Color returns the display color of whichever variant is set.
func (o *Outcome) Color() string {
	switch {
	case o == nil:
		return ""
	case o.Full != nil:
		return o.Full.Color
	case o.Minimal != nil:
		return o.Minimal.Color
	default:
		return ""
	}
}

// ResponseSchema returns the structural schema sent with the request.
func ResponseSchema(v Variant) *llm.Schema {
	if v == VariantMinimal {
		return llm.Object(map[string]*llm.Schema{
			"element":     llm.String(""),
			"color":       llm.String("Hex color code"),
			"description": llm.String(""),
			"vibe":        llm.String(""),
		}, "element", "color", "description", "vibe")
	}
	return llm.Object(map[string]*llm.Schema{
		"opening":            llm.String(""),
		"birthImagery":       llm.String(""),
		"soulCity":           llm.String(""),
		"complementarySouls": llm.String(""),
		"talismans": llm.Object(map[string]*llm.Schema{
			"color":  llm.String(""),
			"item":   llm.String(""),
			"mantra": llm.String(""),
		}, "color", "item", "mantra"),
		"ps":      llm.String(""),
		"element": llm.String(""),
		"color":   llm.String("Hex color code"),
	}, "opening", "birthImagery", "soulCity", "complementarySouls", "talismans", "ps", "element", "color")
}

// compiled validators, one per variant
var (
	validatorsOnce sync.Once
	validators     map[Variant]*schemas.Validator
	validatorsErr  error
)

func validatorFor(v Variant) (*schemas.Validator, error) {
	validatorsOnce.Do(func() {
		validators = make(map[Variant]*schemas.Validator, 2)
		for variant, file := range map[Variant]string{
			VariantFull:    rootschemas.Narrative,
			VariantMinimal: rootschemas.NarrativeMinimal,
		} {
			content, err := rootschemas.Load(file)
			if err != nil {
				validatorsErr = err
				return
			}
			compiled, err := schemas.Compile(file, content)
			if err != nil {
				validatorsErr = err
				return
			}
			validators[variant] = compiled
		}
	})
	if validatorsErr != nil {
		return nil, validatorsErr
	}
	return validators[v], nil
}

// ParseResult validates a collaborator response and decodes it. Any missing or
// non-string required field yields a *ParseError.
func ParseResult(text string, v Variant) (*Outcome, error) {
	if v == "" {
		v = VariantFull
	}
	validator, err := validatorFor(v)
	if err != nil {
		return nil, &ParseError{Message: "narrative schema unavailable", Cause: err}
	}
	if validator == nil {
		return nil, &ParseError{Message: fmt.Sprintf("no schema for variant %q", v)}
	}

	cleaned := llm.CleanJSONBlock(text)
	if err := validator.Validate(cleaned); err != nil {
		msg := "response does not match " + validator.Name()
		var ve *schemas.ValidationError
		if errors.As(err, &ve) {
			msg += " (fields: " + strings.Join(ve.Fields(), ", ") + ")"
		}
		return nil, &ParseError{Message: msg, Cause: err}
	}

	outcome := &Outcome{Variant: v}
	var target any
	if v == VariantMinimal {
		outcome.Minimal = &MinimalResult{}
		target = outcome.Minimal
	} else {
		outcome.Full = &Result{}
		target = outcome.Full
	}
	if err := json.Unmarshal([]byte(cleaned), target); err != nil {
		return nil, &ParseError{Message: "failed to parse JSON response", Cause: err}
	}
	return outcome, nil
}
