package llm

import "github.com/google/generative-ai-go/genai"

// SchemaType is the JSON type of a structured-output schema node
type SchemaType string

// Supported schema node types
const (
	TypeString SchemaType = "string"
	TypeObject SchemaType = "object"
)

// Schema declares the response shape requested from the model. It is
// provider-neutral and converted per client.
type Schema struct {
	Type        SchemaType
	Description string
	Properties  map[string]*Schema
	Required    []string
}

// String returns a string-typed schema node.
func String(description string) *Schema {
	return &Schema{Type: TypeString, Description: description}
}

// Object returns an object schema whose listed properties are all required.
func Object(properties map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: TypeObject, Properties: properties, Required: required}
}

// toGenai converts a Schema into the Gemini SDK representation
func (s *Schema) toGenai() *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Description: s.Description,
		Required:    append([]string(nil), s.Required...),
	}
	switch s.Type {
	case TypeObject:
		out.Type = genai.TypeObject
	default:
		out.Type = genai.TypeString
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = prop.toGenai()
		}
	}
	return out
}
