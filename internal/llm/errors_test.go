package llm

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
)

func TestWrapAPIError_GoogleAPIStatus(t *testing.T) {
	cause := fmt.Errorf("transport: %w", &googleapi.Error{Code: http.StatusTooManyRequests, Message: "quota"})
	err := wrapAPIError("failed to generate content", cause)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "status 429")
	assert.ErrorIs(t, err, cause)
}

func TestWrapAPIError_UnknownStatus(t *testing.T) {
	err := wrapAPIError("boom", errors.New("connection reset"))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 0, apiErr.StatusCode)
	assert.NotContains(t, err.Error(), "status")
	assert.Nil(t, wrapAPIError("nothing", nil))
}

func TestGRPCToHTTP(t *testing.T) {
	assert.Equal(t, http.StatusTooManyRequests, grpcToHTTP(codes.ResourceExhausted))
	assert.Equal(t, http.StatusServiceUnavailable, grpcToHTTP(codes.Unavailable))
	assert.Equal(t, http.StatusBadRequest, grpcToHTTP(codes.InvalidArgument))
	assert.Equal(t, 0, grpcToHTTP(codes.Aborted))
}

func TestSchemaToGenai(t *testing.T) {
	schema := Object(map[string]*Schema{
		"opening": String(""),
		"talismans": Object(map[string]*Schema{
			"color": String("poetic color"),
		}, "color"),
	}, "opening", "talismans")

	out := schema.toGenai()
	require.NotNil(t, out)
	assert.Equal(t, genai.TypeObject, out.Type)
	assert.Equal(t, []string{"opening", "talismans"}, out.Required)
	assert.Equal(t, genai.TypeString, out.Properties["opening"].Type)
	assert.Equal(t, genai.TypeObject, out.Properties["talismans"].Type)
	assert.Equal(t, "poetic color", out.Properties["talismans"].Properties["color"].Description)

	var nilSchema *Schema
	assert.Nil(t, nilSchema.toGenai())
}

func TestExtractTextFromResponse(t *testing.T) {
	_, err := responseText(&genai.GenerateContentResponse{})
	assert.Error(t, err)

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"a":`), genai.Text(`"b"}`)}},
		}},
	}
	text, err := responseText(resp)
	require.NoError(t, err)
	assert.Equal(t, `{"a":"b"}`, text)
}
