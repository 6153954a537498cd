package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCandidatesJSON_FencedBlock(t *testing.T) {
	raw := "Here is the data:\n```json\n[{\"first_name\":\"Ann\",\"last_name\":\"Lee\"}]\n```"

	objects, err := ExtractCandidatesJSON(raw, 0)

	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, CandidateObject{"first_name": "Ann", "last_name": "Lee"}, objects[0])
}

func TestExtractCandidatesJSON_FencedPreferredOverBareArray(t *testing.T) {
	raw := "Scores: [1, 2, 3]\n```json\n[{\"first_name\":\"Ann\"}]\n```\nAlso [\"noise\"]"

	objects, err := ExtractCandidatesJSON(raw, 0)

	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "Ann", objects[0]["first_name"])
}

func TestExtractCandidatesJSON_FenceTagIsCaseInsensitive(t *testing.T) {
	raw := "```JSON\n[{\"first_name\":\"Bo\"}]\n```"

	objects, err := ExtractCandidatesJSON(raw, 0)

	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "Bo", objects[0]["first_name"])
}

func TestExtractCandidatesJSON_BareArrayFallback(t *testing.T) {
	raw := "Sure! [{\"first_name\":\"Ann\"},{\"first_name\":\"Raj\"}] Hope this helps."

	objects, err := ExtractCandidatesJSON(raw, 0)

	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, "Raj", objects[1]["first_name"])
}

func TestExtractCandidatesJSON_EmptyArray(t *testing.T) {
	objects, err := ExtractCandidatesJSON("```json\n[]\n```", 0)

	require.NoError(t, err)
	assert.Empty(t, objects)
}

func TestExtractCandidatesJSON_NoJSONFound(t *testing.T) {
	raw := "I'm sorry, I cannot help with that request."

	objects, err := ExtractCandidatesJSON(raw, 0)

	assert.Nil(t, objects)
	require.ErrorIs(t, err, ErrNoJSONFound)

	var extractErr *ExtractionError
	require.True(t, errors.As(err, &extractErr))
	assert.Equal(t, raw, extractErr.Raw)
}

func TestExtractCandidatesJSON_MalformedKeepsRaw(t *testing.T) {
	raw := "```json\n[{\"first_name\": \"Ann\",}]\n```"

	_, err := ExtractCandidatesJSON(raw, 0)

	require.ErrorIs(t, err, ErrMalformedJSON)
	assert.NotErrorIs(t, err, ErrNoJSONFound)

	var extractErr *ExtractionError
	require.True(t, errors.As(err, &extractErr))
	assert.Equal(t, raw, extractErr.Raw)
}

func TestExtractCandidatesJSON_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"object instead of array", "```json\n{\"first_name\":\"Ann\"}\n```"},
		{"trailing value", "```json\n[] []\n```"},
		{"unterminated array", "```json\n[{\"first_name\":\"Ann\"}\n```"},
		{"bare array with invalid content", "data: [not json]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractCandidatesJSON(tt.raw, 0)
			assert.ErrorIs(t, err, ErrMalformedJSON)
		})
	}
}

func TestExtractCandidatesJSON_SkipsNonObjectElements(t *testing.T) {
	raw := `[{"first_name":"Ann"}, "stray", 42, null]`

	objects, err := ExtractCandidatesJSON(raw, 0)

	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "Ann", objects[0]["first_name"])
}

func TestExtractCandidatesJSON_TooLarge(t *testing.T) {
	raw := "[" + strings.Repeat(" ", 64) + "]"

	_, err := ExtractCandidatesJSON(raw, 16)

	require.ErrorIs(t, err, ErrResponseTooLarge)
	var extractErr *ExtractionError
	require.True(t, errors.As(err, &extractErr))
	assert.Equal(t, raw, extractErr.Raw)
}

func TestCheckCandidateSchema(t *testing.T) {
	objects, err := ExtractCandidatesJSON(`[{"first_name":"Ann","date_of_birth":null,"extra":1}]`, 0)
	require.NoError(t, err)
	assert.NoError(t, checkCandidateSchema(objects[0]))

	objects, err = ExtractCandidatesJSON(`[{"first_name":["Ann"],"degree":7}]`, 0)
	require.NoError(t, err)
	require.Len(t, objects, 1, "schema mismatches are reported, not dropped")
	assert.Error(t, checkCandidateSchema(objects[0]))
}
