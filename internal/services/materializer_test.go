package services

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/ats-parser/internal/models"
)

func testUploadContext() UploadContext {
	return UploadContext{JobID: uuid.New(), UploadedByID: uuid.New()}
}

func TestBuildCandidate_RoundTrip(t *testing.T) {
	raw := "Here is the data:\n```json\n[{\"first_name\":\"Ann\",\"last_name\":\"Lee\"}]\n```"
	uc := testUploadContext()

	objects, err := ExtractCandidatesJSON(raw, 0)
	require.NoError(t, err)
	require.Len(t, objects, 1)

	c := BuildCandidate(objects[0], "ann.pdf", uc)

	require.NotNil(t, c.FirstName)
	require.NotNil(t, c.LastName)
	assert.Equal(t, "Ann", *c.FirstName)
	assert.Equal(t, "Lee", *c.LastName)
	assert.Nil(t, c.Address)
	assert.Nil(t, c.DateOfBirth)
	assert.Nil(t, c.Diploma)
	assert.Nil(t, c.DiplomaSchool)
	assert.Nil(t, c.Degree)
	assert.Nil(t, c.DegreeSchool)
	assert.Equal(t, "ann.pdf", c.ResumeFileName)
	assert.Equal(t, uc.JobID, c.JobID)
	assert.Equal(t, uc.UploadedByID, c.UploadedByID)
}

func TestBuildCandidate_PlaceholdersBecomeNull(t *testing.T) {
	obj := CandidateObject{
		"first_name":     "  ",
		"last_name":      "None",
		"address":        "null",
		"diploma":        nil,
		"degree":         []any{"BSc"},
		"degree_school":  map[string]any{"name": "UofM"},
		"diploma_school": "",
	}

	c := BuildCandidate(obj, "x.pdf", testUploadContext())

	assert.Nil(t, c.FirstName)
	assert.Nil(t, c.LastName)
	assert.Nil(t, c.Address)
	assert.Nil(t, c.Diploma)
	assert.Nil(t, c.Degree)
	assert.Nil(t, c.DegreeSchool)
	assert.Nil(t, c.DiplomaSchool)
}

func TestBuildCandidate_DateOfBirth(t *testing.T) {
	c := BuildCandidate(CandidateObject{"date_of_birth": "1990-01-01"}, "a.pdf", testUploadContext())
	require.NotNil(t, c.DateOfBirth)
	assert.Equal(t, time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), time.Time(*c.DateOfBirth))

	c = BuildCandidate(CandidateObject{"date_of_birth": "Jan 01, 1990"}, "a.pdf", testUploadContext())
	assert.Nil(t, c.DateOfBirth)

	var extracted map[string]any
	require.NoError(t, json.Unmarshal(c.Extracted, &extracted))
	assert.Equal(t, "Jan 01, 1990", extracted["date_of_birth"])
}

func TestBuildCandidate_ScalarsAndTruncation(t *testing.T) {
	long := make([]rune, 300)
	for i := range long {
		long[i] = 'é'
	}

	c := BuildCandidate(CandidateObject{
		"first_name": json.Number("42"),
		"address":    string(long),
	}, "a.pdf", testUploadContext())

	require.NotNil(t, c.FirstName)
	assert.Equal(t, "42", *c.FirstName)
	require.NotNil(t, c.Address)
	assert.Len(t, []rune(*c.Address), 255)
}

func TestMaterialize_SkipsFailedInserts(t *testing.T) {
	repo := new(MockCandidateRepository)
	repo.On("Create", mock.MatchedBy(func(c *models.Candidate) bool {
		return c.FirstName != nil && *c.FirstName == "Bad"
	})).Return(errors.New("insert failed"))
	repo.On("Create", mock.Anything).Return(nil)

	m := NewMaterializer(repo)
	created := m.Materialize([]CandidateObject{
		{"first_name": "Ann"},
		{"first_name": "Bad"},
		{"first_name": "Raj"},
	}, "batch.pdf", testUploadContext())

	require.Len(t, created, 2)
	assert.Equal(t, "Ann", *created[0].FirstName)
	assert.Equal(t, "Raj", *created[1].FirstName)
	assert.NotEqual(t, uuid.Nil, created[0].ID)
	repo.AssertNumberOfCalls(t, "Create", 3)
}
