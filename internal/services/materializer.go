package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"alfredoptarigan/ats-parser/internal/models"
	"alfredoptarigan/ats-parser/internal/repositories"
)

// UploadContext identifies where an upload belongs.
type UploadContext struct {
	JobID        uuid.UUID
	UploadedByID uuid.UUID
}

// Column widths from models.Candidate.
var fieldWidths = map[string]int{
	"first_name":     100,
	"last_name":      100,
	"address":        255,
	"diploma":        255,
	"diploma_school": 255,
	"degree":         255,
	"degree_school":  255,
}

type Materializer struct {
	candidateRepo repositories.CandidateRepository
}

func NewMaterializer(candidateRepo repositories.CandidateRepository) *Materializer {
	return &Materializer{candidateRepo: candidateRepo}
}

// Materialize persists one candidate per object. Objects that fail to insert
// are logged and skipped; the rest are returned in input order.
func (m *Materializer) Materialize(objects []CandidateObject, fileName string, uc UploadContext) []models.Candidate {
	created := make([]models.Candidate, 0, len(objects))
	for i, obj := range objects {
		candidate := BuildCandidate(obj, fileName, uc)
		if err := m.candidateRepo.Create(&candidate); err != nil {
			log.Printf("❌ Failed to save candidate %d from %s: %v", i+1, fileName, err)
			continue
		}
		created = append(created, candidate)
	}
	return created
}

// BuildCandidate maps a parsed object onto a candidate record. Missing, null
// and blank values become NULL.
func BuildCandidate(obj CandidateObject, fileName string, uc UploadContext) models.Candidate {
	candidate := models.Candidate{
		FirstName:      obj.stringField("first_name"),
		LastName:       obj.stringField("last_name"),
		Address:        obj.stringField("address"),
		Diploma:        obj.stringField("diploma"),
		DiplomaSchool:  obj.stringField("diploma_school"),
		Degree:         obj.stringField("degree"),
		DegreeSchool:   obj.stringField("degree_school"),
		ResumeFileName: fileName,
		JobID:          uc.JobID,
		UploadedByID:   uc.UploadedByID,
	}

	if dob := obj.stringField("date_of_birth"); dob != nil {
		date, err := models.ParseDate(*dob)
		if err != nil {
			// The unparsed value stays available in Extracted.
			log.Printf("⚠️  Ignoring unparseable date_of_birth %q in %s", *dob, fileName)
		} else {
			candidate.DateOfBirth = date
		}
	}

	if raw, err := json.Marshal(obj); err == nil {
		candidate.Extracted = datatypes.JSON(raw)
	}

	return candidate
}

func (o CandidateObject) stringField(key string) *string {
	v, ok := o[key]
	if !ok || v == nil {
		return nil
	}

	var s string
	switch t := v.(type) {
	case string:
		s = t
	case json.Number:
		s = t.String()
	case bool, float64:
		s = fmt.Sprint(t)
	default:
		return nil
	}

	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") || strings.EqualFold(s, "none") {
		return nil
	}

	if width, ok := fieldWidths[key]; ok {
		if runes := []rune(s); len(runes) > width {
			s = string(runes[:width])
		}
	}
	return &s
}
