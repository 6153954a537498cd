package repositories

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CandidateField is a candidate column that clients may filter or
// autocomplete on. Column names never come from request input directly.
type CandidateField string

const (
	FieldFirstName      CandidateField = "first_name"
	FieldLastName       CandidateField = "last_name"
	FieldAddress        CandidateField = "address"
	FieldDegree         CandidateField = "degree"
	FieldDegreeSchool   CandidateField = "degree_school"
	FieldDiploma        CandidateField = "diploma"
	FieldDiplomaSchool  CandidateField = "diploma_school"
	FieldResumeFileName CandidateField = "resume_file_name"
)

// TextFields lists the searchable text columns in display order.
var TextFields = []CandidateField{
	FieldFirstName,
	FieldLastName,
	FieldAddress,
	FieldDegree,
	FieldDegreeSchool,
	FieldDiploma,
	FieldDiplomaSchool,
	FieldResumeFileName,
}

var sortColumns = map[string]string{
	"id":               "created_at",
	"created_at":       "created_at",
	"date_of_birth":    "date_of_birth",
	"first_name":       "first_name",
	"last_name":        "last_name",
	"address":          "address",
	"degree":           "degree",
	"degree_school":    "degree_school",
	"diploma":          "diploma",
	"diploma_school":   "diploma_school",
	"resume_file_name": "resume_file_name",
}

// ParseTextField maps a request parameter onto an allow-listed column.
func ParseTextField(name string) (CandidateField, bool) {
	for _, f := range TextFields {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// SortColumn resolves a sort_by parameter. An empty name sorts by insertion order.
func SortColumn(name string) (string, bool) {
	if name == "" {
		return "created_at", true
	}
	col, ok := sortColumns[name]
	return col, ok
}

type CandidateFilter struct {
	JobID    *uuid.UUID
	Contains map[CandidateField]string
	MinDOB   *time.Time
	MaxDOB   *time.Time
	SortBy   string
	Desc     bool
	Limit    int
	Offset   int
}

func (f CandidateFilter) apply(db *gorm.DB) *gorm.DB {
	if f.JobID != nil {
		db = db.Where("job_id = ?", *f.JobID)
	}

	// Iterate the allow-list, not the map, so the WHERE order is stable.
	for _, field := range TextFields {
		term, ok := f.Contains[field]
		if !ok || term == "" {
			continue
		}
		db = db.Where(string(field)+" ILIKE ?", containsPattern(term))
	}

	if f.MinDOB != nil {
		db = db.Where("date_of_birth >= ?", f.MinDOB.Format("2006-01-02"))
	}
	if f.MaxDOB != nil {
		db = db.Where("date_of_birth <= ?", f.MaxDOB.Format("2006-01-02"))
	}

	col, ok := SortColumn(f.SortBy)
	if !ok {
		col = "created_at"
	}
	db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: f.Desc})

	if f.Limit > 0 {
		db = db.Limit(f.Limit)
	}
	if f.Offset > 0 {
		db = db.Offset(f.Offset)
	}
	return db
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
