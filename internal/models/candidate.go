package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Candidate is one person extracted from an uploaded resume. Every extracted
// field is nullable; ResumeFileName is always set.
type Candidate struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FirstName      *string         `gorm:"type:varchar(100)" json:"first_name"`
	LastName       *string         `gorm:"type:varchar(100)" json:"last_name"`
	Address        *string         `gorm:"type:varchar(255)" json:"address"`
	DateOfBirth    *datatypes.Date `json:"-"`
	Diploma        *string         `gorm:"type:varchar(255)" json:"diploma"`
	DiplomaSchool  *string         `gorm:"type:varchar(255)" json:"diploma_school"`
	Degree         *string         `gorm:"type:varchar(255)" json:"degree"`
	DegreeSchool   *string         `gorm:"type:varchar(255)" json:"degree_school"`
	ResumeFileName string          `gorm:"type:varchar(255);not null" json:"resume_file_name"`
	Extracted      datatypes.JSON  `gorm:"type:jsonb" json:"-"`
	JobID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"job_id"`
	UploadedByID   uuid.UUID       `gorm:"type:uuid;not null" json:"uploaded_by_id"`
	CreatedAt      time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relations
	UploadedBy User `gorm:"foreignKey:UploadedByID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Candidate) TableName() string {
	return "candidates"
}
