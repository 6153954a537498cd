package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Job struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title       string          `gorm:"type:varchar(255);not null" json:"title"`
	Company     string          `gorm:"type:varchar(255);not null" json:"company"`
	Country     string          `gorm:"type:varchar(100)" json:"country"`
	Province    string          `gorm:"type:varchar(100)" json:"province"`
	City        string          `gorm:"type:varchar(100)" json:"city"`
	JobType     string          `gorm:"type:varchar(50)" json:"job_type"`
	MinSalary   *int64          `json:"min_salary,omitempty"`
	MaxSalary   *int64          `json:"max_salary,omitempty"`
	ClosingDate *datatypes.Date `json:"-"`
	Description string          `gorm:"type:text" json:"description"`
	CreatedByID *uuid.UUID      `gorm:"type:uuid" json:"created_by_id,omitempty"`
	CreatedAt   time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	CreatedBy  *User       `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"-"`
	Candidates []Candidate `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Job) TableName() string {
	return "jobs"
}
