package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

const DateLayout = "2006-01-02"

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	FirstName       *string `json:"first_name" validate:"omitempty,max=150"`
	LastName        *string `json:"last_name" validate:"omitempty,max=150"`
	Email           *string `json:"email" validate:"omitempty,email,max=254"`
	CurrentPassword string  `json:"current_password"`
	NewPassword     string  `json:"new_password" validate:"omitempty,min=8,max=72"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsAdmin   bool   `json:"is_admin"`
}

type JobRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Company     string `json:"company" validate:"required,max=255"`
	Country     string `json:"country" validate:"max=100"`
	Province    string `json:"province" validate:"max=100"`
	City        string `json:"city" validate:"max=100"`
	JobType     string `json:"job_type" validate:"max=50"`
	MinSalary   *int64 `json:"min_salary" validate:"omitempty,gte=0"`
	MaxSalary   *int64 `json:"max_salary" validate:"omitempty,gte=0"`
	ClosingDate string `json:"closing_date" validate:"omitempty,datetime=2006-01-02"`
	Description string `json:"description"`
}

type JobResponse struct {
	ID             string              `json:"id"`
	Title          string              `json:"title"`
	Company        string              `json:"company"`
	Country        string              `json:"country"`
	Province       string              `json:"province"`
	City           string              `json:"city"`
	JobType        string              `json:"job_type"`
	MinSalary      *int64              `json:"min_salary"`
	MaxSalary      *int64              `json:"max_salary"`
	ClosingDate    *string             `json:"closing_date"`
	Description    string              `json:"description"`
	CandidateCount *int64              `json:"candidate_count,omitempty"`
	Candidates     []CandidateResponse `json:"candidates,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

type CandidateResponse struct {
	ID             string    `json:"id"`
	FirstName      *string   `json:"first_name"`
	LastName       *string   `json:"last_name"`
	Address        *string   `json:"address"`
	DateOfBirth    *string   `json:"date_of_birth"`
	Diploma        *string   `json:"diploma"`
	DiplomaSchool  *string   `json:"diploma_school"`
	Degree         *string   `json:"degree"`
	DegreeSchool   *string   `json:"degree_school"`
	ResumeFileName string    `json:"resume_file_name"`
	JobID          string    `json:"job_id"`
	UploadedByID   string    `json:"uploaded_by_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// CandidateDetailResponse adds the object the model returned for the candidate.
type CandidateDetailResponse struct {
	CandidateResponse
	Extracted json.RawMessage `json:"extracted,omitempty"`
}

type SearchHit struct {
	Score     float32           `json:"score"`
	Candidate CandidateResponse `json:"candidate"`
}

// UploadResponse keeps the csv_output key for existing upload clients; it
// carries the joined raw model output.
type UploadResponse struct {
	CSVOutput  *string          `json:"csv_output"`
	ParsedData []map[string]any `json:"parsed_data"`
	Files      []FileResult     `json:"files"`
}

type FileResult struct {
	FileName   string  `json:"file_name"`
	Candidates int     `json:"candidates"`
	Error      *string `json:"error,omitempty"`
}

func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsAdmin:   u.IsAdmin,
	}
}

func NewJobResponse(j *Job) JobResponse {
	return JobResponse{
		ID:          j.ID.String(),
		Title:       j.Title,
		Company:     j.Company,
		Country:     j.Country,
		Province:    j.Province,
		City:        j.City,
		JobType:     j.JobType,
		MinSalary:   j.MinSalary,
		MaxSalary:   j.MaxSalary,
		ClosingDate: FormatDate(j.ClosingDate),
		Description: j.Description,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

func NewCandidateResponse(c *Candidate) CandidateResponse {
	return CandidateResponse{
		ID:             c.ID.String(),
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Address:        c.Address,
		DateOfBirth:    FormatDate(c.DateOfBirth),
		Diploma:        c.Diploma,
		DiplomaSchool:  c.DiplomaSchool,
		Degree:         c.Degree,
		DegreeSchool:   c.DegreeSchool,
		ResumeFileName: c.ResumeFileName,
		JobID:          c.JobID.String(),
		UploadedByID:   c.UploadedByID.String(),
		CreatedAt:      c.CreatedAt,
	}
}

func NewCandidateDetailResponse(c *Candidate) CandidateDetailResponse {
	resp := CandidateDetailResponse{CandidateResponse: NewCandidateResponse(c)}
	if len(c.Extracted) > 0 {
		resp.Extracted = json.RawMessage(c.Extracted)
	}
	return resp
}

func NewCandidateResponses(candidates []Candidate) []CandidateResponse {
	out := make([]CandidateResponse, 0, len(candidates))
	for i := range candidates {
		out = append(out, NewCandidateResponse(&candidates[i]))
	}
	return out
}

// ParseDate parses a YYYY-MM-DD string. Empty input yields nil.
func ParseDate(s string) (*datatypes.Date, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, err
	}
	d := datatypes.Date(t)
	return &d, nil
}

func FormatDate(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := time.Time(*d).Format(DateLayout)
	return &s
}
