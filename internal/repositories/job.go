package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/ats-parser/internal/models"
)

type JobRepository interface {
	Create(job *models.Job) error
	FindByID(id uuid.UUID) (*models.Job, error)
	List() ([]models.Job, error)
	CountCandidates() (map[uuid.UUID]int64, error)
	Update(job *models.Job) error
	Delete(id uuid.UUID) error
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(job *models.Job) error {
	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

func (r *jobRepository) FindByID(id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := r.db.Where("id = ?", id).First(&job).Error; err != nil {
		return nil, fmt.Errorf("failed to find job: %w", translate(err))
	}
	return &job, nil
}

func (r *jobRepository) List() ([]models.Job, error) {
	var jobs []models.Job
	if err := r.db.Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

func (r *jobRepository) CountCandidates() (map[uuid.UUID]int64, error) {
	var rows []struct {
		JobID uuid.UUID
		Total int64
	}
	err := r.db.Model(&models.Candidate{}).
		Select("job_id, COUNT(*) AS total").
		Group("job_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count candidates: %w", err)
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.JobID] = row.Total
	}
	return counts, nil
}

func (r *jobRepository) Update(job *models.Job) error {
	result := r.db.Model(job).
		Select("title", "company", "country", "province", "city", "job_type",
			"min_salary", "max_salary", "closing_date", "description", "updated_at").
		Updates(job)

	if result.Error != nil {
		return fmt.Errorf("failed to update job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update job: %w", ErrNotFound)
	}
	return nil
}

// Delete removes the job; candidates go with it through the ON DELETE CASCADE key.
func (r *jobRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.Job{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to delete job: %w", ErrNotFound)
	}
	return nil
}
