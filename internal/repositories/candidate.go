package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/ats-parser/internal/models"
)

type CandidateRepository interface {
	Create(candidate *models.Candidate) error
	FindByID(id uuid.UUID) (*models.Candidate, error)
	FindByIDs(ids []uuid.UUID) ([]models.Candidate, error)
	List(filter CandidateFilter) ([]models.Candidate, error)
	Autocomplete(field CandidateField, term string, limit int) ([]string, error)
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

// Create implements CandidateRepository.
func (r *candidateRepository) Create(candidate *models.Candidate) error {
	if err := r.db.Create(candidate).Error; err != nil {
		return fmt.Errorf("failed to create candidate: %w", err)
	}
	return nil
}

// FindByID implements CandidateRepository.
func (r *candidateRepository) FindByID(id uuid.UUID) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := r.db.Where("id = ?", id).First(&candidate).Error; err != nil {
		return nil, fmt.Errorf("failed to find candidate: %w", translate(err))
	}
	return &candidate, nil
}

// FindByIDs implements CandidateRepository. Result order is unspecified.
func (r *candidateRepository) FindByIDs(ids []uuid.UUID) ([]models.Candidate, error) {
	var candidates []models.Candidate
	if len(ids) == 0 {
		return candidates, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to find candidates: %w", err)
	}
	return candidates, nil
}

// List implements CandidateRepository.
func (r *candidateRepository) List(filter CandidateFilter) ([]models.Candidate, error) {
	var candidates []models.Candidate
	if err := filter.apply(r.db.Model(&models.Candidate{})).Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	return candidates, nil
}

// Autocomplete implements CandidateRepository.
func (r *candidateRepository) Autocomplete(field CandidateField, term string, limit int) ([]string, error) {
	if _, ok := ParseTextField(string(field)); !ok {
		return []string{}, nil
	}

	col := string(field)
	values := []string{}
	err := r.db.Model(&models.Candidate{}).
		Distinct(col).
		Where(col+" IS NOT NULL").
		Where(col+" ILIKE ?", containsPattern(term)).
		Order(col).
		Limit(limit).
		Pluck(col, &values).Error
	if err != nil {
		return nil, fmt.Errorf("failed to autocomplete %s: %w", col, err)
	}
	return values, nil
}
