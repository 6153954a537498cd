package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"alfredoptarigan/ats-parser/internal/models"
	"alfredoptarigan/ats-parser/internal/repositories"
)

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) GenerateTextWithRetry(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type MockDocumentConverter struct {
	mock.Mock
}

func (m *MockDocumentConverter) Convert(ctx context.Context, doc UploadedDocument) (string, error) {
	args := m.Called(ctx, doc)
	return args.String(0), args.Error(1)
}

type MockImageTranscriber struct {
	mock.Mock
}

func (m *MockImageTranscriber) TranscribeImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	args := m.Called(ctx, data, mimeType)
	return args.String(0), args.Error(1)
}

type MockEmbedder struct {
	mock.Mock
}

func (m *MockEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if v := args.Get(0); v != nil {
		return v.([]float32), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockQdrantService struct {
	mock.Mock
}

func (m *MockQdrantService) InitCollection(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockQdrantService) UpsertVectors(ctx context.Context, vectors []ResumeVector) error {
	return m.Called(ctx, vectors).Error(0)
}

func (m *MockQdrantService) SearchSimilar(ctx context.Context, queryEmbedding []float32, jobID *uuid.UUID, limit int) ([]SearchResult, error) {
	args := m.Called(ctx, queryEmbedding, jobID, limit)
	if v := args.Get(0); v != nil {
		return v.([]SearchResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockQdrantService) DeleteByJob(ctx context.Context, jobID uuid.UUID) error {
	return m.Called(ctx, jobID).Error(0)
}

type MockResumeIndexer struct {
	mock.Mock
}

func (m *MockResumeIndexer) IndexResume(ctx context.Context, text string, candidates []models.Candidate) error {
	return m.Called(ctx, text, candidates).Error(0)
}

// MockCandidateRepository assigns ids on Create like the database would.
type MockCandidateRepository struct {
	mock.Mock
}

func (m *MockCandidateRepository) Create(candidate *models.Candidate) error {
	args := m.Called(candidate)
	if args.Error(0) == nil && candidate.ID == uuid.Nil {
		candidate.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockCandidateRepository) FindByID(id uuid.UUID) (*models.Candidate, error) {
	args := m.Called(id)
	if v := args.Get(0); v != nil {
		return v.(*models.Candidate), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCandidateRepository) FindByIDs(ids []uuid.UUID) ([]models.Candidate, error) {
	args := m.Called(ids)
	return args.Get(0).([]models.Candidate), args.Error(1)
}

func (m *MockCandidateRepository) List(filter repositories.CandidateFilter) ([]models.Candidate, error) {
	args := m.Called(filter)
	return args.Get(0).([]models.Candidate), args.Error(1)
}

func (m *MockCandidateRepository) Autocomplete(field repositories.CandidateField, term string, limit int) ([]string, error) {
	args := m.Called(field, term, limit)
	return args.Get(0).([]string), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *MockUserRepository) FindByID(id uuid.UUID) (*models.User, error) {
	args := m.Called(id)
	if v := args.Get(0); v != nil {
		return v.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByLogin(login string) (*models.User, error) {
	args := m.Called(login)
	if v := args.Get(0); v != nil {
		return v.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) EmailTaken(email string, exceptID uuid.UUID) (bool, error) {
	args := m.Called(email, exceptID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	return m.Called(user).Error(0)
}
