package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"alfredoptarigan/ats-parser/internal/models"
	"alfredoptarigan/ats-parser/internal/repositories"
	"alfredoptarigan/ats-parser/internal/services"
)

type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) Create(job *models.Job) error {
	args := m.Called(job)
	if args.Error(0) == nil && job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockJobRepository) FindByID(id uuid.UUID) (*models.Job, error) {
	args := m.Called(id)
	if v := args.Get(0); v != nil {
		return v.(*models.Job), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJobRepository) List() ([]models.Job, error) {
	args := m.Called()
	return args.Get(0).([]models.Job), args.Error(1)
}

func (m *MockJobRepository) CountCandidates() (map[uuid.UUID]int64, error) {
	args := m.Called()
	return args.Get(0).(map[uuid.UUID]int64), args.Error(1)
}

func (m *MockJobRepository) Update(job *models.Job) error {
	return m.Called(job).Error(0)
}

func (m *MockJobRepository) Delete(id uuid.UUID) error {
	return m.Called(id).Error(0)
}

type MockCandidateRepository struct {
	mock.Mock
}

func (m *MockCandidateRepository) Create(candidate *models.Candidate) error {
	return m.Called(candidate).Error(0)
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

type MockResumePipeline struct {
	mock.Mock
}

func (m *MockResumePipeline) ProcessBatch(ctx context.Context, docs []services.UploadedDocument, uc services.UploadContext) *services.BatchResult {
	return m.Called(ctx, docs, uc).Get(0).(*services.BatchResult)
}

type MockResumeIndex struct {
	mock.Mock
}

func (m *MockResumeIndex) IndexResume(ctx context.Context, text string, candidates []models.Candidate) error {
	return m.Called(ctx, text, candidates).Error(0)
}

func (m *MockResumeIndex) Search(ctx context.Context, query string, jobID *uuid.UUID, limit int) ([]services.RankedCandidate, error) {
	args := m.Called(ctx, query, jobID, limit)
	if v := args.Get(0); v != nil {
		return v.([]services.RankedCandidate), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResumeIndex) RemoveJob(ctx context.Context, jobID uuid.UUID) error {
	return m.Called(ctx, jobID).Error(0)
}

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) CandidatesXLSX(candidates []models.Candidate) ([]byte, error) {
	args := m.Called(candidates)
	if v := args.Get(0); v != nil {
		return v.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(login, password string) (*models.User, error) {
	args := m.Called(login, password)
	if v := args.Get(0); v != nil {
		return v.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthService) CurrentUser(id uuid.UUID) (*models.User, error) {
	args := m.Called(id)
	if v := args.Get(0); v != nil {
		return v.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthService) UpdateProfile(id uuid.UUID, req models.UpdateProfileRequest) (*models.User, error) {
	args := m.Called(id, req)
	if v := args.Get(0); v != nil {
		return v.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthService) CreateUser(user *models.User, password string) error {
	return m.Called(user, password).Error(0)
}

// newTestApp returns an app whose requests are already authenticated as userID.
func newTestApp(userID uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(userIDKey, userID)
		return c.Next()
	})
	return app
}
