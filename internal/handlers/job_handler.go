package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ats-parser/internal/models"
	"alfredoptarigan/ats-parser/internal/repositories"
	"alfredoptarigan/ats-parser/internal/services"
)

type JobHandler struct {
	jobRepo       repositories.JobRepository
	candidateRepo repositories.CandidateRepository
	index         services.ResumeIndex
}

// NewJobHandler builds the job endpoints. index may be nil.
func NewJobHandler(
	jobRepo repositories.JobRepository,
	candidateRepo repositories.CandidateRepository,
	index services.ResumeIndex,
) *JobHandler {
	return &JobHandler{
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		index:         index,
	}
}

func (h *JobHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.JobRequest
	if err := bindJSON(c, &req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	job := models.Job{}
	if err := applyJobRequest(&job, req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}
	createdBy := currentUserID(c)
	job.CreatedByID = &createdBy

	if err := h.jobRepo.Create(&job); err != nil {
		log.Printf("❌ Failed to create job: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "failed to create job")
	}

	return c.Status(fiber.StatusCreated).JSON(models.NewJobResponse(&job))
}

func (h *JobHandler) HandleList(c *fiber.Ctx) error {
	jobs, err := h.jobRepo.List()
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "failed to list jobs")
	}
	counts, err := h.jobRepo.CountCandidates()
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "failed to count candidates")
	}

	out := make([]models.JobResponse, 0, len(jobs))
	for i := range jobs {
		resp := models.NewJobResponse(&jobs[i])
		total := counts[jobs[i].ID]
		resp.CandidateCount = &total
		out = append(out, resp)
	}
	return c.JSON(out)
}

func (h *JobHandler) HandleGet(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid job ID format")
	}

	job, err := h.jobRepo.FindByID(id)
	if err != nil {
		return h.jobLookupError(c, err)
	}

	candidates, err := h.candidateRepo.List(repositories.CandidateFilter{JobID: &id})
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "failed to load candidates")
	}

	resp := models.NewJobResponse(job)
	total := int64(len(candidates))
	resp.CandidateCount = &total
	resp.Candidates = models.NewCandidateResponses(candidates)
	return c.JSON(resp)
}

func (h *JobHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid job ID format")
	}

	var req models.JobRequest
	if err := bindJSON(c, &req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	job, err := h.jobRepo.FindByID(id)
	if err != nil {
		return h.jobLookupError(c, err)
	}
	if err := applyJobRequest(job, req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.jobRepo.Update(job); err != nil {
		return h.jobLookupError(c, err)
	}
	return c.JSON(models.NewJobResponse(job))
}

// HandleDelete removes the job; candidates go with it through the foreign key.
func (h *JobHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid job ID format")
	}

	if err := h.jobRepo.Delete(id); err != nil {
		return h.jobLookupError(c, err)
	}

	if h.index != nil {
		if err := h.index.RemoveJob(c.UserContext(), id); err != nil {
			log.Printf("⚠️  Failed to remove index vectors for job %s: %v", id, err)
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *JobHandler) jobLookupError(c *fiber.Ctx, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return errorJSON(c, fiber.StatusNotFound, "Job not found")
	}
	log.Printf("❌ Job query failed: %v", err)
	return errorJSON(c, fiber.StatusInternalServerError, "failed to load job")
}

func applyJobRequest(job *models.Job, req models.JobRequest) error {
	if req.MinSalary != nil && req.MaxSalary != nil && *req.MinSalary > *req.MaxSalary {
		return errors.New("min_salary must not exceed max_salary")
	}

	closing, err := models.ParseDate(req.ClosingDate)
	if err != nil {
		return errors.New("closing_date must be YYYY-MM-DD")
	}

	job.Title = strings.TrimSpace(req.Title)
	job.Company = strings.TrimSpace(req.Company)
	job.Country = req.Country
	job.Province = req.Province
	job.City = req.City
	job.JobType = req.JobType
	job.MinSalary = req.MinSalary
	job.MaxSalary = req.MaxSalary
	job.ClosingDate = closing
	job.Description = req.Description
	return nil
}
