package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/ats-parser/internal/models"
	"alfredoptarigan/ats-parser/internal/repositories"
	"alfredoptarigan/ats-parser/internal/services"
)

type UploadHandler struct {
	jobRepo     repositories.JobRepository
	pipeline    services.ResumePipeline
	maxFileSize int64
	maxFiles    int
}

func NewUploadHandler(
	jobRepo repositories.JobRepository,
	pipeline services.ResumePipeline,
	maxFileSize int64,
	maxFiles int,
) *UploadHandler {
	return &UploadHandler{
		jobRepo:     jobRepo,
		pipeline:    pipeline,
		maxFileSize: maxFileSize,
		maxFiles:    maxFiles,
	}
}

// HandleUpload serves both POST /jobs/:id/resumes and POST /upload (job_id
// form field). Per-file failures are reported in the body, never as an HTTP
// error.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "failed to parse multipart form")
	}

	rawJobID := c.Params("id")
	if rawJobID == "" {
		if values := form.Value["job_id"]; len(values) > 0 {
			rawJobID = values[0]
		}
	}
	jobID, err := uuid.Parse(rawJobID)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid job ID format")
	}

	files := form.File["resumes"]
	if len(files) == 0 {
		return errorJSON(c, fiber.StatusBadRequest, "No files uploaded. Please attach one or more resumes.")
	}
	if len(files) > h.maxFiles {
		return errorJSON(c, fiber.StatusBadRequest, fmt.Sprintf("Too many files. Max per upload: %d", h.maxFiles))
	}
	for _, fh := range files {
		if fh.Size > h.maxFileSize {
			return errorJSON(c, fiber.StatusBadRequest,
				fmt.Sprintf("%s is too large. Max size: %d bytes", fh.Filename, h.maxFileSize))
		}
	}

	if _, err := h.jobRepo.FindByID(jobID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Job not found")
		}
		return errorJSON(c, fiber.StatusInternalServerError, "failed to load job")
	}

	docs := make([]services.UploadedDocument, 0, len(files))
	for _, fh := range files {
		data, err := readUpload(fh)
		if err != nil {
			return errorJSON(c, fiber.StatusBadRequest, fmt.Sprintf("failed to read %s", fh.Filename))
		}
		docs = append(docs, services.UploadedDocument{FileName: fh.Filename, Data: data})
	}

	result := h.pipeline.ProcessBatch(c.UserContext(), docs, services.UploadContext{
		JobID:        jobID,
		UploadedByID: currentUserID(c),
	})
	log.Printf("📦 Upload for job %s: %d file(s), %d candidate(s)", jobID, len(docs), result.CandidateCount())

	return c.JSON(newUploadResponse(result))
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func newUploadResponse(result *services.BatchResult) models.UploadResponse {
	parsed := make([]map[string]any, 0, len(result.ParsedData))
	for _, obj := range result.ParsedData {
		parsed = append(parsed, map[string]any(obj))
	}

	files := make([]models.FileResult, 0, len(result.Files))
	for _, f := range result.Files {
		fr := models.FileResult{
			FileName:   f.FileName,
			Candidates: len(f.Candidates),
		}
		if f.Err != nil {
			msg := f.Err.Error()
			fr.Error = &msg
		}
		files = append(files, fr)
	}

	return models.UploadResponse{
		CSVOutput:  result.CombinedRawOutput(),
		ParsedData: parsed,
		Files:      files,
	}
}
