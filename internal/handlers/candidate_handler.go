package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/ats-parser/internal/models"
	"alfredoptarigan/ats-parser/internal/repositories"
	"alfredoptarigan/ats-parser/internal/services"
)

const (
	autocompleteLimit  = 20
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

type CandidateHandler struct {
	candidateRepo repositories.CandidateRepository
	exportService services.ExportService
	index         services.ResumeIndex
}

// NewCandidateHandler builds the candidate endpoints. index may be nil, in
// which case search answers 503.
func NewCandidateHandler(
	candidateRepo repositories.CandidateRepository,
	exportService services.ExportService,
	index services.ResumeIndex,
) *CandidateHandler {
	return &CandidateHandler{
		candidateRepo: candidateRepo,
		exportService: exportService,
		index:         index,
	}
}

func (h *CandidateHandler) HandleList(c *fiber.Ctx) error {
	filter, err := parseCandidateFilter(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}
	filter.Limit = c.QueryInt("limit", 0)
	filter.Offset = c.QueryInt("offset", 0)

	candidates, err := h.candidateRepo.List(filter)
	if err != nil {
		log.Printf("❌ Candidate query failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "failed to list candidates")
	}
	return c.JSON(models.NewCandidateResponses(candidates))
}

func (h *CandidateHandler) HandleGet(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid candidate ID format")
	}

	candidate, err := h.candidateRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Candidate not found")
		}
		log.Printf("❌ Candidate query failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "failed to load candidate")
	}
	return c.JSON(models.NewCandidateDetailResponse(candidate))
}

func (h *CandidateHandler) HandleAutocomplete(c *fiber.Ctx) error {
	field, ok := repositories.ParseTextField(c.Query("field"))
	term := strings.TrimSpace(c.Query("term"))
	if !ok || term == "" {
		return c.JSON([]string{})
	}

	values, err := h.candidateRepo.Autocomplete(field, term, autocompleteLimit)
	if err != nil {
		log.Printf("❌ Autocomplete failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "failed to autocomplete")
	}
	return c.JSON(values)
}

func (h *CandidateHandler) HandleExport(c *fiber.Ctx) error {
	filter, err := parseCandidateFilter(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	candidates, err := h.candidateRepo.List(filter)
	if err != nil {
		log.Printf("❌ Candidate query failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "failed to list candidates")
	}

	data, err := h.exportService.CandidatesXLSX(candidates)
	if err != nil {
		log.Printf("❌ Export failed: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "failed to build export")
	}

	c.Attachment(fmt.Sprintf("candidates_%s.xlsx", time.Now().Format("20060102_150405")))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(data)
}

func (h *CandidateHandler) HandleSearch(c *fiber.Ctx) error {
	if h.index == nil {
		return errorJSON(c, fiber.StatusServiceUnavailable, "Semantic search is not configured")
	}

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return errorJSON(c, fiber.StatusBadRequest, "q is required")
	}

	var jobID *uuid.UUID
	if raw := c.Query("job_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return errorJSON(c, fiber.StatusBadRequest, "Invalid job ID format")
		}
		jobID = &id
	}

	limit := c.QueryInt("limit", defaultSearchLimit)
	if limit <= 0 || limit > maxSearchLimit {
		limit = defaultSearchLimit
	}

	ranked, err := h.index.Search(c.UserContext(), query, jobID, limit)
	if err != nil {
		log.Printf("❌ Semantic search failed: %v", err)
		return errorJSON(c, fiber.StatusBadGateway, "search failed")
	}

	ids := make([]uuid.UUID, 0, len(ranked))
	for _, r := range ranked {
		ids = append(ids, r.CandidateID)
	}
	candidates, err := h.candidateRepo.FindByIDs(ids)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "failed to load candidates")
	}

	byID := make(map[uuid.UUID]*models.Candidate, len(candidates))
	for i := range candidates {
		byID[candidates[i].ID] = &candidates[i]
	}

	// Vectors can outlive their rows briefly; skip hits without a candidate.
	hits := make([]models.SearchHit, 0, len(ranked))
	for _, r := range ranked {
		cand, ok := byID[r.CandidateID]
		if !ok {
			continue
		}
		hits = append(hits, models.SearchHit{
			Score:     r.Score,
			Candidate: models.NewCandidateResponse(cand),
		})
	}
	return c.JSON(hits)
}

func parseCandidateFilter(c *fiber.Ctx) (repositories.CandidateFilter, error) {
	filter := repositories.CandidateFilter{
		Contains: make(map[repositories.CandidateField]string),
	}

	for _, field := range repositories.TextFields {
		if v := strings.TrimSpace(c.Query(string(field))); v != "" {
			filter.Contains[field] = v
		}
	}

	if raw := c.Query("job_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, errors.New("invalid job_id")
		}
		filter.JobID = &id
	}

	var err error
	if filter.MinDOB, err = parseDateQuery(c, "min_dob"); err != nil {
		return filter, err
	}
	if filter.MaxDOB, err = parseDateQuery(c, "max_dob"); err != nil {
		return filter, err
	}

	sortBy := c.Query("sort_by")
	if _, ok := repositories.SortColumn(sortBy); !ok {
		return filter, fmt.Errorf("cannot sort by %q", sortBy)
	}
	filter.SortBy = sortBy

	switch strings.ToLower(c.Query("order", "asc")) {
	case "asc":
	case "desc":
		filter.Desc = true
	default:
		return filter, errors.New("order must be asc or desc")
	}

	return filter, nil
}

func parseDateQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be YYYY-MM-DD", key)
	}
	return &t, nil
}
