package services

import (
	"fmt"
	"log"

	"github.com/xuri/excelize/v2"

	"alfredoptarigan/ats-parser/internal/models"
)

const candidateSheet = "Candidates"

var candidateHeaders = []string{
	"First Name",
	"Last Name",
	"Address",
	"Date of Birth",
	"Diploma",
	"Diploma School",
	"Degree",
	"Degree School",
	"Resume File",
	"Uploaded At",
}

var candidateColumnWidths = []struct {
	from, to string
	width    float64
}{
	{"A", "B", 18},
	{"C", "C", 40},
	{"D", "D", 14},
	{"E", "H", 28},
	{"I", "J", 24},
}

type ExportService interface {
	CandidatesXLSX(candidates []models.Candidate) ([]byte, error)
}

type exportService struct{}

func NewExportService() ExportService {
	return &exportService{}
}

// CandidatesXLSX renders one row per candidate. NULL fields become empty cells.
func (s *exportService) CandidatesXLSX(candidates []models.Candidate) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Rename the default sheet instead of leaving an empty "Sheet1" behind.
	if err := f.SetSheetName(f.GetSheetName(0), candidateSheet); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}

	headers := make([]any, len(candidateHeaders))
	for i, h := range candidateHeaders {
		headers[i] = h
	}
	if err := writeRow(f, candidateSheet, 1, headers); err != nil {
		return nil, err
	}

	for i := range candidates {
		c := &candidates[i]
		values := []any{
			deref(c.FirstName),
			deref(c.LastName),
			deref(c.Address),
			deref(models.FormatDate(c.DateOfBirth)),
			deref(c.Diploma),
			deref(c.DiplomaSchool),
			deref(c.Degree),
			deref(c.DegreeSchool),
			c.ResumeFileName,
			c.CreatedAt.Format("2006-01-02 15:04"),
		}
		if err := writeRow(f, candidateSheet, i+2, values); err != nil {
			return nil, err
		}
	}

	for _, w := range candidateColumnWidths {
		if err := f.SetColWidth(candidateSheet, w.from, w.to, w.width); err != nil {
			return nil, fmt.Errorf("xlsx column width: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	log.Printf("📊 Exported %d candidate(s) to xlsx", len(candidates))
	return buf.Bytes(), nil
}

// writeRow fills row starting at column A and stops at the first failing cell.
func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("xlsx cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("xlsx cell %s: %w", cell, err)
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
