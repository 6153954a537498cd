package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"alfredoptarigan/ats-parser/internal/models"
)

// ResumeIndexer receives the text of a resume together with the candidates
// created from it. Implementations must not keep the text.
type ResumeIndexer interface {
	IndexResume(ctx context.Context, text string, candidates []models.Candidate) error
}

type ResumePipeline interface {
	// ProcessBatch runs every document through the pipeline in order. A
	// failing document contributes zero candidates; it never stops the batch.
	ProcessBatch(ctx context.Context, docs []UploadedDocument, uc UploadContext) *BatchResult
}

type FileOutcome struct {
	FileName   string
	Candidates []models.Candidate
	Err        error
}

type BatchResult struct {
	ParsedData []CandidateObject
	RawOutputs []string
	Files      []FileOutcome
}

// CombinedRawOutput joins the raw model outputs with blank lines, or returns
// nil when there were none.
func (r *BatchResult) CombinedRawOutput() *string {
	if len(r.RawOutputs) == 0 {
		return nil
	}
	joined := strings.Join(r.RawOutputs, "\n\n")
	return &joined
}

func (r *BatchResult) CandidateCount() int {
	total := 0
	for _, f := range r.Files {
		total += len(f.Candidates)
	}
	return total
}

type resumePipeline struct {
	converter        DocumentConverter
	promptBuilder    *PromptBuilder
	llm              TextGenerator
	materializer     *Materializer
	indexer          ResumeIndexer
	maxResponseBytes int
}

// NewResumePipeline wires the stages together. indexer may be nil.
func NewResumePipeline(
	converter DocumentConverter,
	promptBuilder *PromptBuilder,
	llm TextGenerator,
	materializer *Materializer,
	indexer ResumeIndexer,
	maxResponseBytes int,
) ResumePipeline {
	return &resumePipeline{
		converter:        converter,
		promptBuilder:    promptBuilder,
		llm:              llm,
		materializer:     materializer,
		indexer:          indexer,
		maxResponseBytes: maxResponseBytes,
	}
}

func (p *resumePipeline) ProcessBatch(ctx context.Context, docs []UploadedDocument, uc UploadContext) *BatchResult {
	result := &BatchResult{
		ParsedData: []CandidateObject{},
		Files:      make([]FileOutcome, 0, len(docs)),
	}

	for _, doc := range docs {
		log.Printf("📄 Processing resume: %s", doc.FileName)

		objects, raw, created, err := p.processDocument(ctx, doc, uc)
		if raw != "" {
			result.RawOutputs = append(result.RawOutputs, raw)
		}
		result.ParsedData = append(result.ParsedData, objects...)
		result.Files = append(result.Files, FileOutcome{
			FileName:   doc.FileName,
			Candidates: created,
			Err:        err,
		})

		if err != nil {
			log.Printf("❌ Skipping %s: %v", doc.FileName, err)
			continue
		}
		log.Printf("✅ %s produced %d candidate(s)", doc.FileName, len(created))
	}

	return result
}

func (p *resumePipeline) processDocument(ctx context.Context, doc UploadedDocument, uc UploadContext) ([]CandidateObject, string, []models.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", nil, err
	}

	text, err := p.converter.Convert(ctx, doc)
	if err != nil {
		return nil, "", nil, err
	}
	log.Printf("📖 Extracted %d characters from %s", len(text), doc.FileName)

	prompt := p.promptBuilder.BuildCandidateExtractionPrompt(text)

	log.Printf("🤖 Extracting candidates from %s with LLM...", doc.FileName)
	raw, err := p.llm.GenerateTextWithRetry(ctx, prompt)
	if err != nil {
		return nil, "", nil, err
	}

	objects, err := ExtractCandidatesJSON(raw, p.maxResponseBytes)
	if err != nil {
		var extractErr *ExtractionError
		if errors.As(err, &extractErr) {
			raw = extractErr.Raw
		}
		return nil, raw, nil, err
	}

	created := p.materializer.Materialize(objects, doc.FileName, uc)

	if p.indexer != nil && len(created) > 0 {
		if err := p.indexer.IndexResume(ctx, text, created); err != nil {
			log.Printf("⚠️  Failed to index %s: %v", doc.FileName, err)
		}
	}

	return objects, raw, created, nil
}
