package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"alfredoptarigan/ats-parser/internal/models"
)

const (
	indexChunkSize    = 1000
	indexChunkOverlap = 150
)

// ResumeIndex is the semantic search side of the candidate store.
type ResumeIndex interface {
	ResumeIndexer
	Search(ctx context.Context, query string, jobID *uuid.UUID, limit int) ([]RankedCandidate, error)
	RemoveJob(ctx context.Context, jobID uuid.UUID) error
}

type RankedCandidate struct {
	CandidateID uuid.UUID
	Score       float32
}

type resumeIndex struct {
	embedder Embedder
	store    QdrantService
	chunker  TextChunker
}

func NewResumeIndex(embedder Embedder, store QdrantService, chunker TextChunker) ResumeIndex {
	return &resumeIndex{
		embedder: embedder,
		store:    store,
		chunker:  chunker,
	}
}

// IndexResume embeds each chunk once and stores a vector per candidate.
func (i *resumeIndex) IndexResume(ctx context.Context, text string, candidates []models.Candidate) error {
	if len(candidates) == 0 {
		return nil
	}

	chunks := i.chunker.ChunkText(text, indexChunkSize, indexChunkOverlap)

	var vectors []ResumeVector
	var errs []error
	for n, chunk := range chunks {
		embedding, err := i.embedder.GenerateEmbedding(ctx, chunk)
		if err != nil {
			errs = append(errs, fmt.Errorf("chunk %d: %w", n, err))
			continue
		}
		for _, c := range candidates {
			vectors = append(vectors, ResumeVector{
				CandidateID: c.ID,
				JobID:       c.JobID,
				Chunk:       n,
				Embedding:   embedding,
			})
		}
	}

	if err := i.store.UpsertVectors(ctx, vectors); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Search ranks candidates by their best matching chunk.
func (i *resumeIndex) Search(ctx context.Context, query string, jobID *uuid.UUID, limit int) ([]RankedCandidate, error) {
	if limit <= 0 {
		limit = 10
	}

	embedding, err := i.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	// Several chunks per candidate can match, so over-fetch before grouping.
	hits, err := i.store.SearchSimilar(ctx, embedding, jobID, limit*4)
	if err != nil {
		return nil, err
	}

	best := make(map[uuid.UUID]float32)
	for _, hit := range hits {
		id, err := uuid.Parse(hit.CandidateID)
		if err != nil {
			continue
		}
		if score, seen := best[id]; !seen || hit.Score > score {
			best[id] = hit.Score
		}
	}

	ranked := make([]RankedCandidate, 0, len(best))
	for id, score := range best {
		ranked = append(ranked, RankedCandidate{CandidateID: id, Score: score})
	}
	sort.Slice(ranked, func(a, b int) bool {
		if ranked[a].Score != ranked[b].Score {
			return ranked[a].Score > ranked[b].Score
		}
		return ranked[a].CandidateID.String() < ranked[b].CandidateID.String()
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

func (i *resumeIndex) RemoveJob(ctx context.Context, jobID uuid.UUID) error {
	return i.store.DeleteByJob(ctx, jobID)
}
