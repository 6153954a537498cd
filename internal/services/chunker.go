package services

import (
	"strings"
	"unicode/utf8"
)

type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText packs paragraphs into chunks of at most maxChunkSize runes. Each
// chunk after the first starts with the last overlap runes of the previous
// one. Paragraphs longer than a chunk are cut into fixed windows.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	var pieces []string
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		pieces = append(pieces, splitRunes(para, maxChunkSize-overlap-2)...)
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen == 0 {
			return
		}
		chunk := current.String()
		chunks = append(chunks, chunk)
		current.Reset()
		currentLen = 0
		if tail := lastRunes(chunk, overlap); tail != "" {
			current.WriteString(tail)
			currentLen = utf8.RuneCountInString(tail)
		}
	}

	for _, piece := range pieces {
		pieceLen := utf8.RuneCountInString(piece)
		if currentLen > 0 && currentLen+2+pieceLen > maxChunkSize {
			flush()
		}
		if currentLen > 0 {
			current.WriteString("\n\n")
			currentLen += 2
		}
		current.WriteString(piece)
		currentLen += pieceLen
	}

	// A trailing buffer that only holds overlap adds nothing new.
	if current.Len() > 0 && (len(chunks) == 0 || currentLen > overlap) {
		chunks = append(chunks, current.String())
	}

	return chunks
}

func splitRunes(s string, size int) []string {
	if size <= 0 {
		size = 1
	}
	runes := []rune(s)
	if len(runes) <= size {
		return []string{s}
	}
	var out []string
	for start := 0; start < len(runes); start += size {
		end := min(start+size, len(runes))
		out = append(out, string(runes[start:end]))
	}
	return out
}

func lastRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[len(runes)-n:])
}
