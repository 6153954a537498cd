package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"regexp"
)

var (
	// Fenced blocks are tried first; the bare-array fallback is greedy to the last ']'.
	fencedJSONPattern = regexp.MustCompile("(?i)```json\\s*([\\s\\S]*?)\\s*```")
	bareArrayPattern  = regexp.MustCompile(`\[[\s\S]*\]`)
)

// CandidateObject is one element of the model's JSON array.
type CandidateObject map[string]any

// ExtractCandidatesJSON locates and decodes the JSON array in a raw model
// response. Any failure is an *ExtractionError carrying raw unmodified.
// maxBytes <= 0 disables the size check.
func ExtractCandidatesJSON(raw string, maxBytes int) ([]CandidateObject, error) {
	if maxBytes > 0 && len(raw) > maxBytes {
		return nil, &ExtractionError{
			Kind: ErrResponseTooLarge,
			Raw:  raw,
			Err:  fmt.Errorf("%d bytes, limit %d", len(raw), maxBytes),
		}
	}

	jsonStr, ok := locateJSON(raw)
	if !ok {
		return nil, &ExtractionError{Kind: ErrNoJSONFound, Raw: raw}
	}

	value, err := decodeStrict(jsonStr)
	if err != nil {
		return nil, &ExtractionError{Kind: ErrMalformedJSON, Raw: raw, Err: err}
	}

	items, ok := value.([]any)
	if !ok {
		return nil, &ExtractionError{
			Kind: ErrMalformedJSON,
			Raw:  raw,
			Err:  fmt.Errorf("expected a JSON array, got %T", value),
		}
	}

	objects := make([]CandidateObject, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			log.Printf("⚠️  Skipping array element %d: expected an object, got %T", i, item)
			continue
		}
		if err := checkCandidateSchema(obj); err != nil {
			log.Printf("⚠️  Array element %d does not match the candidate schema: %v", i, err)
		}
		objects = append(objects, CandidateObject(obj))
	}

	return objects, nil
}

func locateJSON(raw string) (string, bool) {
	if m := fencedJSONPattern.FindStringSubmatch(raw); m != nil {
		return m[1], true
	}
	if m := bareArrayPattern.FindString(raw); m != "" {
		return m, true
	}
	return "", false
}

// decodeStrict rejects trailing data after the first JSON value and keeps
// numbers as written.
func decodeStrict(s string) (any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}

	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			return nil, errors.New("unexpected data after top-level value")
		}
		return nil, err
	}

	return value, nil
}
