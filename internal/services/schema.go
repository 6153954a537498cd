package services

import (
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// candidateSchemaJSON describes one element of the model's array. Values that
// break it are still accepted; the materializer stores them as NULL.
const candidateSchemaJSON = `{
  "type": "object",
  "properties": {
    "first_name":     {"type": ["string", "null"]},
    "last_name":      {"type": ["string", "null"]},
    "address":        {"type": ["string", "null"]},
    "date_of_birth":  {"type": ["string", "null"]},
    "diploma":        {"type": ["string", "null"]},
    "diploma_school": {"type": ["string", "null"]},
    "degree":         {"type": ["string", "null"]},
    "degree_school":  {"type": ["string", "null"]}
  }
}`

var candidateSchema = jsonschema.MustCompileString("candidate.json", candidateSchemaJSON)

// checkCandidateSchema reports fields whose JSON type does not match the
// prompt's schema.
func checkCandidateSchema(obj map[string]any) error {
	return candidateSchema.Validate(obj)
}
