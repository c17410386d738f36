// Package schemas holds the JSON Schema documents for the scoring service's payloads.
package schemas

import "embed"

// ScoringResponse is the file name of the upload response schema.
const ScoringResponse = "scoring_response.schema.json"

//go:embed *.schema.json
var FS embed.FS
