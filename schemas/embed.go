// Package schemas holds the JSON Schema documents describing the premium API.
package schemas

import "embed"

// Schema file names.
const (
	PremiumRequest  = "premium_request.schema.json"
	PremiumResponse = "premium_response.schema.json"
)

//go:embed *.schema.json
var FS embed.FS

// Read returns the raw bytes of the named schema.
func Read(name string) ([]byte, error) {
	return FS.ReadFile(name)
}
