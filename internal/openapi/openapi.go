// Package openapi builds the machine-readable description of the premium API.
package openapi

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	apischemas "github.com/jonathan/premium-calculator/schemas"
)

// Info describes the API for the document's info section.
type Info struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
}

// DefaultInfo is the info block served by the premium calculator.
var DefaultInfo = Info{
	Title:       "Insurance Premium Calculator",
	Description: "Calculate insurance premiums based on age, risk level, and coverage",
	Version:     "1.0.0",
}

// Document is an OpenAPI 3.1 document. Paths and components are kept as
// generic JSON so the embedded JSON Schemas can be inlined unchanged.
type Document struct {
	OpenAPI    string                    `json:"openapi"`
	Info       Info                      `json:"info"`
	Paths      map[string]map[string]any `json:"paths"`
	Components map[string]any            `json:"components"`
}

// Summary is what the export command reports after writing a document.
type Summary struct {
	Title     string
	Version   string
	Endpoints int
}

// Summary returns the title, version and number of paths of d.
func (d *Document) Summary() Summary {
	return Summary{Title: d.Info.Title, Version: d.Info.Version, Endpoints: len(d.Paths)}
}

func loadSchema(name string) (map[string]any, error) {
	raw, err := apischemas.Read(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", name, err)
	}
	var schema map[string]any
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, fmt.Errorf("failed to parse schema %s: %w", name, err)
	}
	// $schema and $id are meaningless inside an OpenAPI components section.
	delete(schema, "$schema")
	delete(schema, "$id")
	return schema, nil
}

func ref(name string) map[string]any {
	return map[string]any{"$ref": "#/components/schemas/" + name}
}

func jsonContent(schema any) map[string]any {
	return map[string]any{"application/json": map[string]any{"schema": schema}}
}

// Build assembles the OpenAPI document for the service.
func Build(info Info) (*Document, error) {
	request, err := loadSchema(apischemas.PremiumRequest)
	if err != nil {
		return nil, err
	}
	response, err := loadSchema(apischemas.PremiumResponse)
	if err != nil {
		return nil, err
	}

	errorSchema := map[string]any{
		"type":     "object",
		"required": []string{"error"},
		"properties": map[string]any{
			"error": map[string]any{"type": "string"},
			"details": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []string{"field", "message"},
					"properties": map[string]any{
						"field":   map[string]any{"type": "string"},
						"message": map[string]any{"type": "string"},
					},
				},
			},
		},
	}

	doc := &Document{
		OpenAPI: "3.1.0",
		Info:    info,
		Paths: map[string]map[string]any{
			"/": {
				"get": map[string]any{
					"summary":     "Root",
					"description": "Provides API information",
					"operationId": "root",
					"responses": map[string]any{
						"200": map[string]any{"description": "Service information", "content": jsonContent(map[string]any{"type": "object"})},
					},
				},
			},
			"/calculate": {
				"post": map[string]any{
					"summary":     "Calculate Premium",
					"description": "Calculate insurance premium based on age, risk level, and coverage",
					"operationId": "calculatePremium",
					"requestBody": map[string]any{
						"required": true,
						"content":  jsonContent(ref("PremiumRequest")),
					},
					"responses": map[string]any{
						"200": map[string]any{"description": "Calculated premium", "content": jsonContent(ref("PremiumResponse"))},
						"400": map[string]any{"description": "Malformed request body", "content": jsonContent(ref("Error"))},
						"422": map[string]any{"description": "Validation Error", "content": jsonContent(ref("Error"))},
						"500": map[string]any{"description": "Calculation failed", "content": jsonContent(ref("Error"))},
					},
				},
			},
			"/health": {
				"get": map[string]any{
					"summary":     "Health Check",
					"description": "Health check endpoint for monitoring",
					"operationId": "healthCheck",
					"responses": map[string]any{
						"200": map[string]any{"description": "Service is healthy", "content": jsonContent(map[string]any{"type": "object"})},
					},
				},
			},
		},
		Components: map[string]any{
			"schemas": map[string]any{
				"PremiumRequest":  request,
				"PremiumResponse": response,
				"Error":           errorSchema,
			},
		},
	}
	return doc, nil
}

// Write encodes d as indented JSON.
func Write(w io.Writer, d *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode OpenAPI document: %w", err)
	}
	return nil
}

// Export builds the document and writes it to path.
func Export(path string, info Info) (Summary, error) {
	doc, err := Build(info)
	if err != nil {
		return Summary{}, err
	}

	f, err := os.Create(path)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := Write(f, doc); err != nil {
		_ = f.Close()
		return Summary{}, err
	}
	if err := f.Close(); err != nil {
		return Summary{}, fmt.Errorf("failed to close %s: %w", path, err)
	}
	return doc.Summary(), nil
}
