package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range []string{PremiumRequest, PremiumResponse} {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := Read(schemaFile)
			require.NoError(t, err, "should be able to read embedded schema")

			var schemaObj map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &schemaObj), "schema should be valid JSON")

			assert.Equal(t, "object", schemaObj["type"])
			assert.Contains(t, schemaObj, "$schema")
			assert.Contains(t, schemaObj, "properties")
		})
	}
}

func TestPremiumRequestSchema_RequiredFields(t *testing.T) {
	data, err := Read(PremiumRequest)
	require.NoError(t, err)

	var schemaObj struct {
		Required   []string                  `json:"required"`
		Properties map[string]map[string]any `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(data, &schemaObj))

	assert.ElementsMatch(t, []string{"age", "risk_level", "coverage"}, schemaObj.Required)
	assert.Equal(t, []any{"low", "medium", "high"}, schemaObj.Properties["risk_level"]["enum"])
	assert.Equal(t, float64(120), schemaObj.Properties["age"]["maximum"])
}

func TestRead_UnknownSchema(t *testing.T) {
	_, err := Read("missing.schema.json")
	assert.Error(t, err)
}
