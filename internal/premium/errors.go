package premium

import (
	"fmt"
	"strings"
)

// FieldError describes why a single input field was rejected.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when a PremiumInput violates its bounds.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("invalid premium input:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

func (ve *ValidationError) add(field, message string) {
	ve.Errors = append(ve.Errors, FieldError{Field: field, Message: message})
}
