package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/premium-calculator/internal/observability"
	"github.com/jonathan/premium-calculator/internal/openapi"
	"github.com/jonathan/premium-calculator/internal/premium"
	"github.com/jonathan/premium-calculator/internal/schemas"
	"github.com/jonathan/premium-calculator/internal/server/middleware"
	"go.uber.org/zap"
)

// CalculateRequest is the body of POST /calculate. Age is decoded as a
// number because the schema already guarantees it is integral; 35.0 is accepted.
type CalculateRequest struct {
	Age       float64 `json:"age"`
	RiskLevel string  `json:"risk_level"`
	Coverage  float64 `json:"coverage"`
}

// RootResponse describes the service at GET /.
type RootResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Docs      string            `json:"docs"`
	Endpoints map[string]string `json:"endpoints"`
}

// HealthResponse is the fixed payload of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// handleRoot provides API information
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, r, http.StatusOK, RootResponse{
		Message: "Insurance Premium Calculator API",
		Version: openapi.DefaultInfo.Version,
		Docs:    "/openapi.json",
		Endpoints: map[string]string{
			"calculate": "POST /calculate - Calculate insurance premium",
			"health":    "GET /health - Health check",
		},
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, r, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: observability.ServiceName,
	})
}

// handleOpenAPI serves the pre-rendered API description
func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.openapiDoc)
}

// handleCalculate validates the request body and computes the premium
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, r, &ErrBadRequest{Cause: err})
		return
	}

	if err := s.validator.Validate(body); err != nil {
		var ve *schemas.ValidationError
		if !errors.As(err, &ve) {
			err = &ErrBadRequest{Cause: err}
		}
		s.writeError(w, r, err)
		return
	}

	var req CalculateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, r, &ErrBadRequest{Cause: err})
		return
	}

	input := premium.PremiumInput{
		Age:       int(req.Age),
		RiskLevel: premium.RiskLevel(req.RiskLevel),
		Coverage:  req.Coverage,
	}

	result, err := s.calculate(input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.metrics.ObserveCalculation(input.RiskLevel.String(), premium.AgeBracket(input.Age), result.FinalPremium)
	s.logger.Debug("premium calculated",
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.Int("age", input.Age),
		zap.String("risk_level", input.RiskLevel.String()),
		zap.Float64("final_premium", result.FinalPremium),
	)

	s.jsonResponse(w, r, http.StatusOK, result)
}

// calculate runs the calculator, converting an unexpected panic into *ErrInternal.
func (s *Server) calculate(input premium.PremiumInput) (result premium.PremiumResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &ErrInternal{Cause: rec}
		}
	}()
	return s.calculator.Calculate(input)
}

// writeError maps err to a status code and writes the error body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	details := fieldErrors(err)
	for _, fe := range details {
		s.metrics.ObserveValidationError(fe.Field)
	}

	var message string
	switch status {
	case http.StatusUnprocessableEntity:
		message = "validation failed"
	case http.StatusInternalServerError:
		s.logger.Error("calculation failed",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err),
		)
		message = "error calculating premium"
	default:
		message = err.Error()
	}

	s.errorResponse(w, r, status, message, details)
}
