package cli

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"strings"

	"github.com/rileyhilliard/genui/internal/errors"
	"github.com/rileyhilliard/genui/internal/layout"
)

// Machine mode flag - when true, outputs JSON and suppresses human-friendly decorations
var machineMode bool

// MachineMode returns true if machine-readable output is enabled
func MachineMode() bool {
	return machineMode
}

// JSONEnvelope wraps command output in a consistent structure for machine parsing.
// All --json output should use this envelope.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *JSONError  `json:"error,omitempty"`
}

// JSONError provides structured error information for machine parsing.
type JSONError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
	Details    interface{} `json:"details,omitempty"`
}

// Error codes for machine-readable output.
// These map to specific actions an LLM/automation can take.
const (
	ErrCodeConfigNotFound = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "CONFIG_INVALID"
	ErrCodeStreamFailed   = "STREAM_FAILED"
	ErrCodeInvalidSyntax  = "INVALID_SYNTAX"
	ErrCodeInvalidSchema  = "INVALID_SCHEMA"
	ErrCodeRenderFailed   = "RENDER_FAILED"
	ErrCodeSubmitFailed   = "SUBMIT_FAILED"
	ErrCodeUnknown        = "UNKNOWN"
)

// WriteJSONSuccess writes a successful response with data to the writer.
func WriteJSONSuccess(w io.Writer, data interface{}) error {
	env := JSONEnvelope{
		Success: true,
		Data:    data,
	}
	return writeJSONEnvelope(w, env)
}

// WriteJSONError writes an error response to the writer.
func WriteJSONError(w io.Writer, code, message, suggestion string, details interface{}) error {
	env := JSONEnvelope{
		Success: false,
		Error: &JSONError{
			Code:       code,
			Message:    message,
			Suggestion: suggestion,
			Details:    details,
		},
	}
	return writeJSONEnvelope(w, env)
}

// WriteJSONFromError converts a Go error to a JSON error response.
func WriteJSONFromError(w io.Writer, err error) error {
	jsonErr := ErrorToJSON(err)
	env := JSONEnvelope{
		Success: false,
		Error:   jsonErr,
	}
	return writeJSONEnvelope(w, env)
}

// writeJSONEnvelope writes the envelope with consistent formatting.
func writeJSONEnvelope(w io.Writer, env JSONEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// ErrorToJSON converts a Go error to a JSONError with appropriate code mapping.
func ErrorToJSON(err error) *JSONError {
	if err == nil {
		return nil
	}

	// Structured errors, including materialization failures, which
	// unwrap to one.
	var genErr *errors.Error
	if stderrors.As(err, &genErr) {
		je := &JSONError{
			Code:       mapErrorCode(genErr.Code, genErr.Message),
			Message:    genErr.Message,
			Suggestion: genErr.Suggestion,
		}
		if f := failureOf(err); f != nil {
			je.Details = failureDetails(f)
		}
		return je
	}

	// Generic error
	return &JSONError{
		Code:    ErrCodeUnknown,
		Message: err.Error(),
	}
}

// mapErrorCode maps internal error codes to machine-readable codes.
func mapErrorCode(internalCode, message string) string {
	switch internalCode {
	case errors.ErrConfig:
		// Distinguish between not found and invalid
		msgLower := strings.ToLower(message)
		if strings.Contains(msgLower, "not found") || strings.Contains(msgLower, "couldn't find") {
			return ErrCodeConfigNotFound
		}
		return ErrCodeConfigInvalid
	case errors.ErrStream:
		return ErrCodeStreamFailed
	case errors.ErrSyntax:
		return ErrCodeInvalidSyntax
	case errors.ErrSchema:
		return ErrCodeInvalidSchema
	case errors.ErrRender:
		return ErrCodeRenderFailed
	case errors.ErrSubmit:
		return ErrCodeSubmitFailed
	}

	return ErrCodeUnknown
}

func failureOf(err error) *layout.Failure {
	var f *layout.Failure
	if stderrors.As(err, &f) {
		return f
	}
	return nil
}

// failureDetails says where in the document a failure sits.
func failureDetails(f *layout.Failure) map[string]interface{} {
	return map[string]interface{}{
		"kind":   f.Kind.String(),
		"path":   f.Path,
		"detail": f.Detail,
	}
}
