// Package errors provides the coded errors returned by the LUIS client and their
// conversion to BPMN errors for the job worker.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeConfiguration     ErrorCode = "CONFIGURATION_ERROR"
	ErrCodeRequestFailed     ErrorCode = "REQUEST_FAILED"
	ErrCodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"

	// Worker-side codes.
	ErrCodeInputParsingFailed ErrorCode = "INPUT_PARSING_FAILED"
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrCodeAnalyzeTimeout     ErrorCode = "ANALYZE_TIMEOUT"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
)

// Metadata keys set on request errors.
const (
	MetaStatusCode = "statusCode"
	MetaBody       = "body"
	MetaURL        = "url"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Cause     error                  `json:"-"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.Cause
}

// Is matches another *StandardError by code so that sentinel values work with errors.Is.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// StatusCode returns the HTTP status recorded on a request error, or 0.
func (e *StandardError) StatusCode() int {
	if e.Metadata == nil {
		return 0
	}
	if code, ok := e.Metadata[MetaStatusCode].(int); ok {
		return code
	}
	return 0
}

// Body returns the response body recorded on a request error, if any.
func (e *StandardError) Body() string {
	if e.Metadata == nil {
		return ""
	}
	body, _ := e.Metadata[MetaBody].(string)
	return body
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewConfigurationError reports an unusable client configuration.
func NewConfigurationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfiguration,
		Message:   "Invalid client configuration",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTransportError wraps a failure to obtain any response from the service.
func NewTransportError(url string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestFailed,
		Message:   "Request to LUIS failed",
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{MetaURL: url},
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// NewStatusError reports a non-2xx response. Status and body travel in Metadata.
func NewStatusError(url string, statusCode int, body string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestFailed,
		Message:   "LUIS returned an error status",
		Details:   fmt.Sprintf("status %d", statusCode),
		Retryable: statusCode == 429 || statusCode >= 500,
		Metadata: map[string]interface{}{
			MetaURL:        url,
			MetaStatusCode: statusCode,
			MetaBody:       body,
		},
		Timestamp: time.Now().UTC(),
	}
}

// NewMalformedResponseError reports a response that does not match the wire contract.
func NewMalformedResponseError(details string, cause error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedResponse,
		Message:   "Malformed LUIS response",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
		Cause:     cause,
	}
}

func NewInputParsingError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInputParsingFailed,
		Message:   "Failed to parse job variables",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Input validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAnalyzeTimeoutError creates a retryable timeout error.
func NewAnalyzeTimeoutError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAnalyzeTimeout,
		Message:   "LUIS analyze timeout",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeConfiguration:      "LUIS_CONFIGURATION_ERROR",
	ErrCodeRequestFailed:      "LUIS_REQUEST_FAILED",
	ErrCodeMalformedResponse:  "LUIS_MALFORMED_RESPONSE",
	ErrCodeInputParsingFailed: "INPUT_PARSING_FAILED",
	ErrCodeValidationFailed:   "VALIDATION_FAILED",
	ErrCodeAnalyzeTimeout:     "LUIS_TIMEOUT",
}

// GetRetryCount returns the recommended job retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeRequestFailed:
		return 3
	case ErrCodeAnalyzeTimeout:
		return 2
	default:
		return 0 // configuration, contract and input errors do not heal on retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	if status := stdErr.StatusCode(); status != 0 {
		vars["httpStatus"] = status
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// AsStandardError finds the first *StandardError in err's chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	stdErr, ok := AsStandardError(err)
	return ok && stdErr.Code == code
}

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "CONFIGURATION"):
		return "CONFIGURATION"
	case strings.Contains(codeStr, "REQUEST") || strings.Contains(codeStr, "TIMEOUT"):
		return "TRANSPORT"
	case strings.Contains(codeStr, "MALFORMED"):
		return "CONTRACT"
	case strings.Contains(codeStr, "INPUT") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
