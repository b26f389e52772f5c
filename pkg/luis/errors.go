package luis

import "luis-client/internal/common/errors"

// Error is the concrete type of every error returned by this package.
type Error = errors.StandardError

// ErrorCode identifies the kind of an Error.
type ErrorCode = errors.ErrorCode

const (
	CodeConfiguration     = errors.ErrCodeConfiguration
	CodeRequestFailed     = errors.ErrCodeRequestFailed
	CodeMalformedResponse = errors.ErrCodeMalformedResponse
)

// IsConfigurationError reports a client constructed without a usable URL.
func IsConfigurationError(err error) bool {
	return errors.HasCode(err, CodeConfiguration)
}

// IsRequestError reports a transport failure or non-2xx status.
func IsRequestError(err error) bool {
	return errors.HasCode(err, CodeRequestFailed)
}

// IsMalformedResponse reports a body that is not JSON or breaks the wire contract.
func IsMalformedResponse(err error) bool {
	return errors.HasCode(err, CodeMalformedResponse)
}

// StatusCode returns the HTTP status carried by a request error, or 0.
func StatusCode(err error) int {
	if stdErr, ok := errors.AsStandardError(err); ok {
		return stdErr.StatusCode()
	}
	return 0
}
