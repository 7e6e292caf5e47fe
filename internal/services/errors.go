package services

// ErrorCode is the stable numeric failure taxonomy expected by external
// indexers. Values are part of the public contract and must not be renumbered.
type ErrorCode int

const (
	CodeInvalidInput       ErrorCode = 1
	CodeReportExists       ErrorCode = 2
	CodeUnauthorized       ErrorCode = 3
	CodeInvalidStatus      ErrorCode = 4
	CodeMaxVersionsReached ErrorCode = 5
	CodeInvalidLicense     ErrorCode = 6
	CodeInvalidShare       ErrorCode = 7
	CodePaused             ErrorCode = 8
)

// EngineError is a synchronous validation failure returned to the caller.
// Every engine error is recoverable by correcting the request; none leaves
// partial state behind.
type EngineError struct {
	Code    ErrorCode
	Message string
}

func (e *EngineError) Error() string { return e.Message }

// Canonical engine failures. Services return these directly where no extra
// detail is needed, so callers may compare with ==.
var (
	ErrReportNotFound     = &EngineError{CodeInvalidInput, "report not found"}
	ErrReportExists       = &EngineError{CodeReportExists, "report id already occupied"}
	ErrUnauthorized       = &EngineError{CodeUnauthorized, "caller is not authorized for this operation"}
	ErrInvalidStatus      = &EngineError{CodeInvalidStatus, "status is not a known value"}
	ErrMaxVersionsReached = &EngineError{CodeMaxVersionsReached, "maximum version count reached for this report"}
	ErrInvalidLicense     = &EngineError{CodeInvalidLicense, "license grant is invalid"}
	ErrInvalidShare       = &EngineError{CodeInvalidShare, "share percentage must be between 1 and 100"}
	ErrPaused             = &EngineError{CodePaused, "engine is paused"}
)

func invalidInput(msg string) *EngineError {
	return &EngineError{CodeInvalidInput, msg}
}

func invalidLicense(msg string) *EngineError {
	return &EngineError{CodeInvalidLicense, msg}
}

// CodeOf returns the engine error code carried by err, or 0 when err is not
// an engine failure (infrastructure errors, nil).
func CodeOf(err error) ErrorCode {
	if e, ok := err.(*EngineError); ok {
		return e.Code
	}
	return 0
}
