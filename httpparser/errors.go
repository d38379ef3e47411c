package httpparser

// Errno is a category of a parsing failure.
type Errno uint8

const (
	OK Errno = iota
	InvalidMethod
	InvalidURL
	InvalidVersion
	InvalidStatus
	InvalidConstant
	InvalidHeaderToken
	InvalidContentLength
	InvalidChunkSize
	HeaderOverflow
	InvalidEndOfStream
	ClosedConnection
	CallbackAbort
	StrictModeViolation
	LFExpected
	InvalidInternalState
	Unknown
	Paused
)

// Error is returned by Execute. Every error except ErrPaused is terminal: the parser stays
// in the failed state until Reset. Errors are compared by their code, so errors.Is works
// for both the sentinels and callback aborts wrapping the cause.
type Error struct {
	Message string
	Code    Errno
	cause   error
}

func newError(code Errno, message string) Error {
	return Error{
		Code:    code,
		Message: message,
	}
}

func (e Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}

	return e.Message
}

func (e Error) Unwrap() error {
	return e.cause
}

func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	return ok && t.Code == e.Code
}

var (
	ErrInvalidMethod        = newError(InvalidMethod, "invalid HTTP method")
	ErrInvalidURL           = newError(InvalidURL, "invalid URL")
	ErrInvalidVersion       = newError(InvalidVersion, "invalid HTTP version")
	ErrInvalidStatus        = newError(InvalidStatus, "invalid HTTP status code")
	ErrInvalidConstant      = newError(InvalidConstant, "invalid constant string")
	ErrInvalidHeaderToken   = newError(InvalidHeaderToken, "invalid character in header")
	ErrInvalidContentLength = newError(InvalidContentLength, "invalid character in content-length header")
	ErrInvalidChunkSize     = newError(InvalidChunkSize, "invalid character in chunk size header")
	ErrHeaderOverflow       = newError(HeaderOverflow, "too many header bytes seen")
	ErrInvalidEndOfStream   = newError(InvalidEndOfStream, "stream ended at an unexpected time")
	ErrClosedConnection     = newError(ClosedConnection, "data received after completed connection: close message")
	ErrCallbackAbort        = newError(CallbackAbort, "the on_* callback failed")
	ErrStrictModeViolation  = newError(StrictModeViolation, "strict mode assertion failed")
	ErrLFExpected           = newError(LFExpected, "LF character expected")
	ErrInvalidInternalState = newError(InvalidInternalState, "encountered unexpected internal state")
	ErrUnknown              = newError(Unknown, "an unknown error occurred")
	// ErrPaused isn't terminal. It's returned while the parser is paused and goes away
	// after Resume.
	ErrPaused = newError(Paused, "parser is paused")
)

func callbackAbort(cause error) Error {
	err := ErrCallbackAbort
	err.cause = cause
	return err
}
