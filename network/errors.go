package network

// ErrorKind classifies a failed request.
type ErrorKind string

const (
	KindNoResponse   ErrorKind = "no-response"
	KindNoContent    ErrorKind = "no-content"
	KindJSONParsing  ErrorKind = "json-parsing-failure"
	KindInvalidURL   ErrorKind = "invalid-url"
	KindServiceError ErrorKind = "service-error"
)

var descriptions = map[ErrorKind]string{
	KindNoResponse:   "no response received",
	KindNoContent:    "response has no content",
	KindJSONParsing:  "response could not be decoded",
	KindInvalidURL:   "invalid request url",
	KindServiceError: "service error",
}

// Error is the error carried by a Response. Compare with errors.Is against
// the sentinels below; kinds match regardless of message or cause.
type Error struct {
	Kind ErrorKind
	// Msg is the transport's description for service errors.
	Msg string
	// Cause is the underlying failure, if any.
	Cause error
}

var (
	ErrNoResponse  = &Error{Kind: KindNoResponse}
	ErrNoContent   = &Error{Kind: KindNoContent}
	ErrJSONParsing = &Error{Kind: KindJSONParsing}
	ErrInvalidURL  = &Error{Kind: KindInvalidURL}
)

// ServiceError reports a transport failure with its message passed through.
func ServiceError(message string) *Error {
	return &Error{Kind: KindServiceError, Msg: message}
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "":
		return string(e.Kind) + ": " + e.Msg
	case e.Cause != nil:
		return string(e.Kind) + ": " + e.Cause.Error()
	default:
		return string(e.Kind)
	}
}

// Message returns the transport message for service errors and a short
// description for every other kind.
func (e *Error) Message() string {
	if e.Kind == KindServiceError {
		return e.Msg
	}
	return descriptions[e.Kind]
}

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// outcomeLabel names err for metrics and logs.
func outcomeLabel(err error) string {
	if err == nil {
		return "ok"
	}
	if e, ok := err.(*Error); ok {
		return string(e.Kind)
	}
	return "error"
}
