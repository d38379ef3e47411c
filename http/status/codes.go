package status

type (
	// Code is a status code as seen in a status line. Any three-digit value is accepted
	// there, however only the registered ones have a reason phrase.
	Code uint16
	// Status is a reason phrase.
	Status string
)

// Registered status codes, see https://www.iana.org/assignments/http-status-codes
const (
	Continue Code = 100 + iota
	SwitchingProtocols
	Processing
	EarlyHints
)

const (
	OK Code = 200 + iota
	Created
	Accepted
	NonAuthoritativeInfo
	NoContent
	ResetContent
	PartialContent
	MultiStatus
	AlreadyReported

	IMUsed Code = 226
)

const (
	MultipleChoices Code = 300 + iota
	MovedPermanently
	Found
	SeeOther
	NotModified
	UseProxy
	_ // 306 is unused
	TemporaryRedirect
	PermanentRedirect
)

const (
	BadRequest Code = 400 + iota
	Unauthorized
	PaymentRequired
	Forbidden
	NotFound
	MethodNotAllowed
	NotAcceptable
	ProxyAuthRequired
	RequestTimeout
	Conflict
	Gone
	LengthRequired
	PreconditionFailed
	RequestEntityTooLarge
	RequestURITooLong
	UnsupportedMediaType
	RequestedRangeNotSatisfiable
	ExpectationFailed
	Teapot
)

const (
	MisdirectedRequest Code = 421 + iota
	UnprocessableEntity
	Locked
	FailedDependency
	TooEarly
	UpgradeRequired
	_
	PreconditionRequired
	TooManyRequests
	_
	RequestHeaderFieldsTooLarge

	UnavailableForLegalReasons Code = 451
)

const (
	InternalServerError Code = 500 + iota
	NotImplemented
	BadGateway
	ServiceUnavailable
	GatewayTimeout
	HTTPVersionNotSupported
	VariantAlsoNegotiates
	InsufficientStorage
	LoopDetected
	_
	NotExtended
	NetworkAuthenticationRequired
)

const unknownText Status = "Unknown Status Code"

var texts = [...]Status{
	Continue:           "Continue",
	SwitchingProtocols: "Switching Protocols",
	Processing:         "Processing",
	EarlyHints:         "Early Hints",

	OK:                   "OK",
	Created:              "Created",
	Accepted:             "Accepted",
	NonAuthoritativeInfo: "Non-Authoritative Information",
	NoContent:            "No Content",
	ResetContent:         "Reset Content",
	PartialContent:       "Partial Content",
	MultiStatus:          "Multi-Status",
	AlreadyReported:      "Already Reported",
	IMUsed:               "IM Used",

	MultipleChoices:   "Multiple Choices",
	MovedPermanently:  "Moved Permanently",
	Found:             "Found",
	SeeOther:          "See Other",
	NotModified:       "Not Modified",
	UseProxy:          "Use Proxy",
	TemporaryRedirect: "Temporary Redirect",
	PermanentRedirect: "Permanent Redirect",

	BadRequest:                   "Bad Request",
	Unauthorized:                 "Unauthorized",
	PaymentRequired:              "Payment Required",
	Forbidden:                    "Forbidden",
	NotFound:                     "Not Found",
	MethodNotAllowed:             "Method Not Allowed",
	NotAcceptable:                "Not Acceptable",
	ProxyAuthRequired:            "Proxy Authentication Required",
	RequestTimeout:               "Request Timeout",
	Conflict:                     "Conflict",
	Gone:                         "Gone",
	LengthRequired:               "Length Required",
	PreconditionFailed:           "Precondition Failed",
	RequestEntityTooLarge:        "Request Entity Too Large",
	RequestURITooLong:            "Request URI Too Long",
	UnsupportedMediaType:         "Unsupported Media Type",
	RequestedRangeNotSatisfiable: "Requested Range Not Satisfiable",
	ExpectationFailed:            "Expectation Failed",
	Teapot:                       "I'm a teapot",
	MisdirectedRequest:           "Misdirected Request",
	UnprocessableEntity:          "Unprocessable Entity",
	Locked:                       "Locked",
	FailedDependency:             "Failed Dependency",
	TooEarly:                     "Too Early",
	UpgradeRequired:              "Upgrade Required",
	PreconditionRequired:         "Precondition Required",
	TooManyRequests:              "Too Many Requests",
	RequestHeaderFieldsTooLarge:  "Request Header Fields Too Large",
	UnavailableForLegalReasons:   "Unavailable For Legal Reasons",

	InternalServerError:           "Internal Server Error",
	NotImplemented:                "Not Implemented",
	BadGateway:                    "Bad Gateway",
	ServiceUnavailable:            "Service Unavailable",
	GatewayTimeout:                "Gateway Timeout",
	HTTPVersionNotSupported:       "HTTP Version Not Supported",
	VariantAlsoNegotiates:         "Variant Also Negotiates",
	InsufficientStorage:           "Insufficient Storage",
	LoopDetected:                  "Loop Detected",
	NotExtended:                   "Not Extended",
	NetworkAuthenticationRequired: "Network Authentication Required",
}

// KnownCodes lists every code having a registered reason phrase, in ascending order.
var KnownCodes = func() (codes []Code) {
	for code, text := range texts {
		if len(text) > 0 {
			codes = append(codes, Code(code))
		}
	}

	return codes
}()

// Text returns the reason phrase of the code, or "Unknown Status Code" if it isn't registered.
func Text(code Code) Status {
	if int(code) >= len(texts) || len(texts[code]) == 0 {
		return unknownText
	}

	return texts[code]
}

// IsKnown reports whether the code is registered.
func IsKnown(code Code) bool {
	return Text(code) != unknownText
}
