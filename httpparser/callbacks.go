package httpparser

type (
	// Notify is a callback signalling an event without any data.
	Notify func(p *Parser) error
	// Data is a callback receiving a part of a field. The slice points into the buffer passed
	// to Execute, so it must not be retained after the callback returns. A field split among
	// several Execute calls is reported once per each call.
	Data func(p *Parser, data []byte) error
	// HeadersComplete is invoked once all the headers are parsed. Returning skipBody tells
	// the parser that the message carries no body regardless of its headers, which is the
	// case for responses to HEAD requests.
	HeadersComplete func(p *Parser) (skipBody bool, err error)
)

// Callbacks are invoked synchronously from Execute in the order of bytes they're caused by.
// A nil callback means no interest in the event. A non-nil error returned from any of them
// aborts the parsing with ErrCallbackAbort, wrapping the returned error.
type Callbacks struct {
	OnMessageBegin    Notify
	OnURL             Data
	OnStatus          Data
	OnHeaderField     Data
	OnHeaderValue     Data
	OnHeadersComplete HeadersComplete
	OnBody            Data
	// OnChunkHeader is invoked when a chunk size is parsed. The size is available via
	// ContentLength.
	OnChunkHeader     Notify
	OnChunkComplete   Notify
	OnMessageComplete Notify
}
