// Package httpparser implements an incremental HTTP/1.x parser. It consumes a byte stream in
// arbitrarily split chunks, never buffering anything, and reports the message structure via
// callbacks pointing into the passed buffers.
package httpparser

import (
	"math"

	"github.com/indigo-web/httparse/config"
	"github.com/indigo-web/httparse/http/method"
	"github.com/indigo-web/httparse/http/status"
)

// Kind defines which messages the parser expects.
type Kind uint8

const (
	Request Kind = iota + 1
	Response
	// Both detects the kind by the first message and sticks to it afterwards.
	Both
)

func (k Kind) String() string {
	switch k {
	case Request:
		return "request"
	case Response:
		return "response"
	case Both:
		return "both"
	default:
		return "unknown"
	}
}

// unknownLength marks the absence of a declared content length.
const unknownLength = math.MaxUint64

// maxReexecute limits how many times a single byte can be dispatched again after a state
// transition that doesn't consume it.
const maxReexecute = 4

const noMark = -1

// Outcome is either RequestOutcome or ResponseOutcome.
type Outcome interface {
	outcome()
}

type RequestOutcome struct {
	Method method.Method
}

type ResponseOutcome struct {
	Status status.Code
}

func (RequestOutcome) outcome()  {}
func (ResponseOutcome) outcome() {}

// Parser is a state machine for a single connection. It is not safe for concurrent use.
type Parser struct {
	callbacks Callbacks
	strict    bool
	maxHeader uint32

	kind        Kind
	state       parserState
	headerState headerState
	// index is shared among all the matching automata, so every new matching context
	// resets it.
	index int
	nread uint32
	flags Flags
	// contentLength is also the size of the current chunk.
	contentLength uint64

	major, minor uint16
	hasVersion   bool
	method       method.Method
	status       uint16
	hasStatus    bool

	err      error
	paused   bool
	upgrade  bool
	upgraded bool

	fieldMark, valueMark, urlMark, bodyMark, statusMark int
}

func New(kind Kind, callbacks Callbacks, cfg config.Parser) *Parser {
	p := &Parser{
		callbacks: callbacks,
		strict:    cfg.Strict,
		maxHeader: cfg.MaxHeaderSize,
	}
	p.Reset(kind)

	return p
}

// Reset brings the parser back to its initial state, discarding any error and expecting
// messages of the given kind. Callbacks and settings stay intact.
func (p *Parser) Reset(kind Kind) {
	*p = Parser{
		callbacks: p.callbacks,
		strict:    p.strict,
		maxHeader: p.maxHeader,
		kind:      kind,
	}
	p.state = p.startState()
	p.contentLength = unknownLength
	p.clearMarks()
}

// Kind returns the kind of messages currently expected. When the parser was created with
// Both, it turns into either Request or Response as soon as the first message reveals it.
func (p *Parser) Kind() Kind {
	return p.kind
}

// Outcome returns what the start line of the current message has revealed so far, or nil.
func (p *Parser) Outcome() Outcome {
	switch {
	case p.kind == Request && p.method != method.Unknown:
		return RequestOutcome{Method: p.method}
	case p.kind == Response && p.hasStatus:
		return ResponseOutcome{Status: status.Code(p.status)}
	default:
		return nil
	}
}

// Method returns the method of the current request, or method.Unknown.
func (p *Parser) Method() method.Method {
	if p.kind != Request {
		return method.Unknown
	}

	return p.method
}

// StatusCode returns the status code of the current response, or 0.
func (p *Parser) StatusCode() status.Code {
	if p.kind != Response {
		return 0
	}

	return status.Code(p.status)
}

// Version returns the protocol version of the current message. It isn't known until the
// first digit of it is seen.
func (p *Parser) Version() (major, minor uint16, ok bool) {
	return p.major, p.minor, p.hasVersion
}

func (p *Parser) Flags() Flags {
	return p.flags
}

// ContentLength returns the remaining length of the body, or the size of the current chunk
// when called from OnChunkHeader. The false value means there's no declared length.
func (p *Parser) ContentLength() (uint64, bool) {
	return p.contentLength, p.contentLength != unknownLength
}

// Upgrade reports whether the connection is going to switch the protocol after the
// current message, either by Upgrade headers or by a CONNECT request. Meaningful since
// OnHeadersComplete. After such a message completes, Execute returns and consumes nothing
// more until Reset, so the rest of the stream can be handed to another protocol.
func (p *Parser) Upgrade() bool {
	return p.upgrade
}

// Upgraded reports whether the upgrading message is complete and the parser stopped.
func (p *Parser) Upgraded() bool {
	return p.upgraded
}

// Err returns the terminal error, if any occurred.
func (p *Parser) Err() error {
	return p.err
}

// Pause stops Execute after the currently running callback returns. Execute then returns
// the number of consumed bytes along with ErrPaused.
func (p *Parser) Pause() {
	p.paused = true
}

func (p *Parser) Resume() {
	p.paused = false
}

func (p *Parser) Paused() bool {
	return p.paused
}

// Kill makes the parser consider the connection closed. Any following message results in
// ErrClosedConnection.
func (p *Parser) Kill() {
	p.state = stateDead
}

// ShouldKeepAlive reports whether the connection may be reused after the current message.
// It's meaningful since OnHeadersComplete.
func (p *Parser) ShouldKeepAlive() bool {
	if p.major > 0 && p.minor > 0 {
		// HTTP/1.1
		if p.flags.Has(FlagConnectionClose) {
			return false
		}
	} else if !p.flags.Has(FlagConnectionKeepAlive) {
		// HTTP/1.0 or older
		return false
	}

	return !p.messageNeedsEOF()
}

// BodyIsFinal reports whether the body passed to the currently running OnBody callback is
// the last one of the message.
func (p *Parser) BodyIsFinal() bool {
	return p.state == stateMessageDone
}

// messageNeedsEOF reports whether the end of the message can be detected only by the end of
// the stream.
func (p *Parser) messageNeedsEOF() bool {
	if p.kind == Request {
		return false
	}

	if status.IsBodyless(status.Code(p.status)) || p.flags.Has(FlagSkipBody) {
		return false
	}

	return !p.flags.Has(FlagChunked) && p.contentLength == unknownLength
}

func (p *Parser) startState() parserState {
	switch p.kind {
	case Request:
		return stateStartReq
	case Response:
		return stateStartRes
	default:
		return stateStartReqOrRes
	}
}

// newMessage returns the state following a completed message.
func (p *Parser) newMessage() parserState {
	if p.strict && !p.ShouldKeepAlive() {
		return stateDead
	}

	return p.startState()
}

// beginMessage clears everything left from the previous message.
func (p *Parser) beginMessage() {
	p.flags = 0
	p.contentLength = unknownLength
	p.major, p.minor, p.hasVersion = 0, 0, false
	p.method = method.Unknown
	p.status, p.hasStatus = 0, false
	p.upgrade = false
	p.index = 0
	p.headerState = hGeneral
	// the byte starting the message is already counted
	p.nread = 1
}

func (p *Parser) clearMarks() {
	p.fieldMark, p.valueMark, p.urlMark, p.bodyMark, p.statusMark = noMark, noMark, noMark, noMark, noMark
}

func (p *Parser) countHeader(n int) bool {
	p.nread += uint32(n)
	return p.nread <= p.maxHeader
}

// result returns an error Execute must return, if any.
func (p *Parser) result() error {
	if p.err != nil {
		return p.err
	}

	if p.paused {
		return ErrPaused
	}

	return nil
}

// notify runs the callback and reports whether parsing may go on.
func (p *Parser) notify(cb Notify) bool {
	if cb != nil {
		if err := cb(p); err != nil {
			p.err = callbackAbort(err)
		}
	}

	return p.err == nil && !p.paused
}

// emit passes the data between the mark and the end to the callback, if the mark is set,
// and reports whether parsing may go on.
func (p *Parser) emit(cb Data, mark *int, data []byte, end int) bool {
	if *mark == noMark {
		return true
	}

	start := *mark
	*mark = noMark

	if cb != nil {
		if err := cb(p, data[start:end]); err != nil {
			p.err = callbackAbort(err)
		}
	}

	return p.err == nil && !p.paused
}

func mark(m *int, at int) {
	if *m == noMark {
		*m = at
	}
}
