package httpparser

import (
	"bytes"
	"math"

	"github.com/indigo-web/httparse/http/method"
	"github.com/indigo-web/httparse/internal/hexconv"
	"github.com/indigo-web/httparse/internal/httpchars"
	"github.com/indigo-web/httparse/internal/urlfsm"
)

type outcome uint8

const (
	// proceed moves on to the next byte.
	proceed outcome = iota
	// reexecute dispatches the same byte again under the new state.
	reexecute
	// halt stops the execution. The returned position is the number of consumed bytes.
	halt
)

// Execute feeds the parser with the next part of the stream and returns the number of
// consumed bytes. All bytes are consumed, unless an error occurred, the parser was paused
// or the connection was upgraded. Empty data signals the end of the stream.
func (p *Parser) Execute(data []byte) (int, error) {
	if p.err != nil {
		return 0, p.err
	}

	if p.paused {
		return 0, ErrPaused
	}

	if p.upgraded {
		return 0, nil
	}

	if len(data) == 0 {
		return p.eof()
	}

	p.clearMarks()

	switch {
	case p.state == stateHeaderField:
		p.fieldMark = 0
	case p.state == stateHeaderValue:
		p.valueMark = 0
	case p.state == stateResStatus:
		p.statusMark = 0
	case p.state.isURL():
		p.urlMark = 0
	}

	for i := 0; i < len(data); i++ {
		if p.state.parsingHeader() && !p.countHeader(1) {
			p.err = ErrHeaderOverflow
			return i, p.err
		}

		var o outcome
		for hops := 0; ; hops++ {
			if hops > maxReexecute {
				p.err = ErrInvalidInternalState
				return i, p.err
			}

			if i, o = p.dispatch(data, i); o != reexecute {
				break
			}
		}

		if o == halt {
			return i, p.result()
		}
	}

	// at most one of the marks is set at this point
	end := len(data)
	ok := p.emit(p.callbacks.OnHeaderField, &p.fieldMark, data, end) &&
		p.emit(p.callbacks.OnHeaderValue, &p.valueMark, data, end) &&
		p.emit(p.callbacks.OnURL, &p.urlMark, data, end) &&
		p.emit(p.callbacks.OnBody, &p.bodyMark, data, end) &&
		p.emit(p.callbacks.OnStatus, &p.statusMark, data, end)
	if !ok {
		return end, p.result()
	}

	return end, nil
}

func (p *Parser) eof() (int, error) {
	switch p.state {
	case stateBodyIdentityEOF:
		p.state = p.newMessage()
		if !p.notify(p.callbacks.OnMessageComplete) {
			return 0, p.result()
		}

		return 0, nil
	case stateDead, stateStartReqOrRes, stateStartReq, stateStartRes:
		return 0, nil
	default:
		p.err = ErrInvalidEndOfStream
		return 1, p.err
	}
}

func (p *Parser) fail(i int, err error) (int, outcome) {
	p.err = err
	return i, halt
}

// dispatch processes the byte at i. Some states consume more than a single byte, in which
// case the position of the last consumed one is returned.
func (p *Parser) dispatch(data []byte, i int) (int, outcome) {
	ch := data[i]

	switch p.state {
	case stateDead:
		// the connection was closed after the previous message
		if ch == '\r' || ch == '\n' {
			return i, proceed
		}

		return p.fail(i, ErrClosedConnection)

	case stateStartReqOrRes:
		if ch == '\r' || ch == '\n' {
			return i, proceed
		}

		p.beginMessage()

		if ch != 'H' {
			p.kind = Request
			p.state = stateStartReq
			return i, reexecute
		}

		p.state = stateResOrRespH
		if !p.notify(p.callbacks.OnMessageBegin) {
			return i + 1, halt
		}

	case stateResOrRespH:
		if ch == 'T' {
			p.kind = Response
			p.state = stateResHT
			return i, proceed
		}

		if ch != 'E' {
			return p.fail(i, ErrInvalidConstant)
		}

		p.kind = Request
		p.method = method.HEAD
		p.index = 2
		p.state = stateReqMethod

	case stateStartRes:
		if ch == '\r' || ch == '\n' {
			return i, proceed
		}

		p.beginMessage()

		if ch != 'H' {
			return p.fail(i, ErrInvalidConstant)
		}

		p.state = stateResH
		if !p.notify(p.callbacks.OnMessageBegin) {
			return i + 1, halt
		}

	case stateResH, stateResHT, stateResHTT, stateResHTTP:
		if ch != httpLiteral[p.state-stateResH+1] {
			return p.fail(i, ErrInvalidConstant)
		}

		p.state++

	case stateResFirstHTTPMajor:
		if !httpchars.IsNum(ch) {
			return p.fail(i, ErrInvalidVersion)
		}

		p.major, p.hasVersion = uint16(ch-'0'), true
		p.state = stateResHTTPMajor

	case stateResHTTPMajor:
		if ch == '.' {
			p.state = stateResFirstHTTPMinor
			return i, proceed
		}

		if !accumulateVersion(&p.major, ch) {
			return p.fail(i, ErrInvalidVersion)
		}

	case stateResFirstHTTPMinor:
		if !httpchars.IsNum(ch) {
			return p.fail(i, ErrInvalidVersion)
		}

		p.minor = uint16(ch - '0')
		p.state = stateResHTTPMinor

	case stateResHTTPMinor:
		if ch == ' ' {
			p.state = stateResFirstStatusCode
			return i, proceed
		}

		if !accumulateVersion(&p.minor, ch) {
			return p.fail(i, ErrInvalidVersion)
		}

	case stateResFirstStatusCode:
		if !httpchars.IsNum(ch) {
			if ch == ' ' {
				return i, proceed
			}

			return p.fail(i, ErrInvalidStatus)
		}

		p.status, p.hasStatus = uint16(ch-'0'), true
		p.state = stateResStatusCode

	case stateResStatusCode:
		if !httpchars.IsNum(ch) {
			switch ch {
			case ' ':
				p.state = stateResStatusStart
			case '\r':
				p.state = stateResLineAlmostDone
			case '\n':
				p.state = stateHeaderFieldStart
			default:
				return p.fail(i, ErrInvalidStatus)
			}

			return i, proceed
		}

		p.status = p.status*10 + uint16(ch-'0')
		if p.status >= 1000 {
			return p.fail(i, ErrInvalidStatus)
		}

	case stateResStatusStart:
		switch ch {
		case '\r':
			p.state = stateResLineAlmostDone
		case '\n':
			p.state = stateHeaderFieldStart
		default:
			mark(&p.statusMark, i)
			p.state = stateResStatus
			p.index = 0
		}

	case stateResStatus:
		switch ch {
		case '\r':
			p.state = stateResLineAlmostDone
		case '\n':
			p.state = stateHeaderFieldStart
		default:
			return i, proceed
		}

		if !p.emit(p.callbacks.OnStatus, &p.statusMark, data, i) {
			return i + 1, halt
		}

	case stateResLineAlmostDone:
		if p.strict && ch != '\n' {
			return p.fail(i, ErrStrictModeViolation)
		}

		p.state = stateHeaderFieldStart

	case stateStartReq:
		if ch == '\r' || ch == '\n' {
			return i, proceed
		}

		p.beginMessage()

		if !httpchars.IsAlpha(ch) {
			return p.fail(i, ErrInvalidMethod)
		}

		p.method = method.Candidate(ch)
		if p.method == method.Unknown {
			return p.fail(i, ErrInvalidMethod)
		}

		p.index = 1
		p.state = stateReqMethod
		if !p.notify(p.callbacks.OnMessageBegin) {
			return i + 1, halt
		}

	case stateReqMethod:
		name := p.method.String()

		switch {
		case ch == ' ' && p.index == len(name):
			p.state = stateReqSpacesBeforeURL
		case p.index < len(name) && ch == name[p.index]:
		case (ch >= 'A' && ch <= 'Z') || ch == '-':
			if p.method = method.Disambiguate(p.method, p.index, ch); p.method == method.Unknown {
				return p.fail(i, ErrInvalidMethod)
			}
		default:
			return p.fail(i, ErrInvalidMethod)
		}

		p.index++

	case stateReqSpacesBeforeURL:
		if ch == ' ' {
			return i, proceed
		}

		mark(&p.urlMark, i)
		if p.method == method.CONNECT {
			p.state = stateReqServerStart
		}

		if !p.advanceURL(ch) {
			return p.fail(i, ErrInvalidURL)
		}

	case stateReqSchema, stateReqSchemaSlash, stateReqSchemaSlashSlash, stateReqServerStart,
		stateReqServer, stateReqServerWithAt, stateReqPath, stateReqQueryStringStart,
		stateReqQueryString, stateReqFragmentStart, stateReqFragment:
		switch ch {
		case ' ', '\r', '\n':
			if !p.state.urlState().Terminable() {
				return p.fail(i, ErrInvalidURL)
			}
		default:
			if !p.advanceURL(ch) {
				return p.fail(i, ErrInvalidURL)
			}

			return i, proceed
		}

		switch ch {
		case ' ':
			p.state = stateReqHTTPStart
		case '\r':
			// HTTP/0.9 request line carries no version
			p.major, p.minor, p.hasVersion = 0, 9, true
			p.state = stateReqLineAlmostDone
		case '\n':
			p.major, p.minor, p.hasVersion = 0, 9, true
			p.state = stateHeaderFieldStart
		}

		if !p.emit(p.callbacks.OnURL, &p.urlMark, data, i) {
			return i + 1, halt
		}

	case stateReqHTTPStart:
		switch ch {
		case 'H':
			p.state = stateReqHTTPH
		case ' ':
		default:
			return p.fail(i, ErrInvalidConstant)
		}

	case stateReqHTTPH, stateReqHTTPHT, stateReqHTTPHTT, stateReqHTTPHTTP:
		if ch != httpLiteral[p.state-stateReqHTTPH+1] {
			return p.fail(i, ErrInvalidConstant)
		}

		p.state++

	case stateReqFirstHTTPMajor:
		if ch < '1' || ch > '9' {
			return p.fail(i, ErrInvalidVersion)
		}

		p.major, p.hasVersion = uint16(ch-'0'), true
		p.state = stateReqHTTPMajor

	case stateReqHTTPMajor:
		if ch == '.' {
			p.state = stateReqFirstHTTPMinor
			return i, proceed
		}

		if !accumulateVersion(&p.major, ch) {
			return p.fail(i, ErrInvalidVersion)
		}

	case stateReqFirstHTTPMinor:
		if !httpchars.IsNum(ch) {
			return p.fail(i, ErrInvalidVersion)
		}

		p.minor = uint16(ch - '0')
		p.state = stateReqHTTPMinor

	case stateReqHTTPMinor:
		switch ch {
		case '\r':
			p.state = stateReqLineAlmostDone
		case '\n':
			p.state = stateHeaderFieldStart
		default:
			if !accumulateVersion(&p.minor, ch) {
				return p.fail(i, ErrInvalidVersion)
			}
		}

	case stateReqLineAlmostDone:
		if ch != '\n' {
			return p.fail(i, ErrLFExpected)
		}

		p.state = stateHeaderFieldStart

	case stateHeaderFieldStart:
		switch ch {
		case '\r':
			p.state = stateHeadersAlmostDone
			return i, proceed
		case '\n':
			// a bare LF instead of CRLF is the end of headers as well
			p.state = stateHeadersAlmostDone
			return i, reexecute
		}

		c := httpchars.Token(ch, p.strict)
		if c == 0 {
			return p.fail(i, ErrInvalidHeaderToken)
		}

		mark(&p.fieldMark, i)
		p.index = 0
		p.state = stateHeaderField

		switch c {
		case 'c':
			p.headerState = hC
		case 'p':
			p.headerState = hMatchingProxyConnection
		case 't':
			p.headerState = hMatchingTransferEncoding
		case 'u':
			p.headerState = hMatchingUpgrade
		default:
			p.headerState = hGeneral
		}

	case stateHeaderField:
		return p.headerField(data, i)

	case stateHeaderValueDiscardWS:
		switch ch {
		case ' ', '\t':
			return i, proceed
		case '\r':
			p.state = stateHeaderValueDiscardWSAlmostDone
			return i, proceed
		case '\n':
			p.state = stateHeaderValueDiscardLWS
			return i, proceed
		}

		return p.headerValueStart(i, ch)

	case stateHeaderValueStart:
		return p.headerValueStart(i, ch)

	case stateHeaderValue:
		return p.headerValue(data, i)

	case stateHeaderAlmostDone:
		if p.strict && ch != '\n' {
			return p.fail(i, ErrStrictModeViolation)
		}

		p.state = stateHeaderValueLWS

	case stateHeaderValueLWS:
		if ch == ' ' || ch == '\t' {
			// obsolete line folding, the value continues
			p.state = stateHeaderValueStart
			return i, reexecute
		}

		p.finishHeader()
		p.state = stateHeaderFieldStart
		return i, reexecute

	case stateHeaderValueDiscardWSAlmostDone:
		if p.strict && ch != '\n' {
			return p.fail(i, ErrStrictModeViolation)
		}

		p.state = stateHeaderValueDiscardLWS

	case stateHeaderValueDiscardLWS:
		if ch == ' ' || ch == '\t' {
			p.state = stateHeaderValueDiscardWS
			return i, proceed
		}

		p.finishHeader()

		// the value is empty
		mark(&p.valueMark, i)
		p.state = stateHeaderFieldStart
		if !p.emit(p.callbacks.OnHeaderValue, &p.valueMark, data, i) {
			return i, halt
		}

		return i, reexecute

	case stateHeadersAlmostDone:
		if p.strict && ch != '\n' {
			return p.fail(i, ErrStrictModeViolation)
		}

		if p.flags.Has(FlagTrailing) {
			// end of a chunked message
			p.state = stateMessageDone
			if !p.notify(p.callbacks.OnChunkComplete) {
				return i, halt
			}

			return i, reexecute
		}

		p.state = stateHeadersDone
		p.upgrade = p.flags.Has(FlagUpgrade|FlagConnectionUpgrade) || p.method == method.CONNECT

		if cb := p.callbacks.OnHeadersComplete; cb != nil {
			skipBody, err := cb(p)
			if err != nil {
				p.err = callbackAbort(err)
				return i, halt
			}

			if skipBody {
				p.flags |= FlagSkipBody
			}
		}

		if p.err != nil || p.paused {
			return i, halt
		}

		return i, reexecute

	case stateHeadersDone:
		if p.strict && ch != '\n' {
			return p.fail(i, ErrStrictModeViolation)
		}

		p.nread = 0
		return p.selectBody(i)

	case stateBodyIdentity:
		toRead := min(p.contentLength, uint64(len(data)-i))
		mark(&p.bodyMark, i)
		p.contentLength -= toRead
		i += int(toRead) - 1

		if p.contentLength == 0 {
			p.state = stateMessageDone

			// the last byte is included into the body, but left unconsumed, so it triggers
			// the message completion
			if !p.emit(p.callbacks.OnBody, &p.bodyMark, data, i+1) {
				return i, halt
			}

			return i, reexecute
		}

	case stateBodyIdentityEOF:
		mark(&p.bodyMark, i)
		return len(data) - 1, proceed

	case stateMessageDone:
		p.state = p.newMessage()
		p.upgraded = p.upgrade

		if !p.notify(p.callbacks.OnMessageComplete) || p.upgrade {
			return i + 1, halt
		}

	case stateChunkSizeStart:
		digit := hexconv.Halfbyte[ch]
		if digit == 0xFF {
			return p.fail(i, ErrInvalidChunkSize)
		}

		p.contentLength = uint64(digit)
		p.state = stateChunkSize

	case stateChunkSize:
		if ch == '\r' {
			p.state = stateChunkSizeAlmostDone
			return i, proceed
		}

		digit := hexconv.Halfbyte[ch]
		if digit == 0xFF {
			if ch == ';' || ch == ' ' {
				p.state = stateChunkParameters
				return i, proceed
			}

			return p.fail(i, ErrInvalidChunkSize)
		}

		if (math.MaxUint64-16)/16 < p.contentLength {
			return p.fail(i, ErrInvalidChunkSize)
		}

		p.contentLength = p.contentLength<<4 | uint64(digit)

	case stateChunkParameters:
		// chunk extensions are ignored
		if ch == '\r' {
			p.state = stateChunkSizeAlmostDone
		}

	case stateChunkSizeAlmostDone:
		if p.strict && ch != '\n' {
			return p.fail(i, ErrStrictModeViolation)
		}

		p.nread = 0

		if p.contentLength == 0 {
			p.flags |= FlagTrailing
			p.state = stateHeaderFieldStart
		} else {
			p.state = stateChunkData
		}

		if !p.notify(p.callbacks.OnChunkHeader) {
			return i + 1, halt
		}

	case stateChunkData:
		toRead := min(p.contentLength, uint64(len(data)-i))
		mark(&p.bodyMark, i)
		p.contentLength -= toRead
		i += int(toRead) - 1

		if p.contentLength == 0 {
			p.state = stateChunkDataAlmostDone
		}

	case stateChunkDataAlmostDone:
		if p.strict && ch != '\r' {
			return p.fail(i, ErrStrictModeViolation)
		}

		p.state = stateChunkDataDone
		if !p.emit(p.callbacks.OnBody, &p.bodyMark, data, i) {
			return i + 1, halt
		}

	case stateChunkDataDone:
		if p.strict && ch != '\n' {
			return p.fail(i, ErrStrictModeViolation)
		}

		p.nread = 0
		p.state = stateChunkSizeStart
		if !p.notify(p.callbacks.OnChunkComplete) {
			return i + 1, halt
		}

	default:
		return p.fail(i, ErrInvalidInternalState)
	}

	return i, proceed
}

func (p *Parser) advanceURL(ch byte) bool {
	next := urlfsm.Next(p.state.urlState(), ch, p.strict)
	if next == urlfsm.Dead {
		return false
	}

	p.state = fromURLState(next)
	return true
}

func accumulateVersion(v *uint16, ch byte) bool {
	if !httpchars.IsNum(ch) {
		return false
	}

	*v = *v*10 + uint16(ch-'0')
	return *v < 1000
}

// headerField consumes as many name characters as there are at once.
func (p *Parser) headerField(data []byte, i int) (int, outcome) {
	start := i
	end := p.headerScanEnd(data, start)
	ch := data[i]

	for ; i < end; i++ {
		ch = data[i]
		c := httpchars.Token(ch, p.strict)
		if c == 0 {
			break
		}

		p.matchHeaderName(ch, c)
	}

	// the byte at start is already counted
	if i == end {
		i--
		if !p.countHeader(i - start) {
			return p.fail(i, ErrHeaderOverflow)
		}

		return i, proceed
	}

	if !p.countHeader(i - start) {
		return p.fail(i, ErrHeaderOverflow)
	}

	if ch != ':' {
		return p.fail(i, ErrInvalidHeaderToken)
	}

	p.state = stateHeaderValueDiscardWS
	if !p.emit(p.callbacks.OnHeaderField, &p.fieldMark, data, i) {
		return i + 1, halt
	}

	return i, proceed
}

func (p *Parser) matchHeaderName(ch, c byte) {
	switch p.headerState {
	case hGeneral:
	case hC:
		p.index++
		p.headerState = hGeneral
		if c == 'o' {
			p.headerState = hCO
		}
	case hCO:
		p.index++
		p.headerState = hGeneral
		if c == 'n' {
			p.headerState = hCON
		}
	case hCON:
		p.index++
		switch c {
		case 'n':
			p.headerState = hMatchingConnection
		case 't':
			p.headerState = hMatchingContentLength
		default:
			p.headerState = hGeneral
		}
	case hMatchingConnection:
		p.matchHeaderToken(c, connection, hConnection, hGeneral)
	case hMatchingProxyConnection:
		p.matchHeaderToken(c, proxyConnection, hConnection, hGeneral)
	case hMatchingContentLength:
		p.matchHeaderToken(c, contentLength, hContentLength, hGeneral)
	case hMatchingTransferEncoding:
		p.matchHeaderToken(c, transferEncoding, hTransferEncoding, hGeneral)
	case hMatchingUpgrade:
		p.matchHeaderToken(c, upgrade, hUpgrade, hGeneral)
	case hConnection, hContentLength, hTransferEncoding, hUpgrade:
		// trailing spaces are tolerated outside the strict mode
		if ch != ' ' {
			p.headerState = hGeneral
		}
	}
}

// matchHeaderToken advances the shared index and compares the char against the token at it.
// The state becomes matched when the whole token is seen, or mismatch when the char
// doesn't fit.
func (p *Parser) matchHeaderToken(c byte, token string, matched, mismatch headerState) {
	p.index++

	switch {
	case p.index >= len(token) || c != token[p.index]:
		p.headerState = mismatch
	case p.index == len(token)-1:
		p.headerState = matched
	}
}

func (p *Parser) headerValueStart(i int, ch byte) (int, outcome) {
	mark(&p.valueMark, i)
	p.state = stateHeaderValue
	p.index = 0

	c := httpchars.Lower(ch)

	switch p.headerState {
	case hUpgrade:
		p.flags |= FlagUpgrade
		p.headerState = hGeneral
	case hTransferEncoding:
		p.headerState = hGeneral
		if c == 'c' {
			p.headerState = hMatchingTransferEncodingChunked
		}
	case hContentLength:
		if !httpchars.IsNum(ch) {
			return p.fail(i, ErrInvalidContentLength)
		}

		p.contentLength = uint64(ch - '0')
	case hConnection:
		p.headerState = connectionTokenState(c)
	case hMatchingConnectionTokenStart:
		// a continuation of a multi-value Connection header
	default:
		p.headerState = hGeneral
	}

	return i, proceed
}

func connectionTokenState(c byte) headerState {
	switch c {
	case 'k':
		return hMatchingConnectionKeepAlive
	case 'c':
		return hMatchingConnectionClose
	case 'u':
		return hMatchingConnectionUpgrade
	default:
		return hMatchingConnectionToken
	}
}

// headerValue consumes the value up to the line end. The values of unrecognized headers
// are skipped by searching for the line end directly.
func (p *Parser) headerValue(data []byte, i int) (int, outcome) {
	start := i
	end := p.headerScanEnd(data, start)
	hs := p.headerState

	for ; i < end; i++ {
		ch := data[i]

		switch ch {
		case '\r':
			p.state = stateHeaderAlmostDone
			p.headerState = hs
			if !p.countHeader(i - start) {
				return p.fail(i, ErrHeaderOverflow)
			}

			if !p.emit(p.callbacks.OnHeaderValue, &p.valueMark, data, i) {
				return i + 1, halt
			}

			return i, proceed
		case '\n':
			p.state = stateHeaderAlmostDone
			p.headerState = hs
			if !p.countHeader(i - start) {
				return p.fail(i, ErrHeaderOverflow)
			}

			if !p.emit(p.callbacks.OnHeaderValue, &p.valueMark, data, i) {
				return i, halt
			}

			return i, reexecute
		}

		c := httpchars.Lower(ch)

		switch hs {
		case hGeneral:
			if n := bytes.IndexAny(data[i:end], "\r\n"); n != -1 {
				i += n - 1
			} else {
				i = end - 1
			}
		case hContentLength:
			if ch == ' ' {
				break
			}

			if !httpchars.IsNum(ch) {
				p.headerState = hs
				return p.fail(i, ErrInvalidContentLength)
			}

			if (math.MaxUint64-10)/10 < p.contentLength {
				p.headerState = hs
				return p.fail(i, ErrInvalidContentLength)
			}

			p.contentLength = p.contentLength*10 + uint64(ch-'0')
		case hMatchingTransferEncodingChunked:
			p.index++
			switch {
			case p.index >= len(chunked) || c != chunked[p.index]:
				hs = hGeneral
			case p.index == len(chunked)-1:
				hs = hTransferEncodingChunked
			}
		case hMatchingConnectionTokenStart:
			switch {
			case ch == ' ' || ch == '\t':
				// skip the whitespace between tokens
			case c == 'k' || c == 'c' || c == 'u':
				hs = connectionTokenState(c)
			case httpchars.Token(c, true) != 0:
				hs = hMatchingConnectionToken
			default:
				hs = hGeneral
			}
		case hMatchingConnectionKeepAlive:
			hs = p.matchConnectionToken(hs, c, keepAlive, hConnectionKeepAlive)
		case hMatchingConnectionClose:
			hs = p.matchConnectionToken(hs, c, closeToken, hConnectionClose)
		case hMatchingConnectionUpgrade:
			hs = p.matchConnectionToken(hs, c, upgrade, hConnectionUpgrade)
		case hMatchingConnectionToken:
			if ch == ',' {
				hs = hMatchingConnectionTokenStart
				p.index = 0
			}
		case hTransferEncodingChunked:
			if ch != ' ' {
				hs = hGeneral
			}
		case hConnectionKeepAlive, hConnectionClose, hConnectionUpgrade:
			if ch == ',' {
				p.flags |= connectionFlag(hs)
				hs = hMatchingConnectionTokenStart
				p.index = 0
			} else if ch != ' ' {
				hs = hMatchingConnectionToken
			}
		default:
			p.state = stateHeaderValue
			hs = hGeneral
		}
	}

	p.headerState = hs
	i--
	if !p.countHeader(i - start) {
		return p.fail(i, ErrHeaderOverflow)
	}

	return i, proceed
}

// headerScanEnd bounds a scan starting at the already counted byte at start by the header
// bytes left, so the byte exceeding the limit is the first one left unscanned.
func (p *Parser) headerScanEnd(data []byte, start int) int {
	return min(len(data), start+int(p.maxHeader-p.nread)+1)
}

func (p *Parser) matchConnectionToken(hs headerState, c byte, token string, matched headerState) headerState {
	p.index++

	switch {
	case p.index >= len(token) || c != token[p.index]:
		return hMatchingConnectionToken
	case p.index == len(token)-1:
		return matched
	default:
		return hs
	}
}

func connectionFlag(hs headerState) Flags {
	switch hs {
	case hConnectionKeepAlive:
		return FlagConnectionKeepAlive
	case hConnectionClose:
		return FlagConnectionClose
	case hConnectionUpgrade:
		return FlagConnectionUpgrade
	case hTransferEncodingChunked:
		return FlagChunked
	default:
		return 0
	}
}

// finishHeader applies the flags the completed header implies.
func (p *Parser) finishHeader() {
	p.flags |= connectionFlag(p.headerState)
}

// selectBody decides, once the headers are done, how the body is going to be framed.
func (p *Parser) selectBody(i int) (int, outcome) {
	hasBody := p.flags.Has(FlagChunked) || (p.contentLength > 0 && p.contentLength != unknownLength)

	if p.upgrade && (p.method == method.CONNECT || p.flags.Has(FlagSkipBody) || !hasBody) {
		// the rest of the stream belongs to another protocol
		p.state = p.newMessage()
		p.upgraded = true
		p.notify(p.callbacks.OnMessageComplete)
		return i + 1, halt
	}

	switch {
	case p.flags.Has(FlagSkipBody):
		p.state = p.newMessage()
	case p.flags.Has(FlagChunked):
		// Content-Length is ignored for chunked messages
		p.state = stateChunkSizeStart
		return i, proceed
	case p.contentLength == 0:
		p.state = p.newMessage()
	case p.contentLength != unknownLength:
		p.state = stateBodyIdentity
		return i, proceed
	case p.messageNeedsEOF():
		p.state = stateBodyIdentityEOF
		return i, proceed
	default:
		// no length and no need to wait for the stream end, so there's simply no body
		p.state = p.newMessage()
	}

	if !p.notify(p.callbacks.OnMessageComplete) {
		return i + 1, halt
	}

	return i, proceed
}
