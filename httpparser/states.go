package httpparser

import "github.com/indigo-web/httparse/internal/urlfsm"

type (
	parserState uint8
	headerState uint8
)

// The order matters: every state up to and including stateHeadersDone is a header state,
// which is what the header size guard relies on. URL states must keep the same order as
// in urlfsm, as they're converted back and forth by offset.
const (
	stateDead parserState = iota + 1

	stateStartReqOrRes
	stateResOrRespH
	stateStartRes
	stateResH
	stateResHT
	stateResHTT
	stateResHTTP
	stateResFirstHTTPMajor
	stateResHTTPMajor
	stateResFirstHTTPMinor
	stateResHTTPMinor
	stateResFirstStatusCode
	stateResStatusCode
	stateResStatusStart
	stateResStatus
	stateResLineAlmostDone

	stateStartReq
	stateReqMethod
	stateReqSpacesBeforeURL
	stateReqSchema
	stateReqSchemaSlash
	stateReqSchemaSlashSlash
	stateReqServerStart
	stateReqServer
	stateReqServerWithAt
	stateReqPath
	stateReqQueryStringStart
	stateReqQueryString
	stateReqFragmentStart
	stateReqFragment
	stateReqHTTPStart
	stateReqHTTPH
	stateReqHTTPHT
	stateReqHTTPHTT
	stateReqHTTPHTTP
	stateReqFirstHTTPMajor
	stateReqHTTPMajor
	stateReqFirstHTTPMinor
	stateReqHTTPMinor
	stateReqLineAlmostDone

	stateHeaderFieldStart
	stateHeaderField
	stateHeaderValueDiscardWS
	stateHeaderValueDiscardWSAlmostDone
	stateHeaderValueDiscardLWS
	stateHeaderValueStart
	stateHeaderValue
	stateHeaderValueLWS
	stateHeaderAlmostDone

	stateChunkSizeStart
	stateChunkSize
	stateChunkParameters
	stateChunkSizeAlmostDone

	stateHeadersAlmostDone
	stateHeadersDone

	stateChunkData
	stateChunkDataAlmostDone
	stateChunkDataDone

	stateBodyIdentity
	stateBodyIdentityEOF

	stateMessageDone
)

func (s parserState) parsingHeader() bool {
	return s <= stateHeadersDone
}

func (s parserState) isURL() bool {
	return s >= stateReqSchema && s <= stateReqFragment
}

func (s parserState) urlState() urlfsm.State {
	return urlfsm.State(s-stateReqSpacesBeforeURL) + urlfsm.SpacesBeforeURL
}

func fromURLState(s urlfsm.State) parserState {
	return parserState(s-urlfsm.SpacesBeforeURL) + stateReqSpacesBeforeURL
}

const (
	hGeneral headerState = iota
	hC
	hCO
	hCON

	hMatchingConnection
	hMatchingProxyConnection
	hMatchingContentLength
	hMatchingTransferEncoding
	hMatchingUpgrade

	hConnection
	hContentLength
	hTransferEncoding
	hUpgrade

	hMatchingTransferEncodingChunked
	hMatchingConnectionTokenStart
	hMatchingConnectionKeepAlive
	hMatchingConnectionClose
	hMatchingConnectionUpgrade
	hMatchingConnectionToken

	hTransferEncodingChunked
	hConnectionKeepAlive
	hConnectionClose
	hConnectionUpgrade
)

const (
	proxyConnection  = "proxy-connection"
	connection       = "connection"
	contentLength    = "content-length"
	transferEncoding = "transfer-encoding"
	upgrade          = "upgrade"
	chunked          = "chunked"
	keepAlive        = "keep-alive"
	closeToken       = "close"
	httpLiteral      = "HTTP/"
)
