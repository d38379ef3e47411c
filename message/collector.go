package message

import (
	"errors"

	"github.com/indigo-web/httparse/config"
	"github.com/indigo-web/httparse/http/proto"
	"github.com/indigo-web/httparse/httpparser"
	"github.com/indigo-web/httparse/internal/buffer"
	"github.com/indigo-web/httparse/kv"
	"github.com/indigo-web/utils/uf"
)

var (
	ErrFieldsTooLarge = errors.New("message fields exceed the limit")
	ErrBodyTooLarge   = errors.New("message body exceeds the limit")
)

// OnMessage is called for every completed message. A returned error stops the parsing and
// is returned from Feed wrapped into httpparser.ErrCallbackAbort.
type OnMessage func(msg *Message) error

type field uint8

const (
	fieldNone field = iota
	fieldURL
	fieldReason
	fieldKey
	fieldValue
)

// Collector feeds a parser and assembles the reported fragments into messages.
type Collector struct {
	parser    *httpparser.Parser
	onMessage OnMessage
	fields    buffer.Buffer
	body      buffer.Buffer
	msg       Message
	open      field
	key       string
	trailing  bool
	skipNext  bool
}

func New(kind httpparser.Kind, cfg *config.Config, onMessage OnMessage) *Collector {
	c := &Collector{
		onMessage: onMessage,
		fields:    buffer.New(cfg.Collector.FieldSize.Default, cfg.Collector.FieldSize.Maximal),
		body:      buffer.New(cfg.Collector.BodySize.Default, cfg.Collector.BodySize.Maximal),
		msg: Message{
			Headers:  kv.NewPrealloc(cfg.Collector.HeadersPrealloc),
			Trailers: kv.New(),
		},
	}

	c.parser = httpparser.New(kind, httpparser.Callbacks{
		OnMessageBegin:    c.onMessageBegin,
		OnURL:             c.onURL,
		OnStatus:          c.onStatus,
		OnHeaderField:     c.onHeaderField,
		OnHeaderValue:     c.onHeaderValue,
		OnHeadersComplete: c.onHeadersComplete,
		OnBody:            c.onBody,
		OnChunkHeader:     c.onChunkHeader,
		OnMessageComplete: c.onMessageComplete,
	}, cfg.Parser)

	return c
}

// Feed passes the next part of the stream to the parser. See httpparser.Parser.Execute for
// the meaning of the returned values.
func (c *Collector) Feed(data []byte) (int, error) {
	return c.parser.Execute(data)
}

// Close signals the end of the stream, completing a message whose body lasts until it.
func (c *Collector) Close() error {
	_, err := c.parser.Execute(nil)
	return err
}

// Parser exposes the underlying parser.
func (c *Collector) Parser() *httpparser.Parser {
	return c.parser
}

// SkipNextBody tells that the next message carries no body whatever its headers say. That's
// the case for responses to HEAD requests.
func (c *Collector) SkipNextBody() {
	c.skipNext = true
}

// Reset drops the message being assembled and resets the parser.
func (c *Collector) Reset(kind httpparser.Kind) {
	c.parser.Reset(kind)
	c.clear()
	c.skipNext = false
}

func (c *Collector) clear() {
	c.msg.reset()
	c.fields.Clear()
	c.body.Clear()
	c.open = fieldNone
	c.key = ""
	c.trailing = false
}

func (c *Collector) onMessageBegin(*httpparser.Parser) error {
	c.clear()
	return nil
}

func (c *Collector) onURL(_ *httpparser.Parser, data []byte) error {
	return c.appendField(fieldURL, data)
}

func (c *Collector) onStatus(_ *httpparser.Parser, data []byte) error {
	return c.appendField(fieldReason, data)
}

func (c *Collector) onHeaderField(_ *httpparser.Parser, data []byte) error {
	return c.appendField(fieldKey, data)
}

func (c *Collector) onHeaderValue(_ *httpparser.Parser, data []byte) error {
	return c.appendField(fieldValue, data)
}

func (c *Collector) onHeadersComplete(p *httpparser.Parser) (skipBody bool, err error) {
	c.flush()
	// any header from now on is a trailer
	c.trailing = true

	msg := &c.msg
	msg.Kind = p.Kind()
	msg.Method = p.Method()
	msg.Status = p.StatusCode()
	msg.Major, msg.Minor, _ = p.Version()
	msg.Proto = proto.Parse(msg.Major, msg.Minor)
	msg.KeepAlive = p.ShouldKeepAlive()
	msg.Upgrade = p.Upgrade()

	skipBody, c.skipNext = c.skipNext, false
	return skipBody, nil
}

func (c *Collector) onBody(_ *httpparser.Parser, data []byte) error {
	if !c.body.Append(data) {
		return ErrBodyTooLarge
	}

	return nil
}

func (c *Collector) onChunkHeader(p *httpparser.Parser) error {
	size, _ := p.ContentLength()
	c.msg.Chunks = append(c.msg.Chunks, size)
	return nil
}

func (c *Collector) onMessageComplete(*httpparser.Parser) error {
	c.flush()
	c.msg.Body = c.body.Finish()

	if c.onMessage == nil {
		return nil
	}

	return c.onMessage(&c.msg)
}

// appendField adds the fragment to the field, completing the previous one if it was
// another field.
func (c *Collector) appendField(f field, data []byte) error {
	if c.open != f {
		c.flush()
		c.open = f
	}

	if !c.fields.Append(data) {
		return ErrFieldsTooLarge
	}

	return nil
}

func (c *Collector) flush() {
	if c.open == fieldNone {
		return
	}

	value := uf.B2S(c.fields.Finish())

	switch c.open {
	case fieldURL:
		c.msg.URL = value
	case fieldReason:
		c.msg.Reason = value
	case fieldKey:
		c.key = value
	case fieldValue:
		if c.trailing {
			c.msg.Trailers.Add(c.key, value)
		} else {
			c.msg.Headers.Add(c.key, value)
		}
	}

	c.open = fieldNone
}
