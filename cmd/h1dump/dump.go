package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/indigo-web/httparse/config"
	"github.com/indigo-web/httparse/http/method"
	"github.com/indigo-web/httparse/http/status"
	"github.com/indigo-web/httparse/http/url"
	"github.com/indigo-web/httparse/httpparser"
	"github.com/indigo-web/httparse/internal/coding"
	"github.com/indigo-web/httparse/internal/unreader"
	"github.com/indigo-web/httparse/kv"
	"github.com/indigo-web/httparse/message"
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"
)

var (
	errUnknownKind  = errors.New("unknown message kind")
	errBadReadSize  = errors.New("read buffer size must be positive")
	errTooManyFiles = errors.New("at most one input file is expected")
)

type Logger interface {
	Printf(format string, v ...any)
}

type options struct {
	kind   httpparser.Kind
	decode bool
	file   string
}

// parseFlags applies command-line flags onto the config.
func parseFlags(args []string, cfg *config.Config) (options, error) {
	fs := flag.NewFlagSet("h1dump", flag.ContinueOnError)
	kind := fs.String("kind", "both", "expected messages: request, response or both")
	decode := fs.Bool("decode", false, "undo the Content-Encoding of bodies")
	maxHeaderSize := fs.Uint("max-header-size", uint(cfg.Parser.MaxHeaderSize), "limit of header bytes per message")
	fs.BoolVar(&cfg.Parser.Strict, "strict", cfg.Parser.Strict, "enable the strict parsing mode")
	fs.IntVar(&cfg.Collector.BodySize.Maximal, "max-body-size", cfg.Collector.BodySize.Maximal, "limit of stored body bytes per message")
	fs.IntVar(&cfg.Dump.ReadBufferSize, "read-size", cfg.Dump.ReadBufferSize, "size of chunks the stream is fed with")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	opts := options{
		decode: *decode,
		file:   fs.Arg(0),
	}

	if fs.NArg() > 1 {
		return opts, errTooManyFiles
	}

	switch *kind {
	case "request":
		opts.kind = httpparser.Request
	case "response":
		opts.kind = httpparser.Response
	case "both":
		opts.kind = httpparser.Both
	default:
		return opts, fmt.Errorf("%w: %s", errUnknownKind, *kind)
	}

	if cfg.Dump.ReadBufferSize <= 0 {
		return opts, errBadReadSize
	}

	cfg.Parser.MaxHeaderSize = uint32(*maxHeaderSize)
	cfg.Collector.BodySize.Default = min(cfg.Collector.BodySize.Default, cfg.Collector.BodySize.Maximal)

	return opts, nil
}

// record is how a message is rendered. Target holds the components of the request target,
// when it could be split.
type record struct {
	Kind      string            `json:"kind"`
	Method    string            `json:"method,omitempty"`
	URL       string            `json:"url,omitempty"`
	Target    map[string]string `json:"target,omitempty"`
	Query     [][2]string       `json:"query,omitempty"`
	Status    status.Code       `json:"status,omitempty"`
	Reason    string            `json:"reason,omitempty"`
	Version   string            `json:"version"`
	Headers   [][2]string       `json:"headers"`
	Trailers  [][2]string       `json:"trailers,omitempty"`
	Chunks    []uint64          `json:"chunks,omitempty"`
	Body      string            `json:"body"`
	KeepAlive bool              `json:"keep_alive"`
	Upgrade   bool              `json:"upgrade,omitempty"`
}

func (d *dumper) newRecord(msg *message.Message) record {
	rec := record{
		Kind:      msg.Kind.String(),
		URL:       msg.URL,
		Status:    msg.Status,
		Reason:    msg.Reason,
		Version:   msg.Version(),
		Headers:   pairs(msg.Headers),
		Trailers:  pairs(msg.Trailers),
		Chunks:    msg.Chunks,
		Body:      string(msg.Body),
		KeepAlive: msg.KeepAlive,
		Upgrade:   msg.Upgrade,
	}

	if msg.Kind == httpparser.Request {
		rec.Method = msg.Method.String()
		rec.Target, rec.Query = d.target(msg)
	}

	return rec
}

// target splits the request target into components and the query into pairs. A target
// failing to split is left rendered as the raw URL only.
func (d *dumper) target(msg *message.Message) (map[string]string, [][2]string) {
	raw := uf.S2B(msg.URL)
	u, err := url.Parse(raw, msg.Method == method.CONNECT)
	if err != nil {
		return nil, nil
	}

	components := make(map[string]string)
	for field := range u.Fields() {
		components[field.String()] = string(u.Get(raw, field))
	}

	if !u.Has(url.Query) {
		return components, nil
	}

	d.query.Clear()
	if err = url.ParseQuery(u.Get(raw, url.Query), d.query); err != nil {
		d.logger.Printf("message %d: query: %s", d.count, err)
		return components, nil
	}

	return components, pairs(d.query)
}

func pairs(s *kv.Storage) [][2]string {
	if s.Empty() {
		return nil
	}

	result := make([][2]string, 0, s.Len())
	for key, value := range s.Pairs() {
		result = append(result, [2]string{key, value})
	}

	return result
}

type dumper struct {
	stream   *json.Stream
	decoders *coding.Decoders
	query    *kv.Storage
	logger   Logger
	count    int
}

func (d *dumper) onMessage(msg *message.Message) error {
	d.count++
	rec := d.newRecord(msg)

	if d.decoders != nil && len(msg.Body) > 0 && msg.Headers.Has("content-encoding") {
		encoding := strings.Join(slices.Collect(msg.Headers.Values("content-encoding")), ",")
		body, err := d.decoders.Decode(encoding, msg.Body)
		if err != nil {
			d.logger.Printf("message %d: body left as is: %s", d.count, err)
		} else {
			rec.Body = string(body)
		}
	}

	d.stream.WriteVal(rec)
	d.stream.WriteRaw("\n")

	return d.stream.Flush()
}

// dump parses the whole input and writes collected messages into out. When the protocol
// gets switched, the rest of the input is skipped.
func dump(in io.Reader, out io.Writer, cfg *config.Config, opts options, logger Logger) error {
	stream := json.ConfigCompatibleWithStandardLibrary.BorrowStream(out)
	defer json.ConfigCompatibleWithStandardLibrary.ReturnStream(stream)

	d := &dumper{
		stream: stream,
		query:  kv.New(),
		logger: logger,
	}

	if opts.decode {
		d.decoders = coding.New(cfg.Collector.BodySize.Maximal)
		defer d.decoders.Close()
	}

	collector := message.New(opts.kind, cfg, d.onMessage)
	src := unreader.New(in, make([]byte, cfg.Dump.ReadBufferSize))
	var offset int64

	for {
		data, err := src.Read()
		if len(data) > 0 {
			n, perr := collector.Feed(data)
			offset += int64(n)
			if perr != nil {
				return fmt.Errorf("byte %d: %w", offset, perr)
			}

			if collector.Parser().Upgraded() {
				src.Unread(data[n:])
				rest, err := src.Drain()
				logger.Printf("%d messages, the protocol switched at byte %d, %d bytes skipped", d.count, offset, rest)
				return err
			}
		}

		switch {
		case err == io.EOF:
			if err = collector.Close(); err != nil {
				return fmt.Errorf("end of stream: %w", err)
			}

			logger.Printf("%d messages, %d bytes", d.count, offset)
			return nil
		case err != nil:
			return err
		}
	}
}
