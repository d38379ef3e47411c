// Package coding decodes message bodies compressed with a content coding. The decoders are
// reused between bodies, so a single Decoders instance must not be shared among goroutines.
package coding

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/indigo-web/utils/strcomp"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

var (
	ErrUnsupported = errors.New("unsupported content coding")
	ErrTooLarge    = errors.New("decoded body exceeds the limit")
)

type Decoders struct {
	limit int64
	src   bytes.Reader
	out   [2]bytes.Buffer

	gzip    *gzip.Reader
	zlib    io.ReadCloser
	deflate io.ReadCloser
	zstd    *zstd.Decoder
}

// New returns decoders producing at most limit bytes per body.
func New(limit int) *Decoders {
	return &Decoders{limit: int64(limit)}
}

// Supported reports whether the coding token is known. Identity is known, too.
func Supported(token string) bool {
	for _, known := range []string{"gzip", "x-gzip", "deflate", "zstd", "identity"} {
		if strcomp.EqualFold(token, known) {
			return true
		}
	}

	return false
}

// Decode undoes the codings listed in the Content-Encoding value, in reverse order of
// their application. Nothing is decoded if any of the codings is unsupported. The returned
// slice is valid until the next call.
func (d *Decoders) Decode(contentEncoding string, body []byte) ([]byte, error) {
	tokens := strings.Split(contentEncoding, ",")
	for i, token := range tokens {
		tokens[i] = strings.TrimSpace(token)
		if len(tokens[i]) > 0 && !Supported(tokens[i]) {
			return nil, ErrUnsupported
		}
	}

	step := 0

	for i := len(tokens) - 1; i >= 0; i-- {
		token := tokens[i]
		if len(token) == 0 || strcomp.EqualFold(token, "identity") {
			continue
		}

		// the previous step's output is the input of this one, so they must differ
		out := &d.out[step%2]
		out.Reset()
		step++

		decoded, err := d.decode(token, body, out)
		if err != nil {
			return nil, err
		}

		body = decoded
	}

	return body, nil
}

func (d *Decoders) decode(token string, body []byte, out *bytes.Buffer) ([]byte, error) {
	d.src.Reset(body)

	r, err := d.reader(token, body)
	if err != nil {
		return nil, err
	}

	n, err := out.ReadFrom(io.LimitReader(r, d.limit+1))
	if err != nil {
		return nil, err
	}

	if n > d.limit {
		return nil, ErrTooLarge
	}

	return out.Bytes(), nil
}

func (d *Decoders) reader(token string, body []byte) (io.Reader, error) {
	switch {
	case strcomp.EqualFold(token, "gzip"), strcomp.EqualFold(token, "x-gzip"):
		if d.gzip == nil {
			d.gzip = new(gzip.Reader)
		}

		return d.gzip, d.gzip.Reset(&d.src)
	case strcomp.EqualFold(token, "deflate"):
		// deflate is meant to be zlib-wrapped, however raw streams are seen in the wild
		if isZlib(body) {
			if d.zlib == nil {
				r, err := zlib.NewReader(&d.src)
				d.zlib = r
				return r, err
			}

			return d.zlib, d.zlib.(zlib.Resetter).Reset(&d.src, nil)
		}

		if d.deflate == nil {
			d.deflate = flate.NewReader(nil)
		}

		return d.deflate, d.deflate.(flate.Resetter).Reset(&d.src, nil)
	case strcomp.EqualFold(token, "zstd"):
		if d.zstd == nil {
			r, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
			if err != nil {
				return nil, err
			}

			d.zstd = r
		}

		return d.zstd, d.zstd.Reset(&d.src)
	default:
		return nil, ErrUnsupported
	}
}

// isZlib checks the zlib header: deflate compression method and a valid checksum.
func isZlib(body []byte) bool {
	if len(body) < 2 {
		return false
	}

	return body[0]&0x0F == 8 && (uint16(body[0])<<8|uint16(body[1]))%31 == 0
}

// Close releases the resources held by decoders.
func (d *Decoders) Close() {
	if d.zstd != nil {
		d.zstd.Close()
	}
}
