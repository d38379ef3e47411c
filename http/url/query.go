package url

import (
	"bytes"
	"errors"

	"github.com/indigo-web/httparse/kv"
	"github.com/indigo-web/utils/uf"
)

var ErrBadQuery = errors.New("bad query")

// ParseQuery splits the raw query into key-value pairs and adds them to the storage. Empty
// pairs (as in "a=1&&b=2") are skipped, a pair without '=' results in ErrBadQuery. Nothing
// is decoded, so keys and values point into the passed buffer.
func ParseQuery(raw []byte, into *kv.Storage) error {
	for len(raw) > 0 {
		pair := raw
		if amp := bytes.IndexByte(raw, '&'); amp != -1 {
			pair, raw = raw[:amp], raw[amp+1:]
		} else {
			raw = nil
		}

		if len(pair) == 0 {
			continue
		}

		eq := bytes.IndexByte(pair, '=')
		if eq == -1 {
			return ErrBadQuery
		}

		into.Add(uf.B2S(pair[:eq]), uf.B2S(pair[eq+1:]))
	}

	return nil
}
