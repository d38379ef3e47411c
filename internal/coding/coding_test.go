package coding

import (
	"bytes"
	"strings"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

func gzipped(t *testing.T, text []byte) []byte {
	buff := bytes.NewBuffer(nil)
	w := gzip.NewWriter(buff)
	_, err := w.Write(text)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buff.Bytes()
}

func deflated(t *testing.T, text []byte) []byte {
	buff := bytes.NewBuffer(nil)
	w, err := flate.NewWriter(buff, 5)
	require.NoError(t, err)
	_, err = w.Write(text)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buff.Bytes()
}

func zlibbed(t *testing.T, text []byte) []byte {
	buff := bytes.NewBuffer(nil)
	w := zlib.NewWriter(buff)
	_, err := w.Write(text)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buff.Bytes()
}

func zstded(t *testing.T, text []byte) []byte {
	w, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer w.Close()

	return w.EncodeAll(text, nil)
}

func TestDecoders(t *testing.T) {
	text := []byte(strings.Repeat("Hello, world! Lorem ipsum! ", 100))

	tcs := []struct {
		Name     string
		Encoding string
		Body     []byte
	}{
		{"gzip", "gzip", gzipped(t, text)},
		{"x-gzip", "X-GZIP", gzipped(t, text)},
		{"raw deflate", "deflate", deflated(t, text)},
		{"zlib deflate", "deflate", zlibbed(t, text)},
		{"zstd", "zstd", zstded(t, text)},
		{"identity", "identity", text},
		{"stacked", "deflate, gzip", gzipped(t, zlibbed(t, text))},
		{"stacked with identity", "gzip, identity", gzipped(t, text)},
		{"identity in the middle", "gzip, identity, gzip", gzipped(t, gzipped(t, text))},
		{"empty token in the middle", "gzip,,zstd", zstded(t, gzipped(t, text))},
		{"three codings", "deflate, identity, gzip, zstd", zstded(t, gzipped(t, deflated(t, text)))},
	}

	d := New(len(text))
	defer d.Close()

	for _, tc := range tcs {
		t.Run(tc.Name, func(t *testing.T) {
			// twice, so the reused decoders are exercised
			for i := 0; i < 2; i++ {
				result, err := d.Decode(tc.Encoding, tc.Body)
				require.NoError(t, err)
				require.Equal(t, string(text), string(result))
			}
		})
	}
}

func TestErrors(t *testing.T) {
	text := []byte(strings.Repeat("a", 1024))

	t.Run("unsupported", func(t *testing.T) {
		_, err := New(1024).Decode("br", text)
		require.ErrorIs(t, err, ErrUnsupported)
	})

	t.Run("unsupported among supported", func(t *testing.T) {
		// the supported outer coding must not be undone either
		_, err := New(1024).Decode("br, gzip", gzipped(t, text))
		require.ErrorIs(t, err, ErrUnsupported)
	})

	t.Run("too large", func(t *testing.T) {
		_, err := New(512).Decode("gzip", gzipped(t, text))
		require.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("corrupted", func(t *testing.T) {
		_, err := New(1024).Decode("gzip", []byte("definitely not gzip"))
		require.Error(t, err)
	})
}

func TestSupported(t *testing.T) {
	require.True(t, Supported("GZip"))
	require.True(t, Supported("zstd"))
	require.True(t, Supported("identity"))
	require.False(t, Supported("br"))
}
