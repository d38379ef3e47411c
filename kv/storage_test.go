package kv

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func headers() *Storage {
	return New().
		Add("Host", "example.com").
		Add("Accept-Encoding", "gzip").
		Add("Content-Type", "text/plain").
		Add("accept-encoding", "zstd")
}

func TestStorage(t *testing.T) {
	t.Run("lookup", func(t *testing.T) {
		tcs := []struct {
			Key    string
			Values []string
		}{
			{"host", []string{"example.com"}},
			{"ACCEPT-ENCODING", []string{"gzip", "zstd"}},
			{"Content-Type", []string{"text/plain"}},
			{"Content-Length", nil},
		}

		s := headers()
		for _, tc := range tcs {
			require.Equal(t, tc.Values, slices.Collect(s.Values(tc.Key)), tc.Key)
			require.Equal(t, len(tc.Values) > 0, s.Has(tc.Key), tc.Key)
		}

		value, found := s.Get("Accept-Encoding")
		require.True(t, found)
		require.Equal(t, "gzip", value)
		_, found = s.Get("Trailer")
		require.False(t, found)
		require.Empty(t, s.Value("Trailer"))
		require.Equal(t, "identity", s.ValueOr("Content-Encoding", "identity"))
	})

	t.Run("order", func(t *testing.T) {
		s := headers()
		require.Equal(t, []Pair{
			{"Host", "example.com"},
			{"Accept-Encoding", "gzip"},
			{"Content-Type", "text/plain"},
			{"accept-encoding", "zstd"},
		}, s.Expose())
		require.Equal(t, []string{"Host", "Accept-Encoding", "Content-Type"}, slices.Collect(s.Keys()))
	})

	t.Run("delete", func(t *testing.T) {
		s := headers().Delete("Accept-encoding")
		require.Equal(t, 2, s.Len())
		require.Equal(t, []Pair{
			{"Host", "example.com"},
			{"Content-Type", "text/plain"},
		}, s.Expose())
	})

	t.Run("set replaces all", func(t *testing.T) {
		s := headers().Set("ACCEPT-ENCODING", "br")
		require.Equal(t, []Pair{
			{"Host", "example.com"},
			{"ACCEPT-ENCODING", "br"},
			{"Content-Type", "text/plain"},
		}, s.Expose())
	})

	t.Run("set appends", func(t *testing.T) {
		s := New().Set("Connection", "close")
		require.Equal(t, []Pair{{"Connection", "close"}}, s.Expose())
	})

	t.Run("delete while iterating keys", func(t *testing.T) {
		s := headers()
		for key := range s.Keys() {
			s.Delete(key)
		}

		require.True(t, s.Empty())
		require.Zero(t, s.Len())
	})

	t.Run("pairs stop early", func(t *testing.T) {
		var seen []string
		for key := range headers().Pairs() {
			seen = append(seen, key)
			if len(seen) == 2 {
				break
			}
		}

		require.Equal(t, []string{"Host", "Accept-Encoding"}, seen)
	})

	t.Run("clone", func(t *testing.T) {
		s := headers()
		clone := s.Clone()
		s.Clear().Add("Upgrade", "websocket")

		require.Equal(t, 1, s.Len())
		require.Equal(t, 4, clone.Len())
		require.Equal(t, "text/plain", clone.Value("content-type"))
		require.False(t, clone.Has("upgrade"))
	})
}
