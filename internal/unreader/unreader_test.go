package unreader

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReader(t *testing.T) {
	t.Run("portions", func(t *testing.T) {
		r := New(strings.NewReader("Hello, world!"), make([]byte, 5))
		for _, want := range []string{"Hello", ", wor", "ld!"} {
			data, err := r.Read()
			require.NoError(t, err)
			require.Equal(t, want, string(data))
		}

		_, err := r.Read()
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("unread", func(t *testing.T) {
		r := New(strings.NewReader("Hello, world!"), make([]byte, 5))
		data, err := r.Read()
		require.NoError(t, err)
		r.Unread(data[3:])

		data, err = r.Read()
		require.NoError(t, err)
		require.Equal(t, "lo", string(data))

		data, err = r.Read()
		require.NoError(t, err)
		require.Equal(t, ", wor", string(data))
	})

	t.Run("drain", func(t *testing.T) {
		r := New(strings.NewReader("Hello, world!"), make([]byte, 5))
		data, err := r.Read()
		require.NoError(t, err)
		r.Unread(data[1:])

		n, err := r.Drain()
		require.NoError(t, err)
		require.Equal(t, int64(len("ello, world!")), n)
	})
}
