package status

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		for _, code := range KnownCodes {
			require.NotEqual(t, Status("Unknown Status Code"), Text(code), code)
		}

		require.Equal(t, Status("Not Found"), Text(NotFound))
		require.Equal(t, Status("Unknown Status Code"), Text(999))
		require.Equal(t, Status("Unknown Status Code"), Text(306))
	})

	t.Run("known", func(t *testing.T) {
		require.Len(t, KnownCodes, 62)
		require.Equal(t, Continue, KnownCodes[0])
		require.Equal(t, NetworkAuthenticationRequired, KnownCodes[len(KnownCodes)-1])
		require.True(t, IsKnown(UnavailableForLegalReasons))
		require.False(t, IsKnown(430))
		require.False(t, IsKnown(60000))
	})

	t.Run("bodyless", func(t *testing.T) {
		for _, code := range []Code{Continue, SwitchingProtocols, EarlyHints, NoContent, NotModified, 199} {
			require.True(t, IsBodyless(code), code)
		}

		for _, code := range []Code{OK, Created, NotFound, InternalServerError, 200, 999} {
			require.False(t, IsBodyless(code), code)
		}
	})

	t.Run("class", func(t *testing.T) {
		require.Equal(t, uint16(4), Class(Teapot))
		require.Equal(t, uint16(0), Class(99))
	})
}

func Benchmark(b *testing.B) {
	code := KnownCodes[rand.IntN(len(KnownCodes))]
	b.ResetTimer()

	for range b.N {
		_ = Text(code)
	}
}
