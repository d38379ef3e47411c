package httpchars

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToken(t *testing.T) {
	t.Run("lowercases letters", func(t *testing.T) {
		for c := byte('A'); c <= 'Z'; c++ {
			require.Equal(t, c|0x20, Token(c, true))
		}
	})

	t.Run("separators", func(t *testing.T) {
		for _, c := range []byte("()<>@,;:\\\"/[]?={}\t\x00\x7f\x80") {
			require.Zero(t, Token(c, true), "%q", c)
			require.Zero(t, Token(c, false), "%q", c)
		}
	})

	t.Run("space", func(t *testing.T) {
		require.Zero(t, Token(' ', true))
		require.Equal(t, byte(' '), Token(' ', false))
	})

	t.Run("specials", func(t *testing.T) {
		for _, c := range []byte("!#$%&'*+-.^_`|~09") {
			require.Equal(t, c, Token(c, true), "%q", c)
		}
	})
}

func TestURLChar(t *testing.T) {
	t.Run("delimiters", func(t *testing.T) {
		for _, c := range []byte("#? \r\n\x00\x7f") {
			require.False(t, IsURLChar(c, false), "%q", c)
			require.False(t, IsURLChar(c, true), "%q", c)
		}
	})

	t.Run("lenient", func(t *testing.T) {
		for _, c := range []byte("\t\f\x80\xff") {
			require.True(t, IsURLChar(c, false), "%q", c)
			require.False(t, IsURLChar(c, true), "%q", c)
		}
	})

	t.Run("visible", func(t *testing.T) {
		for _, c := range []byte("/abcXYZ019!\"$%&'()*+,-.:;<=>@[\\]^_`{|}~") {
			require.True(t, IsURLChar(c, true), "%q", c)
		}
	})
}

func TestHostAndUserinfo(t *testing.T) {
	require.True(t, IsHostChar('_', false))
	require.False(t, IsHostChar('_', true))
	require.True(t, IsHostChar('-', true))
	require.False(t, IsHostChar(':', false))

	for _, c := range []byte("aZ9-_.!~*'()%;:&=+$,") {
		require.True(t, IsUserinfoChar(c), "%q", c)
	}

	for _, c := range []byte("@/?#[] ") {
		require.False(t, IsUserinfoChar(c), "%q", c)
	}
}

func TestClasses(t *testing.T) {
	require.True(t, IsHex('F'))
	require.True(t, IsHex('a'))
	require.False(t, IsHex('g'))
	require.True(t, IsAlpha('Q'))
	require.False(t, IsAlpha('@'))
	require.False(t, IsAlpha('['))
	require.True(t, IsNum('0'))
	require.False(t, IsNum('a'))
}
