// Package httpchars classifies bytes the way HTTP/1.x grammar needs them: header name tokens,
// request-target characters, userinfo and host characters.
package httpchars

// tokens maps every RFC 2616 token character onto itself, lowercased. Separators and control
// characters map to 0.
//
//	token      = 1*<any CHAR except CTLs or separators>
//	separators = "(" | ")" | "<" | ">" | "@" | "," | ";" | ":" | "\" | <">
//	           | "/" | "[" | "]" | "?" | "=" | "{" | "}" | SP | HT
var tokens = func() (lut [256]byte) {
	for c := '!'; c <= '~'; c++ {
		lut[c] = byte(c)
	}

	for _, sep := range "()<>@,;:\\\"/[]?={}" {
		lut[sep] = 0
	}

	for c := 'A'; c <= 'Z'; c++ {
		lut[c] = byte(c) | 0x20
	}

	return lut
}()

// urlChars is a bitmap of bytes permitted inside a request-target: every visible ASCII
// character except '#' and '?', which delimit the fragment and the query.
var urlChars = func() (lut [256 / 8]byte) {
	for c := '!'; c <= '~'; c++ {
		if c != '#' && c != '?' {
			lut[c>>3] |= 1 << (c & 7)
		}
	}

	return lut
}()

// Token returns the lowercased character if it is a valid header name token character,
// otherwise 0. Outside strict mode, a space is tolerated and returned as is.
func Token(c byte, strict bool) byte {
	if !strict && c == ' ' {
		return ' '
	}

	return tokens[c]
}

// IsURLChar reports whether the char may appear in the path, query or fragment of a
// request-target. Outside strict mode HT, FF and any byte with the high bit set are
// tolerated as well.
func IsURLChar(c byte, strict bool) bool {
	if urlChars[c>>3]&(1<<(c&7)) != 0 {
		return true
	}

	return !strict && (c == '\t' || c == '\f' || c&0x80 != 0)
}

// IsUserinfoChar reports whether the char may appear in the userinfo part of an authority.
func IsUserinfoChar(c byte) bool {
	if IsAlphanum(c) || IsMark(c) {
		return true
	}

	switch c {
	case '%', ';', ':', '&', '=', '+', '$', ',':
		return true
	}

	return false
}

// IsHostChar reports whether the char may appear in a registered host name. Outside
// strict mode underscores are accepted too.
func IsHostChar(c byte, strict bool) bool {
	return IsAlphanum(c) || c == '.' || c == '-' || (!strict && c == '_')
}

func IsMark(c byte) bool {
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}

	return false
}

func Lower(c byte) byte {
	return c | 0x20
}

func IsAlpha(c byte) bool {
	c = Lower(c)
	return c >= 'a' && c <= 'z'
}

func IsNum(c byte) bool {
	return c >= '0' && c <= '9'
}

func IsAlphanum(c byte) bool {
	return IsAlpha(c) || IsNum(c)
}

func IsHex(c byte) bool {
	if IsNum(c) {
		return true
	}

	c = Lower(c)
	return c >= 'a' && c <= 'f'
}
