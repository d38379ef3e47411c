package httpparser

// Flags are collected while parsing a message and cleared at the beginning of every new one.
type Flags uint8

const (
	FlagChunked Flags = 1 << iota
	FlagConnectionKeepAlive
	FlagConnectionClose
	FlagConnectionUpgrade
	// FlagTrailing is set after the last (zero-sized) chunk, while trailers are parsed.
	FlagTrailing
	// FlagUpgrade is set by the Upgrade header.
	FlagUpgrade
	// FlagSkipBody is set when OnHeadersComplete asked to skip the body.
	FlagSkipBody
)

// Has reports whether all the passed flags are set.
func (f Flags) Has(flags Flags) bool {
	return f&flags == flags
}
