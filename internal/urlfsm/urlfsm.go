// Package urlfsm implements the byte-at-a-time recognizer of a request-target. It is shared by
// the message parser, which validates the target inline, and by the URL splitter, which turns
// its transitions into components.
package urlfsm

import "github.com/indigo-web/httparse/internal/httpchars"

type State uint8

const (
	// Dead is the only failure state. Once reached, the input is not a valid target.
	Dead State = iota
	SpacesBeforeURL
	Schema
	SchemaSlash
	SchemaSlashSlash
	ServerStart
	Server
	ServerWithAt
	Path
	QueryStringStart
	QueryString
	FragmentStart
	Fragment
)

var names = [...]string{
	Dead:             "Dead",
	SpacesBeforeURL:  "SpacesBeforeURL",
	Schema:           "Schema",
	SchemaSlash:      "SchemaSlash",
	SchemaSlashSlash: "SchemaSlashSlash",
	ServerStart:      "ServerStart",
	Server:           "Server",
	ServerWithAt:     "ServerWithAt",
	Path:             "Path",
	QueryStringStart: "QueryStringStart",
	QueryString:      "QueryString",
	FragmentStart:    "FragmentStart",
	Fragment:         "Fragment",
}

func (s State) String() string {
	if int(s) >= len(names) {
		return "State(?)"
	}

	return names[s]
}

// Terminable reports whether a target may end in the state, i.e. whether a following
// whitespace completes the target instead of being an error.
func (s State) Terminable() bool {
	switch s {
	case Server, ServerWithAt, Path, QueryStringStart, QueryString, FragmentStart, Fragment:
		return true
	default:
		return false
	}
}

// Delimiter reports whether entering the state means the current char is a delimiter
// rather than a part of some component.
func (s State) Delimiter() bool {
	switch s {
	case SchemaSlash, SchemaSlashSlash, ServerStart, QueryStringStart, FragmentStart:
		return true
	default:
		return false
	}
}

// Next returns the state following the current one after the char is consumed. Spaces, CR
// and LF always lead to Dead, as it's up to the caller to detect the end of the target. In
// strict mode, so do HT and FF.
func Next(s State, ch byte, strict bool) State {
	if ch == ' ' || ch == '\r' || ch == '\n' {
		return Dead
	}

	if strict && (ch == '\t' || ch == '\f') {
		return Dead
	}

	switch s {
	case SpacesBeforeURL:
		// proxied requests carry an absolute URI, which starts with a schema. Every other
		// (except CONNECT) starts with a slash or an asterisk.
		if ch == '/' || ch == '*' {
			return Path
		}

		if httpchars.IsAlpha(ch) {
			return Schema
		}
	case Schema:
		if httpchars.IsAlpha(ch) {
			return Schema
		}

		if ch == ':' {
			return SchemaSlash
		}
	case SchemaSlash:
		if ch == '/' {
			return SchemaSlashSlash
		}
	case SchemaSlashSlash:
		if ch == '/' {
			return ServerStart
		}
	case ServerStart, Server, ServerWithAt:
		if s == ServerWithAt && ch == '@' {
			return Dead
		}

		switch ch {
		case '/':
			return Path
		case '?':
			return QueryStringStart
		case '@':
			return ServerWithAt
		}

		if httpchars.IsUserinfoChar(ch) || ch == '[' || ch == ']' {
			return Server
		}
	case Path:
		if httpchars.IsURLChar(ch, strict) {
			return Path
		}

		switch ch {
		case '?':
			return QueryStringStart
		case '#':
			return FragmentStart
		}
	case QueryStringStart, QueryString:
		if httpchars.IsURLChar(ch, strict) {
			return QueryString
		}

		switch ch {
		case '?':
			// extra question marks are part of the query
			return QueryString
		case '#':
			return FragmentStart
		}
	case FragmentStart:
		if httpchars.IsURLChar(ch, strict) {
			return Fragment
		}

		switch ch {
		case '?':
			return Fragment
		case '#':
			return FragmentStart
		}
	case Fragment:
		if httpchars.IsURLChar(ch, strict) || ch == '?' || ch == '#' {
			return Fragment
		}
	}

	return Dead
}
