// Package url decomposes a complete request target into its components. Unlike the message
// parser, it works on the whole target at once and reports the components as spans of the
// passed buffer, so nothing is copied.
package url

import (
	"errors"
	"iter"

	"github.com/indigo-web/httparse/internal/httpchars"
	"github.com/indigo-web/httparse/internal/urlfsm"
)

var (
	ErrEmpty       = errors.New("empty URL")
	ErrInvalidURL  = errors.New("invalid character in URL")
	ErrInvalidHost = errors.New("invalid authority")
	ErrMissingHost = errors.New("schema without host")
	ErrConnectForm = errors.New("CONNECT target must be host:port")
	ErrInvalidPort = errors.New("port out of range")
)

// Field is a component of a URL.
type Field uint8

const (
	Schema Field = iota
	Host
	Port
	Path
	Query
	Fragment
	Userinfo
	fieldsCount
)

var fieldNames = [fieldsCount]string{
	Schema:   "schema",
	Host:     "host",
	Port:     "port",
	Path:     "path",
	Query:    "query",
	Fragment: "fragment",
	Userinfo: "userinfo",
}

func (f Field) String() string {
	if f >= fieldsCount {
		return "unknown"
	}

	return fieldNames[f]
}

// Span is a range of the parsed buffer.
type Span struct {
	Off, Len int
}

func (s Span) end() int {
	return s.Off + s.Len
}

// URL holds the spans of components found in the buffer it was parsed from. Delimiters
// aren't included: the schema goes without a colon, the query without a question mark and
// the fragment without a hash. Brackets around IPv6 hosts are excluded, too.
type URL struct {
	set   uint8
	spans [fieldsCount]Span
	port  uint16
}

// Parse splits the buffer into components. When isConnect is true, the buffer is expected
// to be an authority-form target of a CONNECT request, that is exactly host and port.
func Parse(buf []byte, isConnect bool) (URL, error) {
	var u URL

	if len(buf) == 0 {
		return u, ErrEmpty
	}

	state := urlfsm.SpacesBeforeURL
	if isConnect {
		state = urlfsm.ServerStart
	}

	var (
		foundAt bool
		prev    = fieldsCount
	)

	for i, ch := range buf {
		state = urlfsm.Next(state, ch, false)
		if state == urlfsm.Dead {
			return URL{}, ErrInvalidURL
		}

		if state.Delimiter() {
			continue
		}

		var field Field

		switch state {
		case urlfsm.Schema:
			field = Schema
		case urlfsm.ServerWithAt:
			foundAt = true
			field = Host
		case urlfsm.Server:
			field = Host
		case urlfsm.Path:
			field = Path
		case urlfsm.QueryString:
			field = Query
		case urlfsm.Fragment:
			field = Fragment
		default:
			return URL{}, ErrInvalidURL
		}

		if field == prev {
			u.spans[field].Len++
			continue
		}

		u.setSpan(field, Span{Off: i, Len: 1})
		prev = field
	}

	// a schema must be followed by an authority, so http:///path fails
	if u.Has(Schema) && !u.Has(Host) {
		return URL{}, ErrMissingHost
	}

	if u.Has(Host) {
		if err := u.parseHost(buf, foundAt); err != nil {
			return URL{}, err
		}
	}

	if isConnect && u.set != 1<<Host|1<<Port {
		return URL{}, ErrConnectForm
	}

	if u.Has(Port) {
		var port uint32
		// digits are already validated by the host automaton
		for _, ch := range u.Get(buf, Port) {
			port = port*10 + uint32(ch-'0')
			if port > 0xFFFF {
				return URL{}, ErrInvalidPort
			}
		}

		u.port = uint16(port)
	}

	return u, nil
}

func (u *URL) setSpan(f Field, s Span) {
	u.spans[f] = s
	u.set |= 1 << f
}

// Has reports whether the field is present.
func (u URL) Has(f Field) bool {
	return f < fieldsCount && u.set&(1<<f) != 0
}

// Span returns the range of the field. It is zero if the field isn't present.
func (u URL) Span(f Field) Span {
	if !u.Has(f) {
		return Span{}
	}

	return u.spans[f]
}

// Get returns the field as a sub-slice of the buffer the URL was parsed from, or nil if
// the field isn't present.
func (u URL) Get(buf []byte, f Field) []byte {
	if !u.Has(f) {
		return nil
	}

	s := u.spans[f]
	return buf[s.Off:s.end()]
}

// Port returns the port number, if present.
func (u URL) Port() (uint16, bool) {
	return u.port, u.Has(Port)
}

// Fields iterates over present fields in their declaration order.
func (u URL) Fields() iter.Seq2[Field, Span] {
	return func(yield func(Field, Span) bool) {
		for f := Schema; f < fieldsCount; f++ {
			if !u.Has(f) {
				continue
			}

			if !yield(f, u.spans[f]) {
				return
			}
		}
	}
}

type hostState uint8

const (
	hostDead hostState = iota
	hostUserinfoStart
	hostUserinfo
	hostStart
	hostV6Start
	hostV6
	hostV6End
	hostV6ZoneStart
	hostV6Zone
	hostName
	hostPortStart
	hostPort
)

func nextHost(s hostState, ch byte) hostState {
	switch s {
	case hostUserinfoStart, hostUserinfo:
		if ch == '@' {
			return hostStart
		}

		if httpchars.IsUserinfoChar(ch) {
			return hostUserinfo
		}
	case hostStart:
		if ch == '[' {
			return hostV6Start
		}

		if httpchars.IsHostChar(ch, false) {
			return hostName
		}
	case hostName, hostV6End:
		if s == hostName && httpchars.IsHostChar(ch, false) {
			return hostName
		}

		if ch == ':' {
			return hostPortStart
		}
	case hostV6Start, hostV6:
		if s == hostV6 && ch == ']' {
			return hostV6End
		}

		if httpchars.IsHex(ch) || ch == ':' || ch == '.' {
			return hostV6
		}

		if s == hostV6 && ch == '%' {
			return hostV6ZoneStart
		}
	case hostV6ZoneStart, hostV6Zone:
		if s == hostV6Zone && ch == ']' {
			return hostV6End
		}

		// zone identifiers consist of unreserved and percent-encoded chars
		switch {
		case httpchars.IsAlphanum(ch):
			return hostV6Zone
		case ch == '%', ch == '.', ch == '-', ch == '_', ch == '~':
			return hostV6Zone
		}
	case hostPortStart, hostPort:
		if httpchars.IsNum(ch) {
			return hostPort
		}
	}

	return hostDead
}

// parseHost splits the authority, recorded as the host so far, into userinfo, host and
// port.
func (u *URL) parseHost(buf []byte, foundAt bool) error {
	authority := u.spans[Host]
	host := Span{Off: authority.Off}

	state := hostStart
	if foundAt {
		state = hostUserinfoStart
	}

	for i := authority.Off; i < authority.end(); i++ {
		next := nextHost(state, buf[i])

		switch next {
		case hostDead:
			return ErrInvalidHost
		case hostName, hostV6:
			if next != state {
				host.Off = i
			}

			host.Len++
		case hostV6ZoneStart, hostV6Zone:
			host.Len++
		case hostPort:
			if next != state {
				u.setSpan(Port, Span{Off: i})
			}

			u.spans[Port].Len++
		case hostUserinfo:
			if next != state {
				u.setSpan(Userinfo, Span{Off: i})
			}

			u.spans[Userinfo].Len++
		}

		state = next
	}

	switch state {
	case hostStart, hostV6Start, hostV6, hostV6ZoneStart, hostV6Zone,
		hostPortStart, hostUserinfo, hostUserinfoStart:
		return ErrInvalidHost
	}

	u.spans[Host] = host
	return nil
}
