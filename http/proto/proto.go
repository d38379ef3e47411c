package proto

import "strconv"

type Proto uint8

const (
	Unknown Proto = 0
	HTTP09  Proto = 1 << iota
	HTTP10
	HTTP11

	HTTP1 = HTTP09 | HTTP10 | HTTP11
)

var names = [...]string{HTTP09: "HTTP/0.9", HTTP10: "HTTP/1.0", HTTP11: "HTTP/1.1"}

func (p Proto) String() string {
	if int(p) >= len(names) {
		return ""
	}

	return names[p]
}

var majorMinorVersionLUT = [2][10]Proto{
	0: {9: HTTP09},
	1: {0: HTTP10, 1: HTTP11},
}

// Parse maps a version pair onto one of the known protocols. Any other pair (including
// syntactically valid ones like 1.2 or 2.0) yields Unknown.
func Parse(major, minor uint16) Proto {
	if int(major) >= len(majorMinorVersionLUT) || minor > 9 {
		return Unknown
	}

	return majorMinorVersionLUT[major][minor]
}

// Format renders an arbitrary version pair the way it appears on the wire.
func Format(major, minor uint16) string {
	if p := Parse(major, minor); p != Unknown {
		return p.String()
	}

	return "HTTP/" + strconv.FormatUint(uint64(major), 10) + "." + strconv.FormatUint(uint64(minor), 10)
}
